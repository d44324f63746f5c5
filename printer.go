// printer.go: human-readable rendering of declarations and values.
//
// FormatDecl and FormatValue emit the same syntax parser.go reads, so
// renderings of declarations and of values without bytes/opaque payloads
// parse back to equal results. Bytes and opaque payloads have no literal
// syntax and render in a display-only form.
package sumtype

import (
	"strconv"
	"strings"
)

// FormatDecl renders a declaration in enum syntax, e.g.
// `enum Optional<T> { Some(T), None }`.
func FormatDecl(d *SumTypeDecl) string {
	var b strings.Builder
	b.WriteString("enum ")
	b.WriteString(d.name)
	if d.generic {
		b.WriteString("<T>")
	}
	b.WriteString(" { ")
	for i, v := range d.variants {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.name)
		if len(v.fields) > 0 {
			b.WriteByte('(')
			for j, ft := range v.fields {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(ft.String())
			}
			b.WriteByte(')')
		}
	}
	b.WriteString(" }")
	return b.String()
}

// FormatValue renders a value in construction syntax, e.g.
// `EnderecoIp::V4(127, 0, 0, 1)`. For generic values the type argument is
// spelled out only when the variant carries no parameter slot to infer it
// from, e.g. `Optional<int>::None`.
func FormatValue(v *Value) string {
	if v == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value) {
	b.WriteString(v.decl.name)
	if v.decl.generic && !variantInfersArg(v.variant) {
		b.WriteByte('<')
		b.WriteString(v.typeArg.String())
		b.WriteByte('>')
	}
	b.WriteString("::")
	b.WriteString(v.variant.name)
	if len(v.payload) == 0 {
		return
	}
	b.WriteByte('(')
	for i, x := range v.payload {
		if i > 0 {
			b.WriteString(", ")
		}
		writePayload(b, x)
	}
	b.WriteByte(')')
}

func variantInfersArg(v *VariantDecl) bool {
	for _, ft := range v.fields {
		if ft.Kind == KindParam {
			return true
		}
	}
	return false
}

func writePayload(b *strings.Builder, x any) {
	switch v := x.(type) {
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0" // keep the float spelling parseable as a float
		}
		b.WriteString(s)
	case string:
		b.WriteString(quoteString(v))
	case []byte:
		b.WriteString("0x")
		const hex = "0123456789abcdef"
		for _, c := range v {
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
	case *Value:
		writeValue(b, v)
	case Opaque:
		b.WriteString("<opaque:")
		b.WriteString(v.OpaqueName())
		b.WriteByte('>')
	default:
		b.WriteString("<?>")
	}
}

// quoteString escapes exactly the sequences the lexer decodes.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
