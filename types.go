// types.go: payload type descriptors and runtime conformance checks.
//
// Field slots of a variant are described by Type values: a small closed set
// of primitives, nominal opaque payload types (black boxes supplied by the
// host), references to registered sum types (including the declaring type
// itself), and the single generic parameter of a generic declaration.
//
// Conformance is checked at construction time, slot by slot. The engine
// never inspects the inside of an opaque payload; it only compares the
// nominal name and delegates equality to the payload itself.
package sumtype

import (
	"fmt"
	"strings"
)

// Kind enumerates the payload type descriptors.
type Kind int

const (
	KindInvalid Kind = iota // zero value; never conforms
	KindBool
	KindU8
	KindInt   // int64
	KindFloat // float64
	KindStr
	KindBytes
	KindOpaque // nominal external payload type, matched by name
	KindSum    // reference to a registered sum type, by name
	KindParam  // the generic type parameter of the declaration
)

// Type describes the semantic type of one payload slot.
// Name is set for KindOpaque and KindSum only.
type Type struct {
	Kind Kind
	Name string
}

// Predefined primitive descriptors and the generic parameter.
var (
	Bool  = Type{Kind: KindBool}
	U8    = Type{Kind: KindU8}
	Int   = Type{Kind: KindInt}
	Float = Type{Kind: KindFloat}
	Str   = Type{Kind: KindStr}
	Bytes = Type{Kind: KindBytes}
	Param = Type{Kind: KindParam}

	// NoType marks an absent type argument.
	NoType = Type{}
)

// SumOf references a registered sum type by name.
func SumOf(name string) Type { return Type{Kind: KindSum, Name: name} }

// OpaqueOf references a nominal external payload type by name.
func OpaqueOf(name string) Type { return Type{Kind: KindOpaque, Name: name} }

func (t Type) valid() bool { return t.Kind != KindInvalid }

func (t Type) String() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindBytes:
		return "bytes"
	case KindOpaque:
		return "opaque:" + t.Name
	case KindSum:
		return t.Name
	case KindParam:
		return "T"
	default:
		return "<invalid>"
	}
}

// ParseType reads the textual spelling used by the enum syntax and schema
// files: a primitive name, "T" for the generic parameter, "opaque:Name" for
// a nominal payload type, or any other identifier as a sum-type reference.
func ParseType(s string) (Type, error) {
	switch s {
	case "bool":
		return Bool, nil
	case "u8":
		return U8, nil
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "str":
		return Str, nil
	case "bytes":
		return Bytes, nil
	case "T":
		return Param, nil
	case "":
		return NoType, fmt.Errorf("empty type name")
	}
	if rest, ok := strings.CutPrefix(s, "opaque:"); ok {
		if rest == "" {
			return NoType, fmt.Errorf("opaque type needs a name")
		}
		return OpaqueOf(rest), nil
	}
	if !isIdent(s) {
		return NoType, fmt.Errorf("invalid type name %q", s)
	}
	return SumOf(s), nil
}

// Opaque is the contract for nominal external payload types. The engine
// treats them as black boxes: it matches the name against the declared slot
// type and defers equality to EqualOpaque.
type Opaque interface {
	OpaqueName() string
	EqualOpaque(other Opaque) bool
}

// TypeOf infers the descriptor of a host value. It covers exactly the
// payload domain of the engine; anything else (including nil) is not a
// payload value and reports false.
func TypeOf(x any) (Type, bool) {
	switch v := x.(type) {
	case bool:
		return Bool, true
	case uint8:
		return U8, true
	case int, int64:
		return Int, true
	case float64:
		return Float, true
	case string:
		return Str, true
	case []byte:
		return Bytes, true
	case *Value:
		if v == nil {
			return NoType, false
		}
		return SumOf(v.decl.name), true
	case Opaque:
		return OpaqueOf(v.OpaqueName()), true
	}
	return NoType, false
}

// checkPayload verifies one payload element against a slot type, with arg
// substituted for the generic parameter. On success it returns the value in
// its stored representation (ints widened to int64, byte slices copied so
// the Value owns its payload). On failure it returns a reason string.
func (r *Registry) checkPayload(x any, slot Type, arg Type) (any, string) {
	if x == nil {
		return nil, "nil is not a payload value; absence is spelled Optional::None"
	}
	t := slot
	if t.Kind == KindParam {
		if !arg.valid() {
			return nil, "unresolved type parameter"
		}
		t = arg
	}
	switch t.Kind {
	case KindBool:
		if b, ok := x.(bool); ok {
			return b, ""
		}
	case KindU8:
		switch v := x.(type) {
		case uint8:
			return v, ""
		case int:
			if v >= 0 && v <= 255 {
				return uint8(v), ""
			}
			return nil, fmt.Sprintf("%d out of range for u8", v)
		case int64:
			if v >= 0 && v <= 255 {
				return uint8(v), ""
			}
			return nil, fmt.Sprintf("%d out of range for u8", v)
		}
	case KindInt:
		switch v := x.(type) {
		case int:
			return int64(v), ""
		case int64:
			return v, ""
		}
	case KindFloat:
		if f, ok := x.(float64); ok {
			return f, ""
		}
	case KindStr:
		if s, ok := x.(string); ok {
			return s, ""
		}
	case KindBytes:
		if b, ok := x.([]byte); ok {
			cp := make([]byte, len(b))
			copy(cp, b)
			return cp, ""
		}
	case KindOpaque:
		if o, ok := x.(Opaque); ok {
			if o.OpaqueName() == t.Name {
				return o, ""
			}
			return nil, fmt.Sprintf("want opaque type %q, got %q", t.Name, o.OpaqueName())
		}
	case KindSum:
		if v, ok := x.(*Value); ok && v != nil {
			if v.decl.reg != r {
				return nil, fmt.Sprintf("value of %q belongs to a different registry", v.decl.name)
			}
			if v.decl.name == t.Name {
				return v, ""
			}
			return nil, fmt.Sprintf("want a %q value, got %q", t.Name, v.decl.name)
		}
	}
	got, ok := TypeOf(x)
	if !ok {
		return nil, fmt.Sprintf("unsupported payload value of host type %T", x)
	}
	return nil, fmt.Sprintf("want %s, got %s", t, got)
}

func isIdent(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlphaNum(s[i]) {
			return false
		}
	}
	return true
}
