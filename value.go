// value.go: the runtime value model.
//
// A Value is (declaration, tag, payload tuple), immutable once constructed.
// The tag is always one of the declared variants; construction is the only
// way to obtain a Value, so no value exists outside the closed world of its
// declaration. A raw host value and a Value are never interchangeable:
// extraction goes through the match engine (match.go) or the Optional
// helpers (option.go).
package sumtype

import (
	"bytes"
	"fmt"
	"reflect"
)

// Value is an instance of exactly one variant of exactly one SumTypeDecl.
// For values of generic declarations, typeArg records the substituted type
// parameter.
type Value struct {
	decl    *SumTypeDecl
	variant *VariantDecl
	typeArg Type
	payload []any
}

// Decl returns the declaration this value belongs to.
func (v *Value) Decl() *SumTypeDecl { return v.decl }

// Tag returns the variant name of the value.
func (v *Value) Tag() string { return v.variant.name }

// TypeArg returns the substituted type parameter and whether the value's
// declaration is generic.
func (v *Value) TypeArg() (Type, bool) { return v.typeArg, v.decl.generic }

// Payload returns the payload tuple in slot order. Zero-field variants
// yield an empty, non-nil slice. The slice is a copy; the value itself is
// immutable.
func (v *Value) Payload() []any {
	out := make([]any, len(v.payload))
	copy(out, v.payload)
	return out
}

func (v *Value) String() string { return FormatValue(v) }

// Construct builds a value of the named variant. The payload must match the
// variant's field slots positionally and by type. For generic declarations
// the type parameter is inferred from the payload; use Instantiate when the
// variant carries no parameter slot (such as Optional::None).
func (d *SumTypeDecl) Construct(variantName string, payload ...any) (*Value, error) {
	return d.construct(variantName, NoType, payload)
}

// Construct is shorthand for Lookup followed by SumTypeDecl.Construct.
func (r *Registry) Construct(typeName, variantName string, payload ...any) (*Value, error) {
	d, err := r.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return d.construct(variantName, NoType, payload)
}

// Instance is a generic declaration with its type parameter fixed.
type Instance struct {
	decl *SumTypeDecl
	arg  Type
}

// Instantiate fixes the type parameter of a generic declaration. It fails
// with AmbiguousTypeParameter when arg is NoType and is an error on
// non-generic declarations.
func (d *SumTypeDecl) Instantiate(arg Type) (*Instance, error) {
	if !d.generic {
		return nil, fmt.Errorf("sumtype: type %q is not generic", d.name)
	}
	if !arg.valid() {
		return nil, &Error{Kind: AmbiguousTypeParameter, Type: d.name, Slot: -1}
	}
	if arg.Kind == KindParam {
		return nil, fmt.Errorf("sumtype: type %q: cannot instantiate with the parameter itself", d.name)
	}
	if arg.Kind == KindSum {
		if _, err := d.reg.Lookup(arg.Name); err != nil {
			return nil, err
		}
	}
	return &Instance{decl: d, arg: arg}, nil
}

// Decl returns the underlying generic declaration.
func (i *Instance) Decl() *SumTypeDecl { return i.decl }

// Arg returns the fixed type parameter.
func (i *Instance) Arg() Type { return i.arg }

// Construct builds a value of the instantiated type.
func (i *Instance) Construct(variantName string, payload ...any) (*Value, error) {
	return i.decl.construct(variantName, i.arg, payload)
}

func (d *SumTypeDecl) construct(variantName string, arg Type, payload []any) (*Value, error) {
	variant, err := d.Variant(variantName)
	if err != nil {
		return nil, err
	}
	if len(payload) != len(variant.fields) {
		return nil, &Error{Kind: ArityMismatch, Type: d.name, Variant: variantName,
			Slot: -1, Want: len(variant.fields), Got: len(payload)}
	}

	if d.generic && !arg.valid() {
		arg, err = d.inferArg(variant, payload)
		if err != nil {
			return nil, err
		}
	}

	stored := make([]any, len(payload))
	for slot, x := range payload {
		norm, reason := d.reg.checkPayload(x, variant.fields[slot], arg)
		if reason != "" {
			return nil, &Error{Kind: PayloadTypeMismatch, Type: d.name, Variant: variantName,
				Slot: slot, Msg: reason}
		}
		stored[slot] = norm
	}

	v := &Value{decl: d, variant: variant, payload: stored}
	if d.generic {
		v.typeArg = arg
	}
	return v, nil
}

// inferArg determines the type parameter from the first payload element
// sitting in a parameter slot. Variants without a parameter slot carry
// nothing to infer from.
func (d *SumTypeDecl) inferArg(variant *VariantDecl, payload []any) (Type, error) {
	for slot, ft := range variant.fields {
		if ft.Kind != KindParam {
			continue
		}
		arg, ok := TypeOf(payload[slot])
		if !ok {
			return NoType, &Error{Kind: PayloadTypeMismatch, Type: d.name, Variant: variant.name,
				Slot: slot, Msg: fmt.Sprintf("unsupported payload value of host type %T", payload[slot])}
		}
		return arg, nil
	}
	return NoType, &Error{Kind: AmbiguousTypeParameter, Type: d.name, Variant: variant.name, Slot: -1,
		Msg: "no parameter slot in variant " + variant.name + "; use Instantiate"}
}

// Equal reports deep equality: same declaration, same type argument, same
// tag, and pairwise-equal payload elements, recursively through nested sum
// values. Opaque payloads compare via their own EqualOpaque.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.decl != other.decl || v.variant != other.variant {
		return false
	}
	if v.decl.generic && v.typeArg != other.typeArg {
		return false
	}
	for i := range v.payload {
		if !payloadEqual(v.payload[i], other.payload[i]) {
			return false
		}
	}
	return true
}

func payloadEqual(a, b any) bool {
	switch x := a.(type) {
	case *Value:
		y, ok := b.(*Value)
		return ok && x.Equal(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case Opaque:
		y, ok := b.(Opaque)
		return ok && x.EqualOpaque(y)
	case bool, uint8, int64, float64, string:
		return a == b
	default:
		// Not constructible through checkPayload; kept for safety.
		return reflect.DeepEqual(a, b)
	}
}
