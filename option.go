// option.go: the predefined Optional wrapper.
//
// Optional is declared by every NewRegistry before user code runs:
//
//	enum Optional<T> { Some(T), None }
//
// It is the sole sanctioned representation of absence. Go nil is rejected
// from the payload domain (types.go), so presence handling cannot be
// skipped: every helper here is built on a match set covering both
// variants, and nothing ever reads the payload of a None value.
package sumtype

import "fmt"

// Names of the bootstrap declaration.
const (
	OptionalName = "Optional"
	SomeVariant  = "Some"
	NoneVariant  = "None"
)

// Some wraps x. The type parameter is inferred from x.
func (r *Registry) Some(x any) (*Value, error) {
	return r.optional.Construct(SomeVariant, x)
}

// NoneOf builds the absent value of Optional<elem>. None carries no payload
// to infer the parameter from, so elem is required.
func (r *Registry) NoneOf(elem Type) (*Value, error) {
	inst, err := r.optional.Instantiate(elem)
	if err != nil {
		return nil, err
	}
	return inst.Construct(NoneVariant)
}

// None without an element type has nothing to infer the parameter from and
// always fails with AmbiguousTypeParameter. It exists so the failure is an
// explicit, reported one; callers with a known element type use NoneOf.
func (r *Registry) None() (*Value, error) {
	return r.optional.Construct(NoneVariant)
}

// IsSome reports whether v is a present Optional value.
func IsSome(v *Value) (bool, error) {
	res, err := matchOptional(v,
		func(bound []any) (any, error) { return true, nil },
		func([]any) (any, error) { return false, nil },
	)
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// IsNone reports whether v is an absent Optional value.
func IsNone(v *Value) (bool, error) {
	some, err := IsSome(v)
	return err == nil && !some, err
}

// UnwrapOr extracts the wrapped value of a Some, or yields def for a None.
func UnwrapOr(v *Value, def any) (any, error) {
	return matchOptional(v,
		func(bound []any) (any, error) { return bound[0], nil },
		func([]any) (any, error) { return def, nil },
	)
}

// MapSome applies f to the wrapped value and re-wraps the result as
// Optional<out>; a None passes through as None of the same Optional<out>.
// out is explicit because the None path has no payload to infer it from.
func MapSome(v *Value, out Type, f func(x any) (any, error)) (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("sumtype: MapSome: nil value")
	}
	reg := v.decl.reg
	inst, err := reg.optional.Instantiate(out)
	if err != nil {
		return nil, err
	}
	res, err := matchOptional(v,
		func(bound []any) (any, error) {
			y, err := f(bound[0])
			if err != nil {
				return nil, err
			}
			return inst.Construct(SomeVariant, y)
		},
		func([]any) (any, error) {
			return inst.Construct(NoneVariant)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*Value), nil
}

// matchOptional runs both-variant matching over an Optional value. Building
// the set against v's declaration makes non-Optional values fail with
// UnknownVariant rather than silently taking a branch.
func matchOptional(v *Value, onSome, onNone Handler) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("sumtype: nil value")
	}
	ms, err := NewMatchSet(v.decl,
		Case(SomeVariant, []string{"x"}, onSome),
		Case(NoneVariant, nil, onNone),
	)
	if err != nil {
		return nil, err
	}
	return ms.Eval(v)
}
