// match.go: the match engine.
//
// A MatchSet is an ordered list of arms bound to one declaration. All
// structural checking happens in NewMatchSet, before any value is matched:
// arm variants must exist, binder counts must equal the variant arity,
// no arm may repeat a variant or follow a wildcard, and without a wildcard
// every variant must be covered. Eval then only selects the first arm whose
// variant equals the value's tag and runs its handler with the payload
// slots bound positionally.
package sumtype

import "fmt"

// Handler consumes the bound payload slots of the matched arm. For a
// wildcard arm, bound is the matched value's full payload.
type Handler func(bound []any) (any, error)

// Arm is one (variant, binders, handler) case of a match set. Build arms
// with Case and Wildcard.
type Arm struct {
	variant  string
	wildcard bool
	binders  []string
	handler  Handler
}

// Case builds an arm for one variant. binders name the payload slots
// positionally; their count must equal the variant's field count. Binder
// names are carried for diagnostics and source-level matching; the handler
// receives slot values by position.
func Case(variant string, binders []string, handler Handler) Arm {
	return Arm{variant: variant, binders: binders, handler: handler}
}

// Wildcard builds a catch-all arm. It must be the last arm of the set.
func Wildcard(handler Handler) Arm {
	return Arm{wildcard: true, handler: handler}
}

// Variant returns the arm's variant name, or "_" for a wildcard.
func (a Arm) Variant() string {
	if a.wildcard {
		return "_"
	}
	return a.variant
}

// MatchSet is a validated, exhaustive set of arms over one declaration.
type MatchSet struct {
	decl     *SumTypeDecl
	arms     []Arm
	arg      Type // pinned type argument, NoType when unpinned
	wildcard bool
}

// NewMatchSet validates arms against decl and fails eagerly:
// UnknownVariant, ArityMismatch (binder count), UnreachableArm (duplicate
// variant or arm after wildcard), NonExhaustiveMatch (uncovered variants,
// reported in declaration order).
func NewMatchSet(decl *SumTypeDecl, arms ...Arm) (*MatchSet, error) {
	return newMatchSet(decl, NoType, arms)
}

// NewMatchSet builds a match set that additionally requires matched values
// to carry this instance's type argument.
func (i *Instance) NewMatchSet(arms ...Arm) (*MatchSet, error) {
	return newMatchSet(i.decl, i.arg, arms)
}

func newMatchSet(decl *SumTypeDecl, arg Type, arms []Arm) (*MatchSet, error) {
	covered := map[string]bool{}
	sawWildcard := false
	for _, arm := range arms {
		if arm.handler == nil {
			return nil, fmt.Errorf("sumtype: match over %q: arm %s has no handler", decl.name, arm.Variant())
		}
		if sawWildcard {
			return nil, &Error{Kind: UnreachableArm, Type: decl.name, Variant: arm.Variant(),
				Slot: -1, Msg: "arm after wildcard"}
		}
		if arm.wildcard {
			sawWildcard = true
			continue
		}
		variant, err := decl.Variant(arm.variant)
		if err != nil {
			return nil, err
		}
		if covered[arm.variant] {
			return nil, &Error{Kind: UnreachableArm, Type: decl.name, Variant: arm.variant,
				Slot: -1, Msg: "variant already covered"}
		}
		covered[arm.variant] = true
		if len(arm.binders) != len(variant.fields) {
			return nil, &Error{Kind: ArityMismatch, Type: decl.name, Variant: arm.variant,
				Slot: -1, Want: len(variant.fields), Got: len(arm.binders)}
		}
	}

	if !sawWildcard {
		var missing []string
		for _, v := range decl.variants {
			if !covered[v.name] {
				missing = append(missing, v.name)
			}
		}
		if len(missing) > 0 {
			return nil, &Error{Kind: NonExhaustiveMatch, Type: decl.name, Slot: -1, Missing: missing}
		}
	}

	ms := &MatchSet{decl: decl, arg: arg, wildcard: sawWildcard}
	ms.arms = make([]Arm, len(arms))
	copy(ms.arms, arms)
	return ms, nil
}

// Decl returns the declaration the set is bound to.
func (m *MatchSet) Decl() *SumTypeDecl { return m.decl }

// Eval matches v against the arms in order and runs the handler of the
// first arm whose variant equals the value's tag. The value must belong to
// the set's declaration (and carry the pinned type argument, for sets built
// from an Instance). Validation in NewMatchSet guarantees some arm matches.
func (m *MatchSet) Eval(v *Value) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("sumtype: match over %q: nil value", m.decl.name)
	}
	if v.decl != m.decl {
		return nil, fmt.Errorf("sumtype: match over %q: value belongs to %q", m.decl.name, v.decl.name)
	}
	if m.arg.valid() && v.typeArg != m.arg {
		return nil, fmt.Errorf("sumtype: match over %s<%s>: value is %s<%s>",
			m.decl.name, m.arg, m.decl.name, v.typeArg)
	}
	for _, arm := range m.arms {
		if arm.wildcard || arm.variant == v.variant.name {
			return arm.handler(v.Payload())
		}
	}
	// Unreachable for a validated set; a closed-world value always has a
	// covered tag.
	return nil, fmt.Errorf("sumtype: match over %q: tag %q slipped every arm", m.decl.name, v.variant.name)
}

// Match is a one-shot convenience: build the set, validate it, evaluate v.
// Prefer NewMatchSet when the same arms are reused, so validation cost is
// paid once.
func Match(v *Value, arms ...Arm) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("sumtype: match: nil value")
	}
	ms, err := NewMatchSet(v.decl, arms...)
	if err != nil {
		return nil, err
	}
	return ms.Eval(v)
}
