// errors.go: the failure taxonomy of the sum-type engine.
//
// Every failure the engine can report is an *Error carrying a Kind plus the
// structured fields relevant to that kind (type name, variant, arity,
// payload slot, missing variants). Declaration-time and match-construction
// failures are reported eagerly, before any value flows through the affected
// path; construction-time failures go to the immediate caller. Nothing is
// retried internally — every kind indicates a programming error, not a
// transient condition.
//
// The lexer and parser for the textual syntax report their own *LexError /
// *ParseError with 1-based line/column, see lexer.go and parser.go.
package sumtype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates the failure cases of the engine.
type ErrorKind int

const (
	// DuplicateDeclaration: Declare was called with a name already
	// registered in the same Registry.
	DuplicateDeclaration ErrorKind = iota + 1

	// DuplicateVariant: two variants of one declaration share a name.
	DuplicateVariant

	// UnknownType: Lookup (or a field-type reference) named a sum type
	// that is not registered.
	UnknownType

	// UnknownVariant: a construction or match arm named a variant the
	// declaration does not have.
	UnknownVariant

	// ArityMismatch: payload length or binder count differs from the
	// variant's declared field count.
	ArityMismatch

	// PayloadTypeMismatch: a payload element does not conform to the
	// declared field type of its slot.
	PayloadTypeMismatch

	// AmbiguousTypeParameter: a generic declaration was used without a
	// type argument and none could be inferred from the payload.
	AmbiguousTypeParameter

	// NonExhaustiveMatch: a match set without a wildcard leaves one or
	// more variants uncovered.
	NonExhaustiveMatch

	// UnreachableArm: an arm can never match — it repeats a variant
	// already covered, or follows a wildcard.
	UnreachableArm
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case DuplicateVariant:
		return "DuplicateVariant"
	case UnknownType:
		return "UnknownType"
	case UnknownVariant:
		return "UnknownVariant"
	case ArityMismatch:
		return "ArityMismatch"
	case PayloadTypeMismatch:
		return "PayloadTypeMismatch"
	case AmbiguousTypeParameter:
		return "AmbiguousTypeParameter"
	case NonExhaustiveMatch:
		return "NonExhaustiveMatch"
	case UnreachableArm:
		return "UnreachableArm"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type surfaced by the engine. Fields other than
// Kind are populated when they apply and zero otherwise.
type Error struct {
	Kind    ErrorKind
	Type    string   // sum type name, when known
	Variant string   // variant name, when relevant
	Slot    int      // payload slot index for PayloadTypeMismatch, -1 otherwise
	Want    int      // expected count for ArityMismatch
	Got     int      // actual count for ArityMismatch
	Missing []string // uncovered variants for NonExhaustiveMatch, declaration order
	Msg     string   // extra detail, already formatted
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case DuplicateDeclaration:
		fmt.Fprintf(&b, "duplicate declaration of type %q", e.Type)
	case DuplicateVariant:
		fmt.Fprintf(&b, "type %q declares variant %q more than once", e.Type, e.Variant)
	case UnknownType:
		fmt.Fprintf(&b, "unknown type %q", e.Type)
	case UnknownVariant:
		fmt.Fprintf(&b, "type %q has no variant %q", e.Type, e.Variant)
	case ArityMismatch:
		fmt.Fprintf(&b, "variant %s::%s takes %d value(s), got %d", e.Type, e.Variant, e.Want, e.Got)
	case PayloadTypeMismatch:
		fmt.Fprintf(&b, "variant %s::%s, slot %d", e.Type, e.Variant, e.Slot)
	case AmbiguousTypeParameter:
		fmt.Fprintf(&b, "type %q is generic and its type parameter cannot be inferred", e.Type)
	case NonExhaustiveMatch:
		fmt.Fprintf(&b, "match over %q is not exhaustive; missing: %s", e.Type, strings.Join(e.Missing, ", "))
	case UnreachableArm:
		fmt.Fprintf(&b, "unreachable match arm over %q", e.Type)
	default:
		fmt.Fprintf(&b, "sumtype error %s", e.Kind)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Is reports kind equality, so errors.Is(err, &Error{Kind: k}) works with
// kind-only targets.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsKind reports whether err is, or wraps, an engine *Error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
