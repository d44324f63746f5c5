package sumtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Option_SomeInfersParameter(t *testing.T) {
	r := NewRegistry()

	v, err := r.Some(5)
	require.NoError(t, err)
	assert.Equal(t, SomeVariant, v.Tag())
	assert.Equal(t, []any{int64(5)}, v.Payload())
	arg, generic := v.TypeArg()
	assert.True(t, generic)
	assert.Equal(t, Int, arg)

	s, err := r.Some("texto")
	require.NoError(t, err)
	arg, _ = s.TypeArg()
	assert.Equal(t, Str, arg)
}

func Test_Option_NoneNeedsExplicitParameter(t *testing.T) {
	r := NewRegistry()

	_, err := r.None()
	require.Error(t, err)
	assert.True(t, IsKind(err, AmbiguousTypeParameter))

	none, err := r.NoneOf(Int)
	require.NoError(t, err)
	assert.Equal(t, NoneVariant, none.Tag())
	assert.Empty(t, none.Payload())
}

func Test_Option_UnwrapOr(t *testing.T) {
	r := NewRegistry()

	five, err := r.Some(5)
	require.NoError(t, err)
	none, err := r.NoneOf(Int)
	require.NoError(t, err)

	// Idempotent regardless of repetition.
	for i := 0; i < 3; i++ {
		got, err := UnwrapOr(five, int64(0))
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)

		got, err = UnwrapOr(none, int64(7))
		require.NoError(t, err)
		assert.Equal(t, int64(7), got)
	}
}

func Test_Option_UnwrapOr_RejectsNonOptional(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)
	v := mustConstruct(t, d, "V6", "::1")

	_, err := UnwrapOr(v, "fallback")
	require.Error(t, err)
	assert.True(t, IsKind(err, UnknownVariant))
}

func Test_Option_IsSomeIsNone(t *testing.T) {
	r := NewRegistry()

	five, err := r.Some(5)
	require.NoError(t, err)
	none, err := r.NoneOf(Int)
	require.NoError(t, err)

	some, err := IsSome(five)
	require.NoError(t, err)
	assert.True(t, some)

	absent, err := IsNone(none)
	require.NoError(t, err)
	assert.True(t, absent)

	some, err = IsSome(none)
	require.NoError(t, err)
	assert.False(t, some)
}

func Test_Option_MapSome(t *testing.T) {
	r := NewRegistry()

	five, err := r.Some(5)
	require.NoError(t, err)
	doubled, err := MapSome(five, Int, func(x any) (any, error) {
		return x.(int64) * 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(10)}, doubled.Payload())

	// None passes through as None of the output parameter.
	none, err := r.NoneOf(Int)
	require.NoError(t, err)
	mapped, err := MapSome(none, Str, func(x any) (any, error) {
		t.Fatal("f must not run for None")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, NoneVariant, mapped.Tag())
	arg, _ := mapped.TypeArg()
	assert.Equal(t, Str, arg)
}

func Test_Option_MatchingBothVariants(t *testing.T) {
	// some(x) matched over {Some, None} yields x; none() yields the default.
	r := NewRegistry()

	ms, err := NewMatchSet(r.Optional(),
		Case(SomeVariant, []string{"y"}, func(bound []any) (any, error) { return bound[0], nil }),
		Case(NoneVariant, nil, func([]any) (any, error) { return "default", nil }),
	)
	require.NoError(t, err)

	wrapped, err := r.Some("x")
	require.NoError(t, err)
	got, err := ms.Eval(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	none, err := r.NoneOf(Str)
	require.NoError(t, err)
	got, err = ms.Eval(none)
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}

func Test_Option_CoveringOneVariantIsNotEnough(t *testing.T) {
	r := NewRegistry()

	_, err := NewMatchSet(r.Optional(),
		Case(SomeVariant, []string{"x"}, func(bound []any) (any, error) { return bound[0], nil }),
	)
	require.Error(t, err)
	require.True(t, IsKind(err, NonExhaustiveMatch))
	assert.Equal(t, []string{NoneVariant}, err.(*Error).Missing)
}

func Test_Option_NoImplicitCoercion(t *testing.T) {
	// A raw value and its Optional wrapper are distinct: a *Value never
	// conforms to a plain int slot, and a raw int never conforms to an
	// Optional slot.
	r := NewRegistry()
	d, err := r.Declare("Registro", false,
		VariantSpec{Name: "Plano", Fields: []Type{Int}},
		VariantSpec{Name: "Talvez", Fields: []Type{SumOf(OptionalName)}},
	)
	require.NoError(t, err)

	five, err := r.Some(5)
	require.NoError(t, err)

	_, err = d.Construct("Plano", five)
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))

	_, err = d.Construct("Talvez", 5)
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))

	v, err := d.Construct("Talvez", five)
	require.NoError(t, err)
	assert.Equal(t, "Talvez", v.Tag())
}
