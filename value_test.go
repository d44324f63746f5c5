package sumtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ipv4Addr is a stand-in for an external nominal payload structure. The
// engine must treat it as a black box with its own equality.
type ipv4Addr struct{ a, b, c, d uint8 }

func (ipv4Addr) OpaqueName() string { return "Ipv4Addr" }
func (p ipv4Addr) EqualOpaque(other Opaque) bool {
	q, ok := other.(ipv4Addr)
	return ok && p == q
}

// --- construction -----------------------------------------------------------

func Test_Value_Construct_RoundTrip(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)

	home := mustConstruct(t, d, "V4", 127, 0, 0, 1)
	assert.Equal(t, "V4", home.Tag())
	assert.Equal(t, []any{uint8(127), uint8(0), uint8(0), uint8(1)}, home.Payload())
	assert.Same(t, d, home.Decl())

	loopback := mustConstruct(t, d, "V6", "::1")
	assert.Equal(t, "V6", loopback.Tag())
	assert.Equal(t, []any{"::1"}, loopback.Payload())
}

func Test_Value_Construct_ZeroFieldVariant(t *testing.T) {
	r := NewRegistry()
	d, err := r.Declare("Moeda", false, VariantSpec{Name: "Centavo"}, VariantSpec{Name: "Real", Fields: []Type{U8}})
	require.NoError(t, err)

	v := mustConstruct(t, d, "Centavo")
	assert.Equal(t, "Centavo", v.Tag())
	assert.NotNil(t, v.Payload())
	assert.Empty(t, v.Payload())
}

func Test_Value_Construct_UnknownVariant(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)

	_, err := d.Construct("V5", 1)
	require.Error(t, err)
	assert.True(t, IsKind(err, UnknownVariant))
	assert.Contains(t, err.Error(), "V4, V6")
}

func Test_Value_Construct_ArityMismatch(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)

	_, err := d.Construct("V4", 127, 0, 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, ArityMismatch))
	e := err.(*Error)
	assert.Equal(t, 4, e.Want)
	assert.Equal(t, 3, e.Got)
}

func Test_Value_Construct_PayloadTypeMismatch(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)

	_, err := d.Construct("V6", 42)
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))
	assert.Equal(t, 0, err.(*Error).Slot)

	_, err = d.Construct("V4", 127, 0, 0, 999) // out of u8 range
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))
	assert.Equal(t, 3, err.(*Error).Slot)
}

func Test_Value_Construct_NilIsRejected(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)

	_, err := d.Construct("V6", nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))
	assert.Contains(t, err.Error(), "Optional")
}

func Test_Value_Construct_ViaRegistryShorthand(t *testing.T) {
	r := NewRegistry()
	declareIP(t, r)

	v, err := r.Construct("EnderecoIp", "V6", "::1")
	require.NoError(t, err)
	assert.Equal(t, "V6", v.Tag())

	_, err = r.Construct("Endereco", "V6", "::1")
	assert.True(t, IsKind(err, UnknownType))
}

func Test_Value_Construct_RecursivePayload(t *testing.T) {
	r := NewRegistry()
	lista, err := r.Declare("Lista", false,
		VariantSpec{Name: "Cons", Fields: []Type{Int, SumOf("Lista")}},
		VariantSpec{Name: "Nil"},
	)
	require.NoError(t, err)

	nila := mustConstruct(t, lista, "Nil")
	one := mustConstruct(t, lista, "Cons", 1, nila)
	two := mustConstruct(t, lista, "Cons", 2, one)

	assert.Equal(t, "Cons", two.Tag())
	inner := two.Payload()[1].(*Value)
	assert.Equal(t, int64(1), inner.Payload()[0])
}

func Test_Value_Construct_CrossRegistryPayloadRejected(t *testing.T) {
	r1, r2 := NewRegistry(), NewRegistry()
	d1 := declareIP(t, r1)
	declareIP(t, r2)

	foreign := mustConstruct(t, d1, "V6", "::1")
	holder, err := r2.Declare("Pacote", false,
		VariantSpec{Name: "Para", Fields: []Type{SumOf("EnderecoIp")}},
	)
	require.NoError(t, err)

	_, err = holder.Construct("Para", foreign)
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))
}

func Test_Value_Construct_OpaquePayload(t *testing.T) {
	r := NewRegistry()
	d, err := r.Declare("Rota", false,
		VariantSpec{Name: "Direta", Fields: []Type{OpaqueOf("Ipv4Addr")}},
		VariantSpec{Name: "Nenhuma"},
	)
	require.NoError(t, err)

	v := mustConstruct(t, d, "Direta", ipv4Addr{127, 0, 0, 1})
	assert.Equal(t, ipv4Addr{127, 0, 0, 1}, v.Payload()[0])

	// A different nominal name does not conform.
	_, err = d.Construct("Direta", fakeOpaque{})
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))
}

type fakeOpaque struct{}

func (fakeOpaque) OpaqueName() string            { return "Ipv6Addr" }
func (fakeOpaque) EqualOpaque(other Opaque) bool { return false }

func Test_Value_BytesPayloadIsCopied(t *testing.T) {
	r := NewRegistry()
	d, err := r.Declare("Quadro", false, VariantSpec{Name: "Bruto", Fields: []Type{Bytes}})
	require.NoError(t, err)

	buf := []byte{1, 2, 3}
	v := mustConstruct(t, d, "Bruto", buf)
	buf[0] = 99

	assert.Equal(t, []byte{1, 2, 3}, v.Payload()[0])
}

// --- generics ---------------------------------------------------------------

func Test_Value_Generic_InferenceFromPayload(t *testing.T) {
	r := NewRegistry()
	caixa, err := r.Declare("Caixa", true,
		VariantSpec{Name: "Cheia", Fields: []Type{Param, Str}},
		VariantSpec{Name: "Vazia"},
	)
	require.NoError(t, err)

	v, err := caixa.Construct("Cheia", int64(7), "rotulo")
	require.NoError(t, err)
	arg, generic := v.TypeArg()
	assert.True(t, generic)
	assert.Equal(t, Int, arg)
}

func Test_Value_Generic_NoParamSlotIsAmbiguous(t *testing.T) {
	r := NewRegistry()
	caixa, err := r.Declare("Caixa", true,
		VariantSpec{Name: "Cheia", Fields: []Type{Param}},
		VariantSpec{Name: "Vazia"},
	)
	require.NoError(t, err)

	_, err = caixa.Construct("Vazia")
	require.Error(t, err)
	assert.True(t, IsKind(err, AmbiguousTypeParameter))

	inst, err := caixa.Instantiate(Str)
	require.NoError(t, err)
	v, err := inst.Construct("Vazia")
	require.NoError(t, err)
	arg, _ := v.TypeArg()
	assert.Equal(t, Str, arg)
}

func Test_Value_Generic_InstanceChecksParamSlots(t *testing.T) {
	r := NewRegistry()
	caixa, err := r.Declare("Caixa", true,
		VariantSpec{Name: "Cheia", Fields: []Type{Param}},
		VariantSpec{Name: "Vazia"},
	)
	require.NoError(t, err)

	inst, err := caixa.Instantiate(Str)
	require.NoError(t, err)
	_, err = inst.Construct("Cheia", 42)
	require.Error(t, err)
	assert.True(t, IsKind(err, PayloadTypeMismatch))
}

func Test_Value_Instantiate_RequiresArgument(t *testing.T) {
	r := NewRegistry()

	_, err := r.Optional().Instantiate(NoType)
	require.Error(t, err)
	assert.True(t, IsKind(err, AmbiguousTypeParameter))

	d := declareIP(t, r)
	_, err = d.Instantiate(Int)
	require.Error(t, err) // not generic
}

// --- equality ---------------------------------------------------------------

func Test_Value_Equality_SameDeclTagPayload(t *testing.T) {
	r := NewRegistry()
	d := declareIP(t, r)

	a := mustConstruct(t, d, "V4", 127, 0, 0, 1)
	b := mustConstruct(t, d, "V4", 127, 0, 0, 1)
	c := mustConstruct(t, d, "V4", 127, 0, 0, 2)
	v6 := mustConstruct(t, d, "V6", "::1")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(v6))
	assert.False(t, a.Equal(nil))
}

func Test_Value_Equality_DifferentRegistriesDiffer(t *testing.T) {
	a := mustConstruct(t, declareIP(t, NewRegistry()), "V6", "::1")
	b := mustConstruct(t, declareIP(t, NewRegistry()), "V6", "::1")
	assert.False(t, a.Equal(b))
}

func Test_Value_Equality_RecursesThroughNestedValues(t *testing.T) {
	r := NewRegistry()
	lista, err := r.Declare("Lista", false,
		VariantSpec{Name: "Cons", Fields: []Type{Int, SumOf("Lista")}},
		VariantSpec{Name: "Nil"},
	)
	require.NoError(t, err)

	mk := func(xs ...int64) *Value {
		v := mustConstruct(t, lista, "Nil")
		for i := len(xs) - 1; i >= 0; i-- {
			v = mustConstruct(t, lista, "Cons", xs[i], v)
		}
		return v
	}

	assert.True(t, mk(1, 2, 3).Equal(mk(1, 2, 3)))
	assert.False(t, mk(1, 2, 3).Equal(mk(1, 2)))
	assert.False(t, mk(1, 2, 3).Equal(mk(1, 2, 4)))
}

func Test_Value_Equality_GenericTypeArgumentCounts(t *testing.T) {
	r := NewRegistry()

	noneInt, err := r.NoneOf(Int)
	require.NoError(t, err)
	noneStr, err := r.NoneOf(Str)
	require.NoError(t, err)
	noneInt2, err := r.NoneOf(Int)
	require.NoError(t, err)

	assert.True(t, noneInt.Equal(noneInt2))
	assert.False(t, noneInt.Equal(noneStr))
}

func Test_Value_Equality_OpaqueUsesOwnRules(t *testing.T) {
	r := NewRegistry()
	d, err := r.Declare("Rota", false,
		VariantSpec{Name: "Direta", Fields: []Type{OpaqueOf("Ipv4Addr")}},
	)
	require.NoError(t, err)

	a := mustConstruct(t, d, "Direta", ipv4Addr{10, 0, 0, 1})
	b := mustConstruct(t, d, "Direta", ipv4Addr{10, 0, 0, 1})
	c := mustConstruct(t, d, "Direta", ipv4Addr{10, 0, 0, 2})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
