package domain_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
)

// buildDomain allocates a single domain of the given kind and max value in
// its own Set, returning both. Used throughout this file since every
// property below only concerns one domain in isolation.
func buildDomain(t *testing.T, kind domain.Kind, max domain.Value) (domain.Ordered, *bddvar.Set) {
	t.Helper()
	b := bddvar.NewBuilder()
	d := domain.New(kind, b, "x", max)
	vars, err := b.Build()
	require.NoError(t, err)
	return d, vars
}

// genMaxAndValue produces (max, v) pairs with 0 <= v <= max and
// 1 <= max <= 32. max starts at 1 because a max of 0 gives UnaryDomain,
// BinaryDomain and GrayDomain zero bits, and bddvar.Builder.Build rejects a
// Set with zero variables. Capping max at 32 keeps PetriDomain (max+1 bits)
// and UnaryDomain (max bits) tractable for property-based testing.
func genMaxAndValue() gopter.Gen {
	return gen.IntRange(1, 32).FlatMap(func(v interface{}) gopter.Gen {
		max := domain.Value(v.(int))
		return gen.IntRange(0, int(max)).Map(func(x int) [2]domain.Value {
			return [2]domain.Value{max, domain.Value(x)}
		})
	}, reflect.TypeOf([2]domain.Value{}))
}

func forEachKind(t *testing.T, f func(t *testing.T, kind domain.Kind)) {
	for _, kind := range domain.All() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) { f(t, kind) })
	}
}

// TestRoundTrip is spec §8 property 1: decode_bits(encode_bits(v)) == v.
func TestRoundTrip(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind domain.Kind) {
		parameters := gopter.DefaultTestParameters()
		properties := gopter.NewProperties(parameters)

		properties.Property("round-trip", prop.ForAll(
			func(pair [2]domain.Value) bool {
				max, v := pair[0], pair[1]
				d, _ := buildDomain(t, kind, max)
				val := make(bddvar.Valuation)
				d.EncodeBits(val, v)
				return d.DecodeBits(val) == v
			},
			genMaxAndValue(),
		))

		properties.TestingRun(t)
	})
}

// TestSinglePointEncoding is spec §8 property 2: EncodeOne(v) has
// cardinality 1 when restricted to UnitCollection (it already is, since
// EncodeOne's clause pins every bit).
func TestSinglePointEncoding(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind domain.Kind) {
		// max starts at 1: see genMaxAndValue.
		for max := domain.Value(1); max <= 16; max++ {
			for v := domain.Value(0); v <= max; v++ {
				d, vars := buildDomain(t, kind, max)
				one := d.EncodeOne(vars, v)
				card := vars.ExactCardinality(vars.And(one, d.UnitCollection(vars)))
				require.Equal(t, int64(1), card.Int64(), "kind=%s max=%d v=%d", kind, max, v)
			}
		}
	})
}

// TestDisjointness is spec §8 property 3.
func TestDisjointness(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind domain.Kind) {
		const max = domain.Value(6)
		d, vars := buildDomain(t, kind, max)
		for v := domain.Value(0); v <= max; v++ {
			for w := domain.Value(0); w <= max; w++ {
				if v == w {
					continue
				}
				inter := vars.And(d.EncodeOne(vars, v), d.EncodeOne(vars, w))
				require.True(t, vars.IsFalse(inter), "kind=%s v=%d w=%d", kind, v, w)
			}
		}
	})
}

// TestCoverage is spec §8 property 4: the disjunction of every encode_one
// equals the unit collection.
func TestCoverage(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind domain.Kind) {
		const max = domain.Value(6)
		d, vars := buildDomain(t, kind, max)
		acc := vars.False()
		for v := domain.Value(0); v <= max; v++ {
			acc = vars.Or(acc, d.EncodeOne(vars, v))
		}
		require.True(t, vars.IsSubsetOf(acc, d.UnitCollection(vars)))
		require.True(t, vars.IsSubsetOf(d.UnitCollection(vars), acc))
	})
}

// TestOrder is spec §8 property 5.
func TestOrder(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind domain.Kind) {
		const max = domain.Value(6)
		d, vars := buildDomain(t, kind, max)
		for v := domain.Value(0); v <= max; v++ {
			le := d.EncodeLe(vars, v)
			expected := vars.Or(d.EncodeLt(vars, v), d.EncodeOne(vars, v))
			require.True(t, vars.IsSubsetOf(le, expected))
			require.True(t, vars.IsSubsetOf(expected, le))

			ge := d.EncodeGe(vars, v)
			notLt := vars.And(vars.Not(d.EncodeLt(vars, v)), d.UnitCollection(vars))
			require.True(t, vars.IsSubsetOf(ge, notLt))
			require.True(t, vars.IsSubsetOf(notLt, ge))
		}
		for v := domain.Value(0); v < max; v++ {
			w := v + 1
			require.True(t, vars.IsSubsetOf(d.EncodeLe(vars, v), d.EncodeLe(vars, w)))
			require.False(t, vars.IsSubsetOf(d.EncodeLe(vars, w), d.EncodeLe(vars, v)))
		}
	})
}

// TestScenarioS4 pins down spec §8 scenario S4.
func TestScenarioS4(t *testing.T) {
	d, vars := buildDomain(t, domain.Unary, 5)
	require.Len(t, d.SymbolicVariables(), 5)
	require.Len(t, d.DecodeCollection(vars, d.UnitCollection(vars)), 6)
	require.Empty(t, d.DecodeCollection(vars, d.EmptyCollection(vars)))
}

// TestScenarioS5 pins down spec §8 scenario S5.
func TestScenarioS5(t *testing.T) {
	d, vars := buildDomain(t, domain.Binary, 5)
	require.Len(t, d.SymbolicVariables(), 3)
	require.Len(t, d.DecodeCollection(vars, d.UnitCollection(vars)), 6)
}

// TestScenarioS6 pins down spec §8 scenario S6.
func TestScenarioS6(t *testing.T) {
	d, vars := buildDomain(t, domain.Petri, 3)
	require.Len(t, d.SymbolicVariables(), 4)
	require.Len(t, d.DecodeCollection(vars, d.UnitCollection(vars)), 4)
}
