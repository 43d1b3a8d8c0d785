// Package domain implements the symbolic domain contract: invertible
// encodings between a small integer value and a tuple of BDD bit
// variables, plus the set-algebraic operations built on top of them.
//
// Grounded on original_source/src/symbolic_domains/symbolic_domain.rs. This
// package commits to the "newer" contract described there (encode_one_not
// split out, Ordered separated from the base contract) rather than the
// parallel, overlapping "old" module also present in that source tree.
package domain

import "github.com/nume-crypto/symbreach/bddvar"

// Value is the integer type every domain encodes. The reference
// implementation fixes this to a byte-sized unsigned integer (0..=255);
// Go's lack of trait-level generics over both "encoding kind" and "value
// type" at once makes committing to one concrete Value type the simpler,
// idiomatic choice — the axis of polymorphism that actually matters here is
// encoding kind, not value representation.
type Value = uint8

// Domain is satisfied by every integer-to-bit encoding. All methods are
// pure; a Domain's bit variables are fixed at construction and never
// change.
type Domain interface {
	// Name is the system variable name this domain encodes.
	Name() string

	// MaxValue is the largest representable value, inclusive.
	MaxValue() Value

	// EncodeBits sets val's bits for exactly this domain's symbolic
	// variables to encode value. Panics (DomainOverflow) if value exceeds
	// MaxValue.
	EncodeBits(val bddvar.Valuation, value Value)

	// EncodeBitsVector is EncodeBits, inspected as an ordered []bool over
	// SymbolicVariables(). Used by the update-function compiler's bit
	// matrix (spec §4.D step 2).
	EncodeBitsVector(value Value) []bool

	// EncodeOne returns the Bdd satisfied by exactly the encoding of
	// value.
	EncodeOne(vars *bddvar.Set, value Value) bddvar.Bdd

	// EncodeOneNot returns NOT EncodeOne(value), intersected with
	// UnitCollection so the result never contains invalid bit patterns.
	EncodeOneNot(vars *bddvar.Set, value Value) bddvar.Bdd

	// UnitCollection returns the Bdd of every valid bit pattern.
	UnitCollection(vars *bddvar.Set) bddvar.Bdd

	// EmptyCollection returns the Bdd of no bit patterns.
	EmptyCollection(vars *bddvar.Set) bddvar.Bdd

	// SymbolicVariables returns this domain's bit variables, sorted by
	// bit index.
	SymbolicVariables() []bddvar.Var

	// DecodeBits is the inverse of EncodeBits on valid patterns. Behavior
	// is undefined (panic preferred, InvalidEncoding) outside of
	// UnitCollection.
	DecodeBits(val bddvar.Valuation) Value

	// DecodeCollection enumerates every value encoded in collection, in a
	// deterministic (if arbitrary) order.
	DecodeCollection(vars *bddvar.Set, collection bddvar.Bdd) []Value
}

// Ordered is a Domain whose values carry a total order, and so supports
// the comparison encodings used by Proposition{Lt,Leq,Gt,Geq}.
type Ordered interface {
	Domain

	// EncodeLt returns the Bdd of values strictly less than bound.
	EncodeLt(vars *bddvar.Set, bound Value) bddvar.Bdd
	// EncodeLe returns the Bdd of values <= bound.
	EncodeLe(vars *bddvar.Set, bound Value) bddvar.Bdd
	// EncodeGt returns the Bdd of values > bound, intersected with
	// UnitCollection (NOT over a non-full encoding can otherwise produce
	// invalid patterns).
	EncodeGt(vars *bddvar.Set, bound Value) bddvar.Bdd
	// EncodeGe returns the Bdd of values >= bound.
	EncodeGe(vars *bddvar.Set, bound Value) bddvar.Bdd

	// Compare implements the domain's total order over Value.
	Compare(a, b Value) int

	// AllPossibleValues lists every value in [0, MaxValue], ascending.
	AllPossibleValues() []Value
}

// base holds the fields every concrete domain needs and provides the
// contract's default methods (EncodeOne, EncodeOneNot, EncodeBitsVector,
// DecodeCollection, EncodeLt-derived Le/Gt/Ge). Go has no trait default
// methods, so these are free functions taking a Domain rather than methods
// promoted through embedding — base supplies the storage, the package-level
// helpers below supply the behavior, and each concrete domain wires one to
// the other explicitly.
type base struct {
	name string
	vars []bddvar.Var // invariant: sorted ascending by index
	max  Value
}

func (b *base) Name() string                   { return b.name }
func (b *base) MaxValue() Value                { return b.max }
func (b *base) SymbolicVariables() []bddvar.Var { return b.vars }

// encodeOneDefault implements Domain.EncodeOne in terms of EncodeBits, as
// spec §4.A prescribes.
func encodeOneDefault(d Domain, vars *bddvar.Set, value Value) bddvar.Bdd {
	val := make(bddvar.Valuation, len(d.SymbolicVariables()))
	d.EncodeBits(val, value)
	return vars.Clause(val)
}

// encodeOneNotDefault implements Domain.EncodeOneNot.
func encodeOneNotDefault(d Domain, vars *bddvar.Set, value Value) bddvar.Bdd {
	one := d.EncodeOne(vars, value)
	return vars.And(vars.Not(one), d.UnitCollection(vars))
}

// encodeBitsVectorDefault implements Domain.EncodeBitsVector in terms of
// EncodeBits, ordering the result by SymbolicVariables() (already sorted
// by bit index).
func encodeBitsVectorDefault(d Domain, value Value) []bool {
	val := make(bddvar.Valuation, len(d.SymbolicVariables()))
	d.EncodeBits(val, value)
	out := make([]bool, len(d.SymbolicVariables()))
	for i, v := range d.SymbolicVariables() {
		out[i] = val[v]
	}
	return out
}

// decodeCollectionDefault implements Domain.DecodeCollection: quantify
// away every bit variable foreign to d, pin what remains to false (a
// belt-and-braces step mirroring the reference implementation, since Exist
// alone already removes the dependency), then decode every satisfying
// valuation over d's own bits.
func decodeCollectionDefault(d Domain, vars *bddvar.Set, collection bddvar.Bdd) []Value {
	encoding := d.SymbolicVariables()
	owned := make(map[bddvar.Var]bool, len(encoding))
	for _, v := range encoding {
		owned[v] = true
	}
	var foreign []bddvar.Var
	for i := 0; i < vars.NumVars(); i++ {
		v := bddvar.Var(i)
		if !owned[v] {
			foreign = append(foreign, v)
		}
	}
	reduced := vars.Exists(collection, foreign)
	if len(foreign) > 0 {
		pinned := make(bddvar.Valuation, len(foreign))
		for _, v := range foreign {
			pinned[v] = false
		}
		reduced = vars.Select(reduced, pinned)
	}

	valuations := vars.AllValuations(reduced, encoding)
	out := make([]Value, 0, len(valuations))
	for _, val := range valuations {
		out = append(out, d.DecodeBits(val))
	}
	return out
}

// encodeLeDefault, encodeGtDefault and encodeGeDefault implement the
// Ordered contract's default relations from EncodeLt/EncodeOne, exactly as
// spec §4.A's Ordered variant prescribes.
func encodeLeDefault(d Ordered, vars *bddvar.Set, bound Value) bddvar.Bdd {
	return vars.Or(d.EncodeLt(vars, bound), d.EncodeOne(vars, bound))
}

func encodeGtDefault(d Ordered, vars *bddvar.Set, bound Value) bddvar.Bdd {
	le := d.EncodeLe(vars, bound)
	return vars.And(vars.Not(le), d.UnitCollection(vars))
}

func encodeGeDefault(d Ordered, vars *bddvar.Set, bound Value) bddvar.Bdd {
	return vars.Or(d.EncodeGt(vars, bound), d.EncodeOne(vars, bound))
}

// encodeLtByEnumeration implements the "disjoin all encode_one(v) for v <
// bound" shape used by all four domains in original_source. A closed form
// exists for Unary (a single bit negation) but spec §9 (OQ-2) notes either
// is acceptable as long as the ordering properties hold, and a single
// shared shape is easier to keep correct across four domains than four
// bespoke ones.
func encodeLtByEnumeration(d Ordered, vars *bddvar.Set, bound Value) bddvar.Bdd {
	acc := d.EmptyCollection(vars)
	for v := Value(0); v < bound; v++ {
		acc = vars.Or(acc, d.EncodeOne(vars, v))
	}
	return acc
}
