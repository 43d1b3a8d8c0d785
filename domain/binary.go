package domain

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/symerr"
)

// bitCount returns the minimal number of bits needed to represent every
// value in [0, max], i.e. ceil(log2(max+1)).
func bitCount(max Value) int {
	n := 0
	for (1 << uint(n)) <= int(max) {
		n++
	}
	return n
}

// BinaryDomain encodes D = {0..max} in little-endian binary, using
// ceil(log2(max+1)) bits. Grounded on
// original_source/src/symbolic_domains/symbolic_domain.rs's
// BinaryIntegerDomain<u8>.
type BinaryDomain struct {
	base
}

// NewBinaryDomain allocates bitCount(max) fresh bit variables.
func NewBinaryDomain(b *bddvar.Builder, name string, max Value) *BinaryDomain {
	n := bitCount(max)
	vars := make([]bddvar.Var, 0, n)
	for i := 0; i < n; i++ {
		vars = append(vars, b.MakeVariable(varName(name, Value(i+1))))
	}
	return &BinaryDomain{base: base{name: name, vars: vars, max: max}}
}

func (d *BinaryDomain) EncodeBits(val bddvar.Valuation, value Value) {
	if value > d.max {
		panic(&symerr.DomainOverflow{Variable: d.name, Value: value, Max: d.max})
	}
	for idx, v := range d.vars {
		val[v] = value&(1<<uint(idx)) != 0
	}
}

func (d *BinaryDomain) EncodeBitsVector(value Value) []bool {
	return encodeBitsVectorDefault(d, value)
}

func (d *BinaryDomain) EncodeOne(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneDefault(d, vars, value)
}

func (d *BinaryDomain) EncodeOneNot(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneNotDefault(d, vars, value)
}

func (d *BinaryDomain) EmptyCollection(vars *bddvar.Set) bddvar.Bdd {
	return vars.False()
}

// UnitCollection is the disjunction of the max+1 valid encodings; binary
// patterns above max (e.g. 6 and 7 when max=5) are not included.
func (d *BinaryDomain) UnitCollection(vars *bddvar.Set) bddvar.Bdd {
	acc := vars.False()
	for v := Value(0); ; v++ {
		acc = vars.Or(acc, d.EncodeOne(vars, v))
		if v == d.max {
			break
		}
	}
	return acc
}

func (d *BinaryDomain) DecodeBits(val bddvar.Valuation) Value {
	var res Value
	for idx, v := range d.vars {
		if val[v] {
			res |= 1 << uint(idx)
		}
	}
	if res > d.max {
		panic(&symerr.InvalidEncoding{Variable: d.name})
	}
	return res
}

func (d *BinaryDomain) DecodeCollection(vars *bddvar.Set, collection bddvar.Bdd) []Value {
	return decodeCollectionDefault(d, vars, collection)
}

func (d *BinaryDomain) EncodeLt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLtByEnumeration(d, vars, bound)
}

func (d *BinaryDomain) EncodeLe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLeDefault(d, vars, bound)
}

func (d *BinaryDomain) EncodeGt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGtDefault(d, vars, bound)
}

func (d *BinaryDomain) EncodeGe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGeDefault(d, vars, bound)
}

func (d *BinaryDomain) Compare(a, b Value) int {
	return compareValue(a, b)
}

func (d *BinaryDomain) AllPossibleValues() []Value {
	return allValuesUpTo(d.max)
}
