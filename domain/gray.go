package domain

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/symerr"
)

// GrayDomain encodes D = {0..max} using the same bit width as BinaryDomain,
// but via a Gray code: encode(v) = v XOR (v>>1), decode is the prefix-XOR
// inverse. Adjacent values differ in exactly one bit. Grounded on
// original_source/src/symbolic_domains/symbolic_domain.rs's
// GrayCodeIntegerDomain<u8>.
type GrayDomain struct {
	base
}

// NewGrayDomain allocates bitCount(max) fresh bit variables.
func NewGrayDomain(b *bddvar.Builder, name string, max Value) *GrayDomain {
	n := bitCount(max)
	vars := make([]bddvar.Var, 0, n)
	for i := 0; i < n; i++ {
		vars = append(vars, b.MakeVariable(varName(name, Value(i+1))))
	}
	return &GrayDomain{base: base{name: name, vars: vars, max: max}}
}

func binaryToGray(v Value) Value { return v ^ (v >> 1) }

func grayToBinary(v Value) Value {
	for mask := v >> 1; mask != 0; mask >>= 1 {
		v ^= mask
	}
	return v
}

func (d *GrayDomain) EncodeBits(val bddvar.Valuation, value Value) {
	if value > d.max {
		panic(&symerr.DomainOverflow{Variable: d.name, Value: value, Max: d.max})
	}
	gray := binaryToGray(value)
	for idx, v := range d.vars {
		val[v] = gray&(1<<uint(idx)) != 0
	}
}

func (d *GrayDomain) EncodeBitsVector(value Value) []bool {
	return encodeBitsVectorDefault(d, value)
}

func (d *GrayDomain) EncodeOne(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneDefault(d, vars, value)
}

func (d *GrayDomain) EncodeOneNot(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneNotDefault(d, vars, value)
}

func (d *GrayDomain) EmptyCollection(vars *bddvar.Set) bddvar.Bdd {
	return vars.False()
}

func (d *GrayDomain) UnitCollection(vars *bddvar.Set) bddvar.Bdd {
	acc := vars.False()
	for v := Value(0); ; v++ {
		acc = vars.Or(acc, d.EncodeOne(vars, v))
		if v == d.max {
			break
		}
	}
	return acc
}

func (d *GrayDomain) DecodeBits(val bddvar.Valuation) Value {
	var gray Value
	for idx, v := range d.vars {
		if val[v] {
			gray |= 1 << uint(idx)
		}
	}
	res := grayToBinary(gray)
	if res > d.max {
		panic(&symerr.InvalidEncoding{Variable: d.name})
	}
	return res
}

func (d *GrayDomain) DecodeCollection(vars *bddvar.Set, collection bddvar.Bdd) []Value {
	return decodeCollectionDefault(d, vars, collection)
}

func (d *GrayDomain) EncodeLt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLtByEnumeration(d, vars, bound)
}

func (d *GrayDomain) EncodeLe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLeDefault(d, vars, bound)
}

func (d *GrayDomain) EncodeGt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGtDefault(d, vars, bound)
}

func (d *GrayDomain) EncodeGe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGeDefault(d, vars, bound)
}

func (d *GrayDomain) Compare(a, b Value) int {
	return compareValue(a, b)
}

func (d *GrayDomain) AllPossibleValues() []Value {
	return allValuesUpTo(d.max)
}
