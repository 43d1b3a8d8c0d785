package domain

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/symerr"
)

// PetriDomain encodes D = {0..max} using max+1 symbolic variables, one-hot:
// encode_one(v) sets exactly the v-th bit. Grounded on
// original_source/src/symbolic_domains/symbolic_domain.rs's
// PetriNetIntegerDomain.
type PetriDomain struct {
	base
}

// NewPetriDomain allocates max+1 fresh bit variables.
func NewPetriDomain(b *bddvar.Builder, name string, max Value) *PetriDomain {
	vars := make([]bddvar.Var, 0, int(max)+1)
	for i := Value(0); ; i++ {
		vars = append(vars, b.MakeVariable(varName(name, i+1)))
		if i == max {
			break
		}
	}
	return &PetriDomain{base: base{name: name, vars: vars, max: max}}
}

func (d *PetriDomain) EncodeBits(val bddvar.Valuation, value Value) {
	if value > d.max {
		panic(&symerr.DomainOverflow{Variable: d.name, Value: value, Max: d.max})
	}
	for i, v := range d.vars {
		val[v] = i == int(value)
	}
}

func (d *PetriDomain) EncodeBitsVector(value Value) []bool {
	return encodeBitsVectorDefault(d, value)
}

func (d *PetriDomain) EncodeOne(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneDefault(d, vars, value)
}

func (d *PetriDomain) EncodeOneNot(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneNotDefault(d, vars, value)
}

func (d *PetriDomain) EmptyCollection(vars *bddvar.Set) bddvar.Bdd {
	return vars.False()
}

// UnitCollection holds iff exactly one of d.vars is true. There is no
// direct "exactly-k" primitive in bddvar (rudd's mk_sat_exactly_k is not
// part of the confirmed interface surface), so this is built directly:
// disjunction, over each bit position, of "this bit true, every other
// false".
func (d *PetriDomain) UnitCollection(vars *bddvar.Set) bddvar.Bdd {
	acc := vars.False()
	for i, v := range d.vars {
		clause := vars.VarBdd(v)
		for j, other := range d.vars {
			if i == j {
				continue
			}
			clause = vars.And(clause, vars.NotVar(other))
		}
		acc = vars.Or(acc, clause)
	}
	return acc
}

func (d *PetriDomain) DecodeBits(val bddvar.Valuation) Value {
	for i, v := range d.vars {
		if val[v] {
			return Value(i)
		}
	}
	panic(&symerr.InvalidEncoding{Variable: d.name})
}

func (d *PetriDomain) DecodeCollection(vars *bddvar.Set, collection bddvar.Bdd) []Value {
	return decodeCollectionDefault(d, vars, collection)
}

func (d *PetriDomain) EncodeLt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLtByEnumeration(d, vars, bound)
}

func (d *PetriDomain) EncodeLe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLeDefault(d, vars, bound)
}

func (d *PetriDomain) EncodeGt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGtDefault(d, vars, bound)
}

func (d *PetriDomain) EncodeGe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGeDefault(d, vars, bound)
}

func (d *PetriDomain) Compare(a, b Value) int {
	return compareValue(a, b)
}

func (d *PetriDomain) AllPossibleValues() []Value {
	return allValuesUpTo(d.max)
}
