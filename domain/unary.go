package domain

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/symerr"
)

// UnaryDomain encodes D = {0..max} using max symbolic variables: value k
// sets the first k bits true and leaves the rest false. Grounded on
// original_source/src/symbolic_domains/symbolic_domain.rs's
// UnaryIntegerDomain (attributed there to Samuel Pastva).
type UnaryDomain struct {
	base
}

// NewUnaryDomain allocates max fresh bit variables named "<name>_v1" ..
// "<name>_v<max>" and returns the domain over them.
func NewUnaryDomain(b *bddvar.Builder, name string, max Value) *UnaryDomain {
	vars := make([]bddvar.Var, 0, max)
	for i := Value(0); i < max; i++ {
		vars = append(vars, b.MakeVariable(varName(name, i+1)))
	}
	return &UnaryDomain{base: base{name: name, vars: vars, max: max}}
}

func (d *UnaryDomain) EncodeBits(val bddvar.Valuation, value Value) {
	if int(value) > len(d.vars) {
		panic(&symerr.DomainOverflow{Variable: d.name, Value: value, Max: d.max})
	}
	for i, v := range d.vars {
		val[v] = i < int(value)
	}
}

func (d *UnaryDomain) EncodeBitsVector(value Value) []bool {
	return encodeBitsVectorDefault(d, value)
}

func (d *UnaryDomain) EncodeOne(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneDefault(d, vars, value)
}

func (d *UnaryDomain) EncodeOneNot(vars *bddvar.Set, value Value) bddvar.Bdd {
	return encodeOneNotDefault(d, vars, value)
}

func (d *UnaryDomain) EmptyCollection(vars *bddvar.Set) bddvar.Bdd {
	return vars.False()
}

// UnitCollection holds iff x_{k+1} => x_k for every adjacent pair: once a
// bit is true, every "smaller" bit must also be true.
func (d *UnaryDomain) UnitCollection(vars *bddvar.Set) bddvar.Bdd {
	acc := vars.True()
	for k := 1; k < len(d.vars); k++ {
		acc = vars.And(acc, vars.Implies(vars.VarBdd(d.vars[k]), vars.VarBdd(d.vars[k-1])))
	}
	return acc
}

func (d *UnaryDomain) DecodeBits(val bddvar.Valuation) Value {
	for i, v := range d.vars {
		if !val[v] {
			return Value(i)
		}
	}
	return Value(len(d.vars))
}

func (d *UnaryDomain) DecodeCollection(vars *bddvar.Set, collection bddvar.Bdd) []Value {
	return decodeCollectionDefault(d, vars, collection)
}

func (d *UnaryDomain) EncodeLt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLtByEnumeration(d, vars, bound)
}

func (d *UnaryDomain) EncodeLe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeLeDefault(d, vars, bound)
}

func (d *UnaryDomain) EncodeGt(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGtDefault(d, vars, bound)
}

func (d *UnaryDomain) EncodeGe(vars *bddvar.Set, bound Value) bddvar.Bdd {
	return encodeGeDefault(d, vars, bound)
}

func (d *UnaryDomain) Compare(a, b Value) int {
	return compareValue(a, b)
}

func (d *UnaryDomain) AllPossibleValues() []Value {
	return allValuesUpTo(d.max)
}
