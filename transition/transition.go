// Package transition assembles one variable's update.Compiled bit vector
// into the partial transition relation contributed by that variable (spec
// §4.E): the primed bit i agrees with the corresponding bit-answering Bdd,
// for every bit, conjoined together.
package transition

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/update"
)

// Build returns R_x = ⋀_j (x'_j <=> B_j) ∧ Unit(primedDomain), where x'_j is
// the j-th primed bit and B_j is compiled.Bits[j].Bdd.
//
// Unit(primedDomain) is conjoined here because a target variable's own
// primed bits must land on one of its valid patterns; it is NOT redundant
// with the per-variable Unit already folded into engine.System's cached
// global Unit, since that global Unit covers every variable's current bits,
// not the primed copy this relation constrains. The "other variables'
// primed bits are left unconstrained by R_x" half of the formula (spec
// §4.E) needs no code: simply never mentioning a Var in a Bdd is exactly
// how rudd leaves it free.
func Build(compiled update.Compiled, primedDomain domain.Domain, vars *bddvar.Set) bddvar.Bdd {
	primedVars := primedDomain.SymbolicVariables()
	if len(primedVars) != len(compiled.Bits) {
		panic("transition: primed domain bit width does not match compiled update width")
	}
	acc := vars.True()
	for i, bit := range compiled.Bits {
		acc = vars.And(acc, vars.Iff(vars.VarBdd(primedVars[i]), bit.Bdd))
	}
	return vars.And(acc, primedDomain.UnitCollection(vars))
}
