package update

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/expr"
)

// BitBDD is the bit-answering function for one bit of the target domain:
// Bdd holds whenever that bit is set in the encoded successor value.
type BitBDD struct {
	Var bddvar.Var
	Bdd bddvar.Bdd
}

// Compiled is an update function reduced to one Bdd per target bit, sorted
// by bit index — exactly what transition.Build needs (spec §4.E).
type Compiled struct {
	Target string
	Bits   []BitBDD
}

// guardedTerm pairs a result value with the (already-normalized) guard
// under which it is produced.
type guardedTerm struct {
	value domain.Value
	guard bddvar.Bdd
}

// Compile turns a RawUpdateFn into a Compiled bit vector (spec §4.D):
//
//  1. Guard normalization: term i fires only if its own guard holds and no
//     earlier term's guard held; Default fires if nothing else did.
//  2. Bit matrix: each guarded value is expanded to the target domain's bit
//     vector (EncodeBitsVector).
//  3. Bit-answering Bdds: bit j is the disjunction of every guard whose
//     value sets bit j.
func Compile(fn RawUpdateFn, target domain.Ordered, domains expr.Domains, vars *bddvar.Set) (Compiled, error) {
	guarded := make([]guardedTerm, 0, len(fn.Terms)+1)
	seen := vars.False()
	for _, term := range fn.Terms {
		g, err := expr.Compile(term.Guard, domains, vars)
		if err != nil {
			return Compiled{}, err
		}
		guarded = append(guarded, guardedTerm{value: term.Value, guard: vars.AndNot(g, seen)})
		seen = vars.Or(seen, g)
	}
	guarded = append(guarded, guardedTerm{value: fn.Default, guard: vars.Not(seen)})

	width := len(target.SymbolicVariables())
	bits := make([]bddvar.Bdd, width)
	for i := range bits {
		bits[i] = vars.False()
	}
	for _, gt := range guarded {
		vec := target.EncodeBitsVector(gt.value)
		for j, set := range vec {
			if set {
				bits[j] = vars.Or(bits[j], gt.guard)
			}
		}
	}

	result := make([]BitBDD, width)
	for i, v := range target.SymbolicVariables() {
		result[i] = BitBDD{Var: v, Bdd: bits[i]}
	}
	return Compiled{Target: fn.Target, Bits: result}, nil
}
