// Package engine owns the built system: one VarInfo per variable (current
// domain, primed domain, and that variable's transition relation), the
// shared bddvar.Set, and the cached Unit predicate. It implements the
// async successor/predecessor images and the auxiliary operations reach
// and sourcefn build on (spec §4.F).
package engine

import (
	"math/big"
	"sort"

	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/symerr"
)

// VarInfo is everything the engine knows about one system variable.
type VarInfo struct {
	Name         string
	PrimedName   string
	Domain       domain.Domain
	PrimedDomain domain.Domain
	Relation     bddvar.Bdd // R_x, built by transition.Build
}

// System is an immutable, built network: not safe for concurrent use from
// multiple goroutines (the underlying rudd.BDD is not documented as
// thread-safe), though independent Systems may run concurrently — see
// cmd/symbreach cross-validate.
type System struct {
	Vars  []VarInfo // sorted ascending by Name
	byName map[string]int
	Set   *bddvar.Set
	Unit  bddvar.Bdd
}

// New assembles a System from its variables' relations and caches Unit =
// ⋀_y unit(D_y). New sorts a copy of vars by Name, so the caller's order
// does not matter (spec §9 determinism).
func New(set *bddvar.Set, vars []VarInfo) *System {
	sorted := make([]VarInfo, len(vars))
	copy(sorted, vars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	byName := make(map[string]int, len(sorted))
	unit := set.True()
	for i, v := range sorted {
		byName[v.Name] = i
		unit = set.And(unit, v.Domain.UnitCollection(set))
	}
	return &System{Vars: sorted, byName: byName, Set: set, Unit: unit}
}

// Var looks up a VarInfo by name.
func (s *System) Var(name string) (VarInfo, bool) {
	i, ok := s.byName[name]
	if !ok {
		return VarInfo{}, false
	}
	return s.Vars[i], true
}

// SuccessorsAsync computes the states reachable from S by updating x alone
// (spec §4.F): conjoin R_x, forget x's old bits, promote x's primed bits to
// unprimed, and re-intersect Unit (the rename can otherwise straddle
// invalid patterns for the instant between forgetting and promoting).
func (s *System) SuccessorsAsync(x VarInfo, set bddvar.Bdd) bddvar.Bdd {
	xVars := x.Domain.SymbolicVariables()
	xPrimedVars := x.PrimedDomain.SymbolicVariables()
	t := s.Set.AndExist(set, x.Relation, xVars)
	t = s.Set.Rename(t, xPrimedVars, xVars)
	return s.Set.And(t, s.Unit)
}

// PredecessorsAsync computes the states from which x's update can reach
// set (spec §4.F): promote set's unprimed bits for x to primed (so it can
// be compared against R_x's primed half), conjoin R_x, and forget the
// primed bits.
func (s *System) PredecessorsAsync(x VarInfo, set bddvar.Bdd) bddvar.Bdd {
	xVars := x.Domain.SymbolicVariables()
	xPrimedVars := x.PrimedDomain.SymbolicVariables()
	renamed := s.Set.Rename(set, xVars, xPrimedVars)
	return s.Set.AndExist(renamed, x.Relation, xPrimedVars)
}

// EncodeOne encodes a single value of variable name as a Bdd.
func (s *System) EncodeOne(name string, value domain.Value) (bddvar.Bdd, error) {
	v, ok := s.Var(name)
	if !ok {
		return nil, &symerr.UnknownVariable{Name: name}
	}
	return v.Domain.EncodeOne(s.Set, value), nil
}

// PickState takes one satisfying valuation of set, restricted to unprimed
// bits, and returns the conjunctive clause of exactly that state (spec
// §4.F).
func (s *System) PickState(set bddvar.Bdd) (bddvar.Bdd, error) {
	var unprimed []bddvar.Var
	for _, v := range s.Vars {
		unprimed = append(unprimed, v.Domain.SymbolicVariables()...)
	}
	val, err := s.Set.Witness(set, unprimed)
	if err != nil {
		return nil, err
	}
	return s.Set.Clause(val), nil
}

// CountStates returns the exact number of distinct unprimed states in set:
// the raw satisfying-assignment count divided by 2^(#primed bits), since
// every unprimed state is paired with every possible (unconstrained)
// primed assignment unless set itself constrains the primed bits.
func (s *System) CountStates(set bddvar.Bdd) *big.Int {
	raw := s.Set.ExactCardinality(set)
	primedBits := 0
	for _, v := range s.Vars {
		primedBits += len(v.PrimedDomain.SymbolicVariables())
	}
	divisor := new(big.Int).Lsh(big.NewInt(1), uint(primedBits))
	if divisor.Sign() == 0 {
		return raw
	}
	out := new(big.Int)
	out.Div(raw, divisor)
	return out
}
