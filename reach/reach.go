// Package reach implements forward/backward symbolic reachability and
// weak-SCC decomposition over an engine.System (spec §4.G), logging each
// fixed-point step via internal/logging.
package reach

import (
	"sort"

	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/engine"
	"github.com/nume-crypto/symbreach/internal/logging"
)

// reverseCanonicalOrder returns sys.Vars' VarInfo in descending name order,
// the deterministic visiting order spec §5/§9 mandates for reach_fwd/bwd.
func reverseCanonicalOrder(sys *engine.System) []engine.VarInfo {
	out := make([]engine.VarInfo, len(sys.Vars))
	copy(out, sys.Vars)
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out
}

// Forward computes the set of states reachable from initial, restricted to
// universe, by repeatedly applying every variable's async successor image
// until no variable grows the set further. Every grown step is re-clipped
// to universe, matching how weak-SCC peeling reuses reach_fwd/reach_bwd
// over an ever-shrinking "remaining" universe without letting growth leak
// into already-peeled components (spec §4.G).
func Forward(sys *engine.System, initial, universe bddvar.Bdd) bddvar.Bdd {
	return fixedPoint(sys, initial, universe, sys.SuccessorsAsync, "fwd")
}

// Backward is Forward's dual, using predecessors instead of successors.
func Backward(sys *engine.System, target, universe bddvar.Bdd) bddvar.Bdd {
	return fixedPoint(sys, target, universe, sys.PredecessorsAsync, "bwd")
}

type imageFn func(x engine.VarInfo, set bddvar.Bdd) bddvar.Bdd

func fixedPoint(sys *engine.System, start, universe bddvar.Bdd, image imageFn, label string) bddvar.Bdd {
	set := sys.Set
	r := set.And(start, universe)
	order := reverseCanonicalOrder(sys)
	for {
		grew := false
		for _, x := range order {
			step := set.And(image(x, r), universe)
			if !set.IsSubsetOf(step, r) {
				before := set.Size(r)
				r = set.Or(r, step)
				logging.Debug().Str("dir", label).Str("var", x.Name).
					Int("size_before", before).Int("size_after", set.Size(r)).
					Msg("reach step")
				grew = true
				break // restart the outer loop from the first variable, per spec §4.G
			}
		}
		if !grew {
			return r
		}
	}
}

// WeakSCCs partitions universe into its weak strongly-connected components
// by repeatedly peeling one SCC at a time: pick a state, grow it by
// backward-then-forward closure until that stops growing the candidate,
// emit it, and remove it from the universe (spec §4.G).
func WeakSCCs(sys *engine.System, universe bddvar.Bdd) ([]bddvar.Bdd, error) {
	set := sys.Set
	remaining := universe
	var sccs []bddvar.Bdd
	for !set.IsFalse(remaining) {
		seed, err := sys.PickState(remaining)
		if err != nil {
			return nil, err
		}
		scc := seed
		for {
			bwd := Backward(sys, scc, remaining)
			fwd := Forward(sys, bwd, remaining)
			if set.IsSubsetOf(fwd, scc) {
				break
			}
			scc = fwd
		}
		sccs = append(sccs, scc)
		remaining = set.AndNot(remaining, scc)
		logging.Debug().Int("scc_count", len(sccs)).
			Int64("scc_size", sys.CountStates(scc).Int64()).
			Msg("weak scc peeled")
	}
	return sccs, nil
}
