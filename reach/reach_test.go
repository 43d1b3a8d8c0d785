package reach_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/engine"
	"github.com/nume-crypto/symbreach/expr"
	"github.com/nume-crypto/symbreach/reach"
	"github.com/nume-crypto/symbreach/transition"
	"github.com/nume-crypto/symbreach/update"
)

// eqTerm builds "variable == value" as a guard Expression.
func eqTerm(variable string, value domain.Value) expr.Expression {
	return expr.Terminal(expr.Proposition{Op: expr.Eq, Variable: variable, Value: value})
}

func compileVar(t *testing.T, name string, fn update.RawUpdateFn, primed domain.Ordered, domains expr.Domains, set *bddvar.Set) engine.VarInfo {
	t.Helper()
	compiled, err := update.Compile(fn, primed, domains, set)
	require.NoError(t, err)
	unprimed := domains[name]
	return engine.VarInfo{
		Name:         name,
		PrimedName:   name + "'",
		Domain:       unprimed,
		PrimedDomain: primed,
		Relation:     transition.Build(compiled, primed, set),
	}
}

// buildS1 is spec §8 scenario S1: x ∈ [0..2], x' = (x+1) mod 3, built under
// the given encoding kind so property 6 (self-consistency under encoding,
// spec §8) can be checked across all four.
func buildS1(t *testing.T, kind domain.Kind) *engine.System {
	t.Helper()
	b := bddvar.NewBuilder()
	x := domain.New(kind, b, "x", 2)
	xPrimed := domain.New(kind, b, "x'", 2)
	set, err := b.Build()
	require.NoError(t, err)

	domains := expr.Domains{"x": x}
	fn := update.RawUpdateFn{
		Target: "x",
		Terms: []update.Term{
			{Value: 1, Guard: eqTerm("x", 0)},
			{Value: 2, Guard: eqTerm("x", 1)},
		},
		Default: 0,
	}
	v := compileVar(t, "x", fn, xPrimed, domains, set)
	return engine.New(set, []engine.VarInfo{v})
}

// buildS2 is spec §8 scenario S2: x,y ∈ [0,1], x'=y, y'=x.
func buildS2(t *testing.T) *engine.System {
	t.Helper()
	b := bddvar.NewBuilder()
	x := domain.New(domain.Binary, b, "x", 1)
	y := domain.New(domain.Binary, b, "y", 1)
	xPrimed := domain.New(domain.Binary, b, "x'", 1)
	yPrimed := domain.New(domain.Binary, b, "y'", 1)
	set, err := b.Build()
	require.NoError(t, err)

	domains := expr.Domains{"x": x, "y": y}
	xFn := update.RawUpdateFn{Target: "x", Terms: []update.Term{{Value: 1, Guard: eqTerm("y", 1)}}, Default: 0}
	yFn := update.RawUpdateFn{Target: "y", Terms: []update.Term{{Value: 1, Guard: eqTerm("x", 1)}}, Default: 0}

	vx := compileVar(t, "x", xFn, xPrimed, domains, set)
	vy := compileVar(t, "y", yFn, yPrimed, domains, set)
	return engine.New(set, []engine.VarInfo{vx, vy})
}

// buildS3 is spec §8 scenario S3: z ∈ [0..3], terms [(3, z>=2)], default 0,
// built under the given encoding kind (see buildS1).
func buildS3(t *testing.T, kind domain.Kind) *engine.System {
	t.Helper()
	b := bddvar.NewBuilder()
	z := domain.New(kind, b, "z", 3)
	zPrimed := domain.New(kind, b, "z'", 3)
	set, err := b.Build()
	require.NoError(t, err)

	domains := expr.Domains{"z": z}
	geq2 := expr.Terminal(expr.Proposition{Op: expr.Geq, Variable: "z", Value: 2})
	fn := update.RawUpdateFn{Target: "z", Terms: []update.Term{{Value: 3, Guard: geq2}}, Default: 0}

	v := compileVar(t, "z", fn, zPrimed, domains, set)
	return engine.New(set, []engine.VarInfo{v})
}

func TestScenarioS1Forward(t *testing.T) {
	sys := buildS1(t, domain.Binary)
	set := sys.Set
	x, _ := sys.Var("x")

	from0 := x.Domain.EncodeOne(set, 0)
	got := reach.Forward(sys, from0, sys.Unit)

	want := set.Or(x.Domain.EncodeOne(set, 0), set.Or(x.Domain.EncodeOne(set, 1), x.Domain.EncodeOne(set, 2)))
	require.True(t, set.IsSubsetOf(got, want))
	require.True(t, set.IsSubsetOf(want, got))
}

func TestScenarioS1WeakSCCs(t *testing.T) {
	sys := buildS1(t, domain.Binary)
	sccs, err := reach.WeakSCCs(sys, sys.Unit)
	require.NoError(t, err)
	require.Len(t, sccs, 1)
	require.Equal(t, int64(3), sys.CountStates(sccs[0]).Int64())
}

func TestScenarioS2Forward(t *testing.T) {
	sys := buildS2(t)
	set := sys.Set
	x, _ := sys.Var("x")
	y, _ := sys.Var("y")

	from00 := set.And(x.Domain.EncodeOne(set, 0), y.Domain.EncodeOne(set, 0))
	got00 := reach.Forward(sys, from00, sys.Unit)
	require.True(t, set.IsSubsetOf(got00, from00))
	require.True(t, set.IsSubsetOf(from00, got00))

	// From (0,1), updating x copies y=1 into x, reaching (1,1); updating y
	// copies x=0 into y, reaching (0,0). Both are fixed points, so (1,0)
	// is never reached.
	from01 := set.And(x.Domain.EncodeOne(set, 0), y.Domain.EncodeOne(set, 1))
	from11 := set.And(x.Domain.EncodeOne(set, 1), y.Domain.EncodeOne(set, 1))
	got01 := reach.Forward(sys, from01, sys.Unit)
	want01 := set.Or(from01, set.Or(from11, from00))
	require.True(t, set.IsSubsetOf(got01, want01))
	require.True(t, set.IsSubsetOf(want01, got01))
}

func TestScenarioS2WeakSCCs(t *testing.T) {
	sys := buildS2(t)
	sccs, err := reach.WeakSCCs(sys, sys.Unit)
	require.NoError(t, err)
	// (0,1) and (1,0) each lead to both (0,0) and (1,1), so the
	// backward-then-forward closure of any seed covers all four states.
	require.Len(t, sccs, 1)

	var sizes []int64
	for _, scc := range sccs {
		sizes = append(sizes, sys.CountStates(scc).Int64())
	}
	require.ElementsMatch(t, []int64{4}, sizes)
}

func TestScenarioS3Forward(t *testing.T) {
	sys := buildS3(t, domain.Binary)
	set := sys.Set
	z, _ := sys.Var("z")

	from0 := z.Domain.EncodeOne(set, 0)
	got0 := reach.Forward(sys, from0, sys.Unit)
	require.True(t, set.IsSubsetOf(got0, from0))
	require.True(t, set.IsSubsetOf(from0, got0))

	from2 := z.Domain.EncodeOne(set, 2)
	got2 := reach.Forward(sys, from2, sys.Unit)
	want2 := set.Or(from2, z.Domain.EncodeOne(set, 3))
	require.True(t, set.IsSubsetOf(got2, want2))
	require.True(t, set.IsSubsetOf(want2, got2))

	from3 := z.Domain.EncodeOne(set, 3)
	got3 := reach.Forward(sys, from3, sys.Unit)
	require.True(t, set.IsSubsetOf(got3, from3))
	require.True(t, set.IsSubsetOf(from3, got3))
}

// TestReachIdempotence is spec §8 property 7.
func TestReachIdempotence(t *testing.T) {
	sys := buildS2(t)
	set := sys.Set
	x, _ := sys.Var("x")
	y, _ := sys.Var("y")
	from01 := set.And(x.Domain.EncodeOne(set, 0), y.Domain.EncodeOne(set, 1))

	once := reach.Forward(sys, from01, sys.Unit)
	twice := reach.Forward(sys, once, sys.Unit)
	require.True(t, set.IsSubsetOf(once, twice))
	require.True(t, set.IsSubsetOf(twice, once))
}

// TestReachDuality is spec §8 property 8: t ∈ fwd({s}) <=> s ∈ bwd({t}).
func TestReachDuality(t *testing.T) {
	sys := buildS2(t)
	set := sys.Set
	x, _ := sys.Var("x")
	y, _ := sys.Var("y")
	s := set.And(x.Domain.EncodeOne(set, 0), y.Domain.EncodeOne(set, 1))
	tState := set.And(x.Domain.EncodeOne(set, 1), y.Domain.EncodeOne(set, 0))

	fwdFromS := reach.Forward(sys, s, sys.Unit)
	require.True(t, set.IsSubsetOf(tState, fwdFromS))

	bwdFromT := reach.Backward(sys, tState, sys.Unit)
	require.True(t, set.IsSubsetOf(s, bwdFromT))
}

// TestScenarioS1ConsistentAcrossEncodings is spec §8 property 6: the
// forward-reachable set's cardinality from the same logical starting state
// must agree across all four encodings.
func TestScenarioS1ConsistentAcrossEncodings(t *testing.T) {
	var sizes []int64
	for _, kind := range domain.All() {
		sys := buildS1(t, kind)
		x, _ := sys.Var("x")
		from0 := x.Domain.EncodeOne(sys.Set, 0)
		got := reach.Forward(sys, from0, sys.Unit)
		sizes = append(sizes, sys.CountStates(got).Int64())
	}
	for i, size := range sizes {
		require.Equalf(t, sizes[0], size, "encoding %s diverged from encoding %s", domain.All()[i], domain.All()[0])
	}
}

// TestScenarioS3ConsistentAcrossEncodings is scenario S3's explicit property
// 6 requirement (spec §8): "under all four encodings, cardinalities at each
// step must match." Checked from every starting value of z, and for both
// forward and backward reachability, since WeakSCCs' peeling loop depends on
// both agreeing across encodings.
func TestScenarioS3ConsistentAcrossEncodings(t *testing.T) {
	starts := []domain.Value{0, 1, 2, 3}
	type sample struct{ fwd, bwd int64 }
	perEncoding := make([][]sample, len(domain.All()))

	for i, kind := range domain.All() {
		sys := buildS3(t, kind)
		z, _ := sys.Var("z")
		samples := make([]sample, 0, len(starts))
		for _, v := range starts {
			one := z.Domain.EncodeOne(sys.Set, v)
			fwd := reach.Forward(sys, one, sys.Unit)
			bwd := reach.Backward(sys, one, sys.Unit)
			samples = append(samples, sample{
				fwd: sys.CountStates(fwd).Int64(),
				bwd: sys.CountStates(bwd).Int64(),
			})
		}
		perEncoding[i] = samples
	}

	for i, v := range starts {
		for e := 1; e < len(perEncoding); e++ {
			require.Equalf(t, perEncoding[0][i], perEncoding[e][i],
				"start z=%d: encoding %s diverged from encoding %s", v, domain.All()[e], domain.All()[0])
		}
	}
}
