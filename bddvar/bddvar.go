// Package bddvar adapts github.com/dalzilio/rudd's BDD interface to the
// vocabulary the rest of this module expects: named bit variables allocated
// once at construction time, partial valuations, and the handful of
// derived operations (select, simultaneous rename) rudd does not expose
// directly but that can be built from Exist/Apply/Replace.
package bddvar

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/dalzilio/rudd"
)

// Var is an index into the BDD's fixed variable space. Unlike
// biodivine_lib_bdd, rudd.New requires the variable count up front, so all
// Vars for a System are allocated by a single Builder before any Bdd value
// is created.
type Var int

// Bdd is a boolean function over the Set's variables. It is a value type;
// every operation returns a new Bdd and never mutates its operands.
type Bdd = rudd.Node

// Valuation is a partial assignment of boolean values to Vars, used to
// build conjunctive clauses (encode_bits' target type in spec terms).
type Valuation map[Var]bool

// Builder allocates Vars by name. Call MakeVariable for every bit a domain
// will need, for every system variable (original and primed), before
// calling Build. No Var can be added to a Set after Build returns.
type Builder struct {
	names []string
}

// NewBuilder returns an empty variable builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MakeVariable allocates one fresh bit variable and returns its index. name
// is kept only for diagnostics (rudd variables are unnamed internally).
func (b *Builder) MakeVariable(name string) Var {
	v := Var(len(b.names))
	b.names = append(b.names, name)
	return v
}

// Build finalizes the variable space and constructs the backing BDD. The
// Builder must not be reused afterwards.
func (b *Builder) Build() (*Set, error) {
	if len(b.names) == 0 {
		return nil, fmt.Errorf("bddvar: cannot build a Set with zero variables")
	}
	bdd, err := rudd.New(len(b.names))
	if err != nil {
		return nil, fmt.Errorf("bddvar: rudd.New: %w", err)
	}
	names := make([]string, len(b.names))
	copy(names, b.names)
	return &Set{bdd: bdd, names: names}, nil
}

// Set is the built, immutable variable space plus the operations the rest
// of the module needs. The backing rudd.BDD is held in an unexported field;
// callers outside this package reach it only through Set's methods.
type Set struct {
	bdd   rudd.BDD
	names []string
}

// NumVars returns the total number of bit variables in the Set.
func (s *Set) NumVars() int { return len(s.names) }

// Name returns the diagnostic name given to v at build time.
func (s *Set) Name(v Var) string { return s.names[int(v)] }

// True returns the constant-true Bdd.
func (s *Set) True() Bdd { return s.bdd.True() }

// False returns the constant-false Bdd.
func (s *Set) False() Bdd { return s.bdd.False() }

// VarBdd returns the Bdd asserting v is true.
func (s *Set) VarBdd(v Var) Bdd { return s.bdd.Ithvar(int(v)) }

// NotVar returns the Bdd asserting v is false.
func (s *Set) NotVar(v Var) Bdd { return s.bdd.NIthvar(int(v)) }

// And conjoins a (possibly empty) sequence of Bdds; And() == True().
func (s *Set) And(xs ...Bdd) Bdd {
	acc := s.bdd.True()
	for _, x := range xs {
		acc = s.bdd.Apply(acc, x, rudd.OPand)
	}
	return acc
}

// Or disjoins a (possibly empty) sequence of Bdds; Or() == False().
func (s *Set) Or(xs ...Bdd) Bdd {
	acc := s.bdd.False()
	for _, x := range xs {
		acc = s.bdd.Apply(acc, x, rudd.OPor)
	}
	return acc
}

// Not negates x.
func (s *Set) Not(x Bdd) Bdd { return s.bdd.Not(x) }

// Xor is built from And/Or/Not rather than a possibly-absent rudd.OPxor
// constant, so it only depends on the subset of the Operator vocabulary
// confirmed by the retrieved rudd source (OPand, OPor, OPimp, OPbiimp).
func (s *Set) Xor(a, b Bdd) Bdd {
	return s.And(s.Or(a, b), s.Not(s.And(a, b)))
}

// Implies returns a => b.
func (s *Set) Implies(a, b Bdd) Bdd { return s.bdd.Apply(a, b, rudd.OPimp) }

// Iff returns a <=> b.
func (s *Set) Iff(a, b Bdd) Bdd { return s.bdd.Apply(a, b, rudd.OPbiimp) }

// AndNot returns a & !b.
func (s *Set) AndNot(a, b Bdd) Bdd { return s.And(a, s.Not(b)) }

// IsSubsetOf reports whether a's satisfying set is contained in b's,
// i.e. a => b is a tautology. This is the fixed-point termination test
// used throughout reach.
func (s *Set) IsSubsetOf(a, b Bdd) bool {
	return s.bdd.Apply(a, b, rudd.OPimp).IsTrue()
}

// IsFalse reports whether x is the empty set.
func (s *Set) IsFalse(x Bdd) bool { return x.IsFalse() }

// Clause builds the conjunctive clause for a Valuation: the Bdd satisfied
// exactly by assignments agreeing with val on every variable it mentions.
func (s *Set) Clause(val Valuation) Bdd {
	vars := make([]Var, 0, len(val))
	for v := range val {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	acc := s.bdd.True()
	for _, v := range vars {
		if val[v] {
			acc = s.bdd.Apply(acc, s.bdd.Ithvar(int(v)), rudd.OPand)
		} else {
			acc = s.bdd.Apply(acc, s.bdd.NIthvar(int(v)), rudd.OPand)
		}
	}
	return acc
}

func (s *Set) varset(vars []Var) Bdd {
	ints := make([]int, len(vars))
	for i, v := range vars {
		ints[i] = int(v)
	}
	return s.bdd.Makeset(ints)
}

// Exists existentially quantifies vars out of x.
func (s *Set) Exists(x Bdd, vars []Var) Bdd {
	if len(vars) == 0 {
		return x
	}
	return s.bdd.Exist(x, s.varset(vars))
}

// AndExist computes Exists(And(a, b), vars) in one relational-composition
// step, mirroring rudd's own Set.AndExist helper (AppEx(a, b, OPand,
// varset)) — see other_examples/.../dalzilio-rudd__bdd.go.go.
func (s *Set) AndExist(a, b Bdd, vars []Var) Bdd {
	if len(vars) == 0 {
		return s.And(a, b)
	}
	return s.bdd.AppEx(a, b, rudd.OPand, s.varset(vars))
}

// Select fixes every variable mentioned in val to its given value and
// removes it from the support, i.e. the cofactor of x under val. rudd has
// no direct primitive for this, so it is built from And + Exists, which is
// correct because fixing a variable to a constant and then forgetting it is
// exactly what "selecting" a partial valuation means.
func (s *Set) Select(x Bdd, val Valuation) Bdd {
	vars := make([]Var, 0, len(val))
	for v := range val {
		vars = append(vars, v)
	}
	return s.Exists(s.And(x, s.Clause(val)), vars)
}

// Rename substitutes every from[i] with to[i] simultaneously. Pairs are
// applied as one substitution (a single rudd.Replacer), not as a sequence
// of one-variable renames, which is what makes this safe even when the
// from/to index sets interleave or overlap — see spec §4.F's note on
// rename ordering. It relies on rudd.NewReplacer taking the two index
// slices and returning (Replacer, error).
func (s *Set) Rename(x Bdd, from, to []Var) Bdd {
	if len(from) != len(to) {
		panic("bddvar: Rename: from/to length mismatch")
	}
	if len(from) == 0 {
		return x
	}
	fromIdx := make([]int, len(from))
	toIdx := make([]int, len(to))
	for i := range from {
		fromIdx[i] = int(from[i])
		toIdx[i] = int(to[i])
	}
	replacer, err := rudd.NewReplacer(fromIdx, toIdx)
	if err != nil {
		panic(fmt.Sprintf("bddvar: Rename: building replacer: %v", err))
	}
	return s.bdd.Replace(x, replacer)
}

// ExactCardinality returns the exact number of satisfying valuations of x
// over the full variable space, as an arbitrary-precision integer.
func (s *Set) ExactCardinality(x Bdd) *big.Int {
	return s.bdd.Satcount(x)
}

// Size returns the number of internal BDD nodes reachable from x, a rough
// measure of representation size used for progress logging.
func (s *Set) Size(x Bdd) int { return x.Size() }

// ErrEmptySet is returned by Witness when asked for a witness of False().
var ErrEmptySet = fmt.Errorf("bddvar: cannot pick a witness of the empty set")

type stopIteration struct{ witness []int }

func (stopIteration) Error() string { return "bddvar: internal early-stop signal" }

// Witness returns one satisfying valuation of x, expressed over the given
// vars, as a Valuation that assigns every one of vars (don't-care bits are
// set to false). rudd's Allsat
// iterates every satisfying assignment and stops early only when the
// callback returns an error, which this uses as an escape hatch to fetch
// just the first one.
func (s *Set) Witness(x Bdd, vars []Var) (Valuation, error) {
	if s.IsFalse(x) {
		return nil, ErrEmptySet
	}
	var found *stopIteration
	err := s.bdd.Allsat(x, func(assignment []int) error {
		found = &stopIteration{witness: append([]int(nil), assignment...)}
		return found
	})
	if err != nil {
		if _, ok := err.(*stopIteration); !ok {
			return nil, fmt.Errorf("bddvar: Allsat: %w", err)
		}
	}
	if found == nil {
		return nil, ErrEmptySet
	}
	val := make(Valuation, len(vars))
	for _, v := range vars {
		bit := found.witness[int(v)]
		if bit < 0 {
			// don't-care: pick false, matching spec's "selecting them to false".
			val[v] = false
			continue
		}
		val[v] = bit == 1
	}
	return val, nil
}

// AllValuations decodes every satisfying assignment of x, restricted to
// vars, as a Valuation slice in deterministic (lexicographic over var
// index) order. Don't-care bits are expanded into both branches so that
// every returned Valuation is total over vars.
func (s *Set) AllValuations(x Bdd, vars []Var) []Valuation {
	var out []Valuation
	_ = s.bdd.Allsat(x, func(assignment []int) error {
		base := make(Valuation, len(vars))
		var dontCares []Var
		for _, v := range vars {
			bit := assignment[int(v)]
			if bit < 0 {
				dontCares = append(dontCares, v)
				continue
			}
			base[v] = bit == 1
		}
		expand(base, dontCares, &out)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessValuation(out[i], out[j], vars) })
	return out
}

func expand(base Valuation, dontCares []Var, out *[]Valuation) {
	if len(dontCares) == 0 {
		cp := make(Valuation, len(base))
		for k, v := range base {
			cp[k] = v
		}
		*out = append(*out, cp)
		return
	}
	head, rest := dontCares[0], dontCares[1:]
	base[head] = false
	expand(base, rest, out)
	base[head] = true
	expand(base, rest, out)
	delete(base, head)
}

func lessValuation(a, b Valuation, vars []Var) bool {
	for _, v := range vars {
		if a[v] != b[v] {
			return !a[v] && b[v]
		}
	}
	return false
}
