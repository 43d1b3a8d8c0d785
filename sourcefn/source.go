// Package sourcefn owns the one contract this module needs from a parser
// front end — an ordered stream of update.RawUpdateFn — plus the
// max-value inference and engine assembly built on top of it (spec §4.H,
// §6). It never parses SBML-qual or any other wire format itself.
package sourcefn

import (
	"sort"
	"strings"

	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/engine"
	"github.com/nume-crypto/symbreach/expr"
	"github.com/nume-crypto/symbreach/symerr"
	"github.com/nume-crypto/symbreach/transition"
	"github.com/nume-crypto/symbreach/update"
)

// Source is an ordered iterator of RawUpdateFns, implementable by any
// parser front end (XML, JSON, a REPL). Next returns (fn, true, nil) for
// each element, then (zero, false, nil) once exhausted; a non-nil error
// aborts the stream.
type Source interface {
	Next() (update.RawUpdateFn, bool, error)
}

// SliceSource is an in-memory Source over a fixed slice, used by tests,
// the §8 scenario fixtures, and the CLI's JSON front end.
type SliceSource struct {
	fns []update.RawUpdateFn
	idx int
}

// NewSliceSource wraps fns as a Source.
func NewSliceSource(fns []update.RawUpdateFn) *SliceSource {
	return &SliceSource{fns: fns}
}

// Next implements Source.
func (s *SliceSource) Next() (update.RawUpdateFn, bool, error) {
	if s.idx >= len(s.fns) {
		return update.RawUpdateFn{}, false, nil
	}
	fn := s.fns[s.idx]
	s.idx++
	return fn, true, nil
}

// drain reads every element of src, rejecting variable names containing
// the reserved `'` character (spec §6) before any domain is allocated.
func drain(src Source) ([]update.RawUpdateFn, error) {
	var fns []update.RawUpdateFn
	for {
		fn, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if strings.ContainsRune(fn.Target, '\'') {
			return nil, &symerr.ParseError{Message: "variable name contains reserved character '\\'': " + fn.Target}
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

// MaxValues implements spec §6's max-value inference: each variable's max
// is the larger of the highest value it is ever assigned (its own terms
// and default) and the highest value it is ever compared against anywhere
// in the network.
func MaxValues(fns []update.RawUpdateFn) map[string]domain.Value {
	outputs := make(map[string]domain.Value)
	compared := make(map[string]domain.Value)

	for _, fn := range fns {
		out := fn.Default
		for _, term := range fn.Terms {
			if term.Value > out {
				out = term.Value
			}
			collectCompared(term.Guard, compared)
		}
		if cur, ok := outputs[fn.Target]; !ok || out > cur {
			outputs[fn.Target] = out
		}
	}

	result := make(map[string]domain.Value, len(outputs))
	for name, v := range outputs {
		result[name] = v
	}
	for name, v := range compared {
		if cur, ok := result[name]; !ok || v > cur {
			result[name] = v
		}
	}
	return result
}

func collectCompared(e expr.Expression, compared map[string]domain.Value) {
	switch v := e.(type) {
	case expr.TerminalExpr:
		if cur, ok := compared[v.Prop.Variable]; !ok || v.Prop.Value > cur {
			compared[v.Prop.Variable] = v.Prop.Value
		}
	case expr.NotExpr:
		collectCompared(v.Inner, compared)
	case expr.AndExpr:
		for _, operand := range v.Operands {
			collectCompared(operand, compared)
		}
	case expr.OrExpr:
		for _, operand := range v.Operands {
			collectCompared(operand, compared)
		}
	case expr.XorExpr:
		collectCompared(v.Left, compared)
		collectCompared(v.Right, compared)
	case expr.ImpliesExpr:
		collectCompared(v.Left, compared)
		collectCompared(v.Right, compared)
	}
}

// BuildEngine drains src, infers every variable's max value, allocates the
// shared bddvar.Set (original and primed bits, in canonical name order),
// compiles each RawUpdateFn's bit-answering vector and transition
// relation, and returns the assembled engine.System (spec §4.H, the
// "translation step" of §2's data-flow diagram).
func BuildEngine(src Source, kind domain.Kind) (*engine.System, error) {
	fns, err := drain(src)
	if err != nil {
		return nil, err
	}

	byTarget := make(map[string]update.RawUpdateFn, len(fns))
	for _, fn := range fns {
		byTarget[fn.Target] = fn
	}

	maxValues := MaxValues(fns)
	names := make([]string, 0, len(maxValues))
	for name := range maxValues {
		names = append(names, name)
	}
	sort.Strings(names)

	b := bddvar.NewBuilder()
	domains := make(expr.Domains, len(names))
	primed := make(map[string]domain.Ordered, len(names))
	for _, name := range names {
		domains[name] = domain.New(kind, b, name, maxValues[name])
	}
	for _, name := range names {
		primed[name] = domain.New(kind, b, name+"'", maxValues[name])
	}
	vars, err := b.Build()
	if err != nil {
		return nil, err
	}

	varInfos := make([]engine.VarInfo, 0, len(names))
	for _, name := range names {
		fn, ok := byTarget[name]
		if !ok {
			// Referenced (compared against) but never itself updated: it
			// never changes, so its update function is "always default
			// to its current value" — expressed as the identity via an
			// empty term list plus a default equal to the floor of its
			// own domain would be wrong in general, so such a variable is
			// only valid if some front end supplies its own identity
			// RawUpdateFn; BuildEngine treats a wholly absent target as a
			// parser contract violation.
			return nil, &symerr.ParseError{Message: "variable referenced but never assigned an update function: " + name}
		}
		compiled, err := update.Compile(fn, primed[name], domains, vars)
		if err != nil {
			return nil, err
		}
		relation := transition.Build(compiled, primed[name], vars)
		varInfos = append(varInfos, engine.VarInfo{
			Name:         name,
			PrimedName:   name + "'",
			Domain:       domains[name],
			PrimedDomain: primed[name],
			Relation:     relation,
		})
	}

	return engine.New(vars, varInfos), nil
}
