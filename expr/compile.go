package expr

import (
	"github.com/nume-crypto/symbreach/bddvar"
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/symerr"
)

// Domains maps a system variable name to the Ordered domain encoding it.
// Compile needs Ordered (not just Domain) because Lt/Leq/Gt/Geq
// propositions require the comparison encodings.
type Domains map[string]domain.Ordered

// Compile translates an Expression into a Bdd over vars, dispatching each
// Proposition to its domain's comparison encoding (spec §4.C). It returns
// symerr.UnknownVariable if the expression references a variable absent
// from domains.
func Compile(e Expression, domains Domains, vars *bddvar.Set) (bddvar.Bdd, error) {
	switch v := e.(type) {
	case TerminalExpr:
		return compileProposition(v.Prop, domains, vars)
	case NotExpr:
		inner, err := Compile(v.Inner, domains, vars)
		if err != nil {
			return nil, err
		}
		return vars.Not(inner), nil
	case AndExpr:
		acc := vars.True()
		for _, operand := range v.Operands {
			bdd, err := Compile(operand, domains, vars)
			if err != nil {
				return nil, err
			}
			acc = vars.And(acc, bdd)
		}
		return acc, nil
	case OrExpr:
		acc := vars.False()
		for _, operand := range v.Operands {
			bdd, err := Compile(operand, domains, vars)
			if err != nil {
				return nil, err
			}
			acc = vars.Or(acc, bdd)
		}
		return acc, nil
	case XorExpr:
		left, err := Compile(v.Left, domains, vars)
		if err != nil {
			return nil, err
		}
		right, err := Compile(v.Right, domains, vars)
		if err != nil {
			return nil, err
		}
		return vars.Xor(left, right), nil
	case ImpliesExpr:
		left, err := Compile(v.Left, domains, vars)
		if err != nil {
			return nil, err
		}
		right, err := Compile(v.Right, domains, vars)
		if err != nil {
			return nil, err
		}
		return vars.Implies(left, right), nil
	default:
		panic("expr: unhandled Expression variant")
	}
}

func compileProposition(p Proposition, domains Domains, vars *bddvar.Set) (bddvar.Bdd, error) {
	d, ok := domains[p.Variable]
	if !ok {
		return nil, &symerr.UnknownVariable{Name: p.Variable}
	}
	switch p.Op {
	case Eq:
		return d.EncodeOne(vars, p.Value), nil
	case Neq:
		return d.EncodeOneNot(vars, p.Value), nil
	case Lt:
		return d.EncodeLt(vars, p.Value), nil
	case Leq:
		return d.EncodeLe(vars, p.Value), nil
	case Gt:
		return d.EncodeGt(vars, p.Value), nil
	case Geq:
		return d.EncodeGe(vars, p.Value), nil
	default:
		panic("expr: unhandled Op")
	}
}
