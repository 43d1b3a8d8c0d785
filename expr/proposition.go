package expr

import "github.com/nume-crypto/symbreach/domain"

// Op is a comparison operator. The variable is always on the left in a
// normalized Proposition — a reversed parse ("value op variable") is
// canonicalized by flipping Op, not by swapping operands.
type Op int

const (
	Eq Op = iota
	Neq
	Lt
	Leq
	Gt
	Geq
)

// Flip returns the operator for "value op variable" given "variable op
// value", i.e. Lt<->Gt, Leq<->Geq; Eq and Neq are symmetric and unchanged.
func (o Op) Flip() Op {
	switch o {
	case Lt:
		return Gt
	case Gt:
		return Lt
	case Leq:
		return Geq
	case Geq:
		return Leq
	default:
		return o
	}
}

func (o Op) String() string {
	switch o {
	case Eq:
		return "eq"
	case Neq:
		return "neq"
	case Lt:
		return "lt"
	case Leq:
		return "leq"
	case Gt:
		return "gt"
	case Geq:
		return "geq"
	default:
		return "?"
	}
}

// Proposition is the leaf of an Expression tree: "variable op value",
// normalized so the variable always appears on the left (spec §3).
type Proposition struct {
	Op       Op
	Variable string
	Value    domain.Value
}

// Flip returns the canonical form of a reversed parse ("value op
// variable").
func (p Proposition) Flip() Proposition {
	return Proposition{Op: p.Op.Flip(), Variable: p.Variable, Value: p.Value}
}
