package main

import (
	"encoding/json"
	"fmt"

	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/expr"
	"github.com/nume-crypto/symbreach/symerr"
	"github.com/nume-crypto/symbreach/update"
)

// wireExpr is the JSON rendering of an expr.Expression. It exists only as
// this CLI's stand-in wire format for the out-of-scope SBML-qual reader —
// it is not, and does not attempt to be, an SBML-qual decoder.
type wireExpr struct {
	Kind     string        `json:"kind"`
	Op       string        `json:"op,omitempty"`
	Variable string        `json:"variable,omitempty"`
	Value    domain.Value  `json:"value,omitempty"`
	Inner    *wireExpr     `json:"inner,omitempty"`
	Operands []wireExpr    `json:"operands,omitempty"`
	Left     *wireExpr     `json:"left,omitempty"`
	Right    *wireExpr     `json:"right,omitempty"`
}

type wireTerm struct {
	Value domain.Value `json:"value"`
	Guard wireExpr     `json:"guard"`
}

// wireUpdateFn is the JSON rendering of one update.RawUpdateFn.
type wireUpdateFn struct {
	Target  string       `json:"target"`
	Inputs  []string     `json:"inputs,omitempty"`
	Terms   []wireTerm   `json:"terms"`
	Default domain.Value `json:"default"`
}

func parseOp(s string) (expr.Op, error) {
	switch s {
	case "eq":
		return expr.Eq, nil
	case "neq":
		return expr.Neq, nil
	case "lt":
		return expr.Lt, nil
	case "leq":
		return expr.Leq, nil
	case "gt":
		return expr.Gt, nil
	case "geq":
		return expr.Geq, nil
	default:
		return 0, &symerr.ParseError{Message: "unknown comparison operator: " + s}
	}
}

func (w wireExpr) toExpression() (expr.Expression, error) {
	switch w.Kind {
	case "terminal":
		op, err := parseOp(w.Op)
		if err != nil {
			return nil, err
		}
		return expr.Terminal(expr.Proposition{Op: op, Variable: w.Variable, Value: w.Value}), nil
	case "not":
		if w.Inner == nil {
			return nil, &symerr.ParseError{Message: "not: missing inner expression"}
		}
		inner, err := w.Inner.toExpression()
		if err != nil {
			return nil, err
		}
		return expr.Not(inner), nil
	case "and":
		operands, err := toExpressions(w.Operands)
		if err != nil {
			return nil, err
		}
		return expr.And(operands...), nil
	case "or":
		operands, err := toExpressions(w.Operands)
		if err != nil {
			return nil, err
		}
		return expr.Or(operands...), nil
	case "xor":
		left, right, err := w.leftRight()
		if err != nil {
			return nil, err
		}
		return expr.Xor(left, right), nil
	case "implies":
		left, right, err := w.leftRight()
		if err != nil {
			return nil, err
		}
		return expr.Implies(left, right), nil
	default:
		return nil, &symerr.ParseError{Message: "unknown expression kind: " + w.Kind}
	}
}

func (w wireExpr) leftRight() (expr.Expression, expr.Expression, error) {
	if w.Left == nil || w.Right == nil {
		return nil, nil, &symerr.ParseError{Message: w.Kind + ": missing left/right expression"}
	}
	left, err := w.Left.toExpression()
	if err != nil {
		return nil, nil, err
	}
	right, err := w.Right.toExpression()
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func toExpressions(ws []wireExpr) ([]expr.Expression, error) {
	out := make([]expr.Expression, len(ws))
	for i, w := range ws {
		e, err := w.toExpression()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (w wireUpdateFn) toRawUpdateFn() (update.RawUpdateFn, error) {
	terms := make([]update.Term, len(w.Terms))
	for i, wt := range w.Terms {
		guard, err := wt.Guard.toExpression()
		if err != nil {
			return update.RawUpdateFn{}, fmt.Errorf("term %d: %w", i, err)
		}
		terms[i] = update.Term{Value: wt.Value, Guard: guard}
	}
	return update.RawUpdateFn{
		Target:  w.Target,
		Inputs:  w.Inputs,
		Terms:   terms,
		Default: w.Default,
	}, nil
}

// decodeUpdateFns decodes a JSON array of wireUpdateFn from data.
func decodeUpdateFns(data []byte) ([]update.RawUpdateFn, error) {
	var wires []wireUpdateFn
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, &symerr.ParseError{Message: "decoding update functions: " + err.Error()}
	}
	out := make([]update.RawUpdateFn, len(wires))
	for i, w := range wires {
		fn, err := w.toRawUpdateFn()
		if err != nil {
			return nil, fmt.Errorf("update function %q: %w", w.Target, err)
		}
		out[i] = fn
	}
	return out, nil
}
