// Package expr implements the logical expression tree that guards update
// function terms (spec §3, §4.C) and its compilation to a Bdd.
package expr

// Expression is a closed sum type over Terminal/Not/And/Or/Xor/Implies.
// Go has no tagged unions, so this uses the conventional unexported
// marker-method pattern: only the variants declared in this file can
// implement Expression.
type Expression interface {
	isExpression()
}

// TerminalExpr wraps a single Proposition.
type TerminalExpr struct{ Prop Proposition }

func (TerminalExpr) isExpression() {}

// Terminal builds a leaf expression from a Proposition.
func Terminal(p Proposition) Expression { return TerminalExpr{Prop: p} }

// NotExpr negates Inner.
type NotExpr struct{ Inner Expression }

func (NotExpr) isExpression() {}

// Not negates e.
func Not(e Expression) Expression { return NotExpr{Inner: e} }

// AndExpr conjoins Operands; And() (zero operands) is true.
type AndExpr struct{ Operands []Expression }

func (AndExpr) isExpression() {}

// And conjoins an arbitrary number of expressions.
func And(es ...Expression) Expression { return AndExpr{Operands: es} }

// OrExpr disjoins Operands; Or() (zero operands) is false.
type OrExpr struct{ Operands []Expression }

func (OrExpr) isExpression() {}

// Or disjoins an arbitrary number of expressions.
func Or(es ...Expression) Expression { return OrExpr{Operands: es} }

// XorExpr is the exclusive disjunction of Left and Right.
type XorExpr struct{ Left, Right Expression }

func (XorExpr) isExpression() {}

// Xor builds an exclusive-or expression.
func Xor(left, right Expression) Expression { return XorExpr{Left: left, Right: right} }

// ImpliesExpr is Left => Right.
type ImpliesExpr struct{ Left, Right Expression }

func (ImpliesExpr) isExpression() {}

// Implies builds left => right.
func Implies(left, right Expression) Expression { return ImpliesExpr{Left: left, Right: right} }
