// Package update compiles a RawUpdateFn — the only shape the core needs
// from a parser (spec §1, §6) — into a bit-answering Bdd vector for its
// target variable (spec §4.D).
package update

import (
	"github.com/nume-crypto/symbreach/domain"
	"github.com/nume-crypto/symbreach/expr"
)

// Term is one "result if guard" clause of an update function; the first
// term whose Guard holds wins.
type Term struct {
	Value domain.Value
	Guard expr.Expression
}

// RawUpdateFn is the update function for one system variable, in the form
// every parser front end (XML, JSON, or otherwise) must produce: an
// ordered list of guarded terms plus a catch-all Default.
type RawUpdateFn struct {
	Target  string
	Inputs  []string
	Terms   []Term
	Default domain.Value
}
