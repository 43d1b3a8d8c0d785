// Package symerr defines the caller-visible error kinds of the engine
// (spec §7). ParseError and UnknownVariable are ordinary returned errors;
// DomainOverflow and InvalidEncoding are raised via panic, since they
// signal a contract violation inside the core that would otherwise
// silently corrupt subsequent BDDs.
package symerr

import "fmt"

// ParseError reports a malformed expression or update-function source at
// the given position.
type ParseError struct {
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Position, e.Message)
}

// UnknownVariable reports a public API call referencing a variable name
// that was never registered with the engine.
type UnknownVariable struct {
	Name string
}

func (e *UnknownVariable) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}

// DomainOverflow reports EncodeBits called with a value outside its
// domain. Always a bug in the caller, never a caller-recoverable
// condition — raised via panic, never returned.
type DomainOverflow struct {
	Variable string
	Value    uint8
	Max      uint8
}

func (e *DomainOverflow) Error() string {
	return fmt.Sprintf("value %d out of range for variable %q (max %d)", e.Value, e.Variable, e.Max)
}

// InvalidEncoding reports DecodeBits applied to a valuation outside a
// domain's unit collection. Always a bug in the caller — raised via
// panic, never returned.
type InvalidEncoding struct {
	Variable string
}

func (e *InvalidEncoding) Error() string {
	return fmt.Sprintf("valuation for variable %q is not a valid encoding", e.Variable)
}
