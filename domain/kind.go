package domain

import (
	"fmt"

	"github.com/nume-crypto/symbreach/bddvar"
)

// Kind selects which concrete Domain implementation to allocate for a
// system variable. This is the construction-time dispatch table spec §9
// calls "option (b)": a runtime enum rather than one specialized engine
// type per encoding, chosen because cmd/symbreach's cross-validation
// driver needs to build all four encodings for the same network side by
// side (spec §8 property 6, §6 "a cross-validation driver runs all four
// encodings").
type Kind int

const (
	Unary Kind = iota
	Binary
	Gray
	Petri
)

// String renders the CLI spelling of a Kind (spec §6: "unary|binary|
// petri_net|gray").
func (k Kind) String() string {
	switch k {
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Gray:
		return "gray"
	case Petri:
		return "petri_net"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the CLI spelling of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "unary":
		return Unary, nil
	case "binary":
		return Binary, nil
	case "gray":
		return Gray, nil
	case "petri_net":
		return Petri, nil
	default:
		return 0, fmt.Errorf("domain: unknown encoding %q (want unary, binary, gray or petri_net)", s)
	}
}

// All lists every Kind, in the order cmd/symbreach's cross-validation
// driver runs them.
func All() []Kind { return []Kind{Unary, Binary, Gray, Petri} }

// New allocates a fresh Ordered domain of the given Kind for variable
// name, over [0, max], registering its bit variables with b.
func New(kind Kind, b *bddvar.Builder, name string, max Value) Ordered {
	switch kind {
	case Unary:
		return NewUnaryDomain(b, name, max)
	case Binary:
		return NewBinaryDomain(b, name, max)
	case Gray:
		return NewGrayDomain(b, name, max)
	case Petri:
		return NewPetriDomain(b, name, max)
	default:
		panic(fmt.Sprintf("domain: unhandled Kind %d", int(kind)))
	}
}
