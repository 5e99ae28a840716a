package solver

import (
	"errors"
	"fmt"

	"retrograde/game"
)

var (
	// ErrSymmetryContract means a game's Symmetries are not self-consistent.
	ErrSymmetryContract = errors.New("symmetry contract violation")
	// ErrEngineInvariant means the solver's own bookkeeping broke.
	ErrEngineInvariant = errors.New("engine invariant violation")
)

// SymmetryViolation is returned when a symmetric image of a position being registered already
// belongs to another node.
type SymmetryViolation struct {
	Hash        game.Hash
	Existing    int
	Registering int
}

func (e *SymmetryViolation) Error() string {
	return fmt.Sprintf("%v: fingerprint %#x belongs to node %d, registering node %d",
		ErrSymmetryContract, uint64(e.Hash), e.Existing, e.Registering)
}

func (e *SymmetryViolation) Unwrap() error {
	return ErrSymmetryContract
}

// InvariantViolation is returned when the solver detects inconsistent node state.
type InvariantViolation struct {
	Node   int
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%v: node %d: %s", ErrEngineInvariant, e.Node, e.Reason)
}

func (e *InvariantViolation) Unwrap() error {
	return ErrEngineInvariant
}

func invariant(node int32, format string, args ...any) error {
	return &InvariantViolation{Node: int(node), Reason: fmt.Sprintf(format, args...)}
}
