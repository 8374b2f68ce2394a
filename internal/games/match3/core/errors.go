package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a swap arrives while a previous one is still resolving.
	ErrBusy = errors.New("match3: swap already in flight")

	// ErrFinished is returned for swaps after the goal has been reached.
	ErrFinished = errors.New("match3: session finished")
)

// BoundsError reports access to a coordinate outside the grid.
// Callers should treat it as a no-op; it is never shown to the player.
type BoundsError struct {
	At   Coord
	Rows int
	Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("match3: coordinate %s outside %dx%d grid", e.At, e.Rows, e.Cols)
}

// InvalidSwapError reports a swap request that is out of bounds, not
// adjacent, or targets the same cell twice. State is left untouched.
type InvalidSwapError struct {
	A, B   Coord
	Reason string
}

func (e *InvalidSwapError) Error() string {
	return fmt.Sprintf("match3: invalid swap %s <-> %s: %s", e.A, e.B, e.Reason)
}

// InvariantViolation is fatal to the session. It signals a configuration or
// logic bug, e.g. a palette too small to satisfy the no-immediate-match rule.
type InvariantViolation struct {
	Op     string
	At     Coord
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("match3: invariant violated in %s at %s: %s", e.Op, e.At, e.Detail)
}
