package core

import (
	"sync"
	"sync/atomic"
)

// Phase is the swap state machine position.
type Phase int32

const (
	PhaseIdle        Phase = iota // Accepting swaps
	PhasePendingSwap              // Cells exchanged, scan pending
	PhaseReverting                // No run formed, swapping back
	PhaseResolving                // Cascade in progress
	PhaseFinished                 // Goal reached or fatal error; no more swaps
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePendingSwap:
		return "pending_swap"
	case PhaseReverting:
		return "reverting"
	case PhaseResolving:
		return "resolving"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SwapOutcome is the result of a swap request.
type SwapOutcome uint8

const (
	SwapAccepted SwapOutcome = iota // A run formed and the cascade settled
	SwapRejected                    // No run formed; the swap was reverted
	SwapInvalid                     // Request refused without touching the grid
)

// String returns the string representation of a swap outcome.
func (o SwapOutcome) String() string {
	switch o {
	case SwapAccepted:
		return "accepted"
	case SwapRejected:
		return "rejected"
	case SwapInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// maxShuffles bounds the attempts to deal a board that has a legal move.
const maxShuffles = 32

// ProgressState is a read-only view of progress bookkeeping.
type ProgressState struct {
	Progress int
	Goal     int
	Percent  int
	Currency int
}

// Engine owns one game session: the grid, the swap state machine and the
// cascade. All mutation goes through RequestSwap.
type Engine struct {
	cfg     Config
	grid    *Grid
	spawn   *SpawnPolicy
	tracker *ProgressTracker
	cascade *Cascade

	phase atomic.Int32

	evMu   sync.Mutex
	events []Event

	moves     int
	bestChain int
}

// Initialize creates a rows x cols grid filled with no immediate matches
// using the default run length and resample cap.
func Initialize(rows, cols int, tokens []TokenType, rng Rand) (*Grid, error) {
	def := DefaultConfig()
	g := NewGrid(rows, cols)
	p := NewSpawnPolicy(tokens, rng, def.MinRun, def.MaxSpawnAttempts)
	if err := p.Fill(g); err != nil {
		return nil, err
	}
	return g, nil
}

// New validates cfg and deals a fresh board from rng.
// The dealt board has no runs and, when the board size allows, a legal move.
func New(cfg Config, rng Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		grid:    NewGrid(cfg.Rows, cfg.Cols),
		spawn:   NewSpawnPolicy(cfg.Tokens, rng, cfg.MinRun, cfg.MaxSpawnAttempts),
		tracker: NewProgressTracker(cfg),
	}
	e.cascade = NewCascade(e.grid, e.spawn, e.tracker, cfg.MinRun, e.emit)

	if err := e.deal(); err != nil {
		return nil, err
	}
	e.phase.Store(int32(PhaseIdle))
	return e, nil
}

// NewWithGrid starts a session on a prepared board, e.g. a level layout.
// The board must be dense; runs already on it are resolved (and scored)
// straight away.
func NewWithGrid(cfg Config, g *Grid, rng Rand) (*Engine, error) {
	cfg.Rows, cfg.Cols = g.Rows(), g.Cols()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if at, ok := g.FirstEmpty(); ok {
		return nil, &InvariantViolation{Op: "new", At: at, Detail: "initial grid has empty cells"}
	}

	e := &Engine{
		cfg:     cfg,
		grid:    g.Clone(),
		spawn:   NewSpawnPolicy(cfg.Tokens, rng, cfg.MinRun, cfg.MaxSpawnAttempts),
		tracker: NewProgressTracker(cfg),
	}
	e.cascade = NewCascade(e.grid, e.spawn, e.tracker, cfg.MinRun, e.emit)
	e.phase.Store(int32(PhaseIdle))

	if !Detect(e.grid, cfg.MinRun).Empty() {
		if _, err := e.Settle(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// deal fills the board until it has at least one legal move.
func (e *Engine) deal() error {
	for i := 0; i < maxShuffles; i++ {
		if err := e.spawn.Fill(e.grid); err != nil {
			return err
		}
		if len(FindMoves(e.grid, e.cfg.MinRun)) > 0 {
			return nil
		}
	}
	// Boards too small to ever hold a move are still playable to look at.
	return nil
}

// emit appends an event to the queue.
func (e *Engine) emit(ev Event) {
	e.evMu.Lock()
	e.events = append(e.events, ev)
	e.evMu.Unlock()
}

// DrainEvents returns queued events in emission order and empties the queue.
func (e *Engine) DrainEvents() []Event {
	e.evMu.Lock()
	defer e.evMu.Unlock()
	out := e.events
	e.events = nil
	return out
}

// RequestSwap validates and applies a swap between two adjacent cells.
//
// Outcomes:
//   - SwapInvalid with *InvalidSwapError: out of bounds, same cell or not adjacent.
//   - SwapInvalid with ErrBusy / ErrFinished: another swap is in flight or the session is over.
//   - SwapRejected: no run formed; the grid is restored exactly.
//   - SwapAccepted: the cascade ran to CascadeSettled.
//
// An *InvariantViolation from the cascade finishes the session.
func (e *Engine) RequestSwap(a, b Coord) (SwapOutcome, error) {
	if e.Phase() == PhaseFinished {
		return SwapInvalid, ErrFinished
	}
	if err := e.validateSwap(a, b); err != nil {
		return SwapInvalid, err
	}
	if !e.phase.CompareAndSwap(int32(PhaseIdle), int32(PhasePendingSwap)) {
		if e.Phase() == PhaseFinished {
			return SwapInvalid, ErrFinished
		}
		return SwapInvalid, ErrBusy
	}

	//nolint:errcheck // Bounds validated above
	e.grid.Swap(a, b)
	det := Detect(e.grid, e.cfg.MinRun)

	if det.Empty() {
		e.setPhase(PhaseReverting)
		//nolint:errcheck
		e.grid.Swap(a, b)
		e.emit(SwapReverted{A: a, B: b})
		e.setPhase(PhaseIdle)
		return SwapRejected, nil
	}

	e.setPhase(PhaseResolving)
	e.moves++
	return SwapAccepted, e.resolve(det.Cleared)
}

// Settle resolves runs already on an idle board without a swap.
func (e *Engine) Settle() (Outcome, error) {
	if !e.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseResolving)) {
		if e.Phase() == PhaseFinished {
			return OutcomeStable, ErrFinished
		}
		return OutcomeStable, ErrBusy
	}
	if err := e.resolve(CoordSet{}); err != nil {
		return OutcomeStable, err
	}
	if e.Finished() {
		return OutcomeGoalReached, nil
	}
	return OutcomeStable, nil
}

// resolve runs the cascade from the Resolving phase to a terminal phase.
func (e *Engine) resolve(initial CoordSet) error {
	outcome, steps, err := e.cascade.Resolve(initial)
	if steps > e.bestChain {
		e.bestChain = steps
	}
	if err != nil {
		e.setPhase(PhaseFinished)
		return err
	}

	if outcome == OutcomeStable && len(FindMoves(e.grid, e.cfg.MinRun)) == 0 {
		if err := e.deal(); err != nil {
			e.setPhase(PhaseFinished)
			return err
		}
		e.emit(BoardShuffled{})
	}

	e.emit(CascadeSettled{Outcome: outcome, Steps: steps})
	if outcome == OutcomeGoalReached {
		e.setPhase(PhaseFinished)
	} else {
		e.setPhase(PhaseIdle)
	}
	return nil
}

// validateSwap checks bounds, distinctness and adjacency.
func (e *Engine) validateSwap(a, b Coord) error {
	switch {
	case !e.grid.InBounds(a) || !e.grid.InBounds(b):
		return &InvalidSwapError{A: a, B: b, Reason: "out of bounds"}
	case a == b:
		return &InvalidSwapError{A: a, B: b, Reason: "same cell"}
	case !a.Adjacent(b):
		return &InvalidSwapError{A: a, B: b, Reason: "cells not adjacent"}
	}
	return nil
}

func (e *Engine) setPhase(p Phase) {
	e.phase.Store(int32(p))
}

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase {
	return Phase(e.phase.Load())
}

// Finished reports whether the session accepts no more swaps.
func (e *Engine) Finished() bool {
	return e.Phase() == PhaseFinished
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Grid returns a copy of the current board.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// Progress returns the current progress and currency.
func (e *Engine) Progress() ProgressState {
	return ProgressState{
		Progress: e.tracker.Progress(),
		Goal:     e.tracker.Goal(),
		Percent:  e.tracker.Percent(),
		Currency: e.tracker.Currency(),
	}
}

// Moves returns the number of accepted swaps.
func (e *Engine) Moves() int {
	return e.moves
}

// BestChain returns the longest cascade (in clear steps) seen so far.
func (e *Engine) BestChain() int {
	return e.bestChain
}

// Hint returns the legal move clearing the most cells.
func (e *Engine) Hint() (Move, bool) {
	return BestMove(e.grid, e.cfg.MinRun)
}
