package core

import "fmt"

// Outcome is how a cascade terminated.
type Outcome uint8

const (
	OutcomeStable      Outcome = iota // No runs left on the board
	OutcomeGoalReached                // Progress hit the goal mid-cascade
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeStable:
		return "stable"
	case OutcomeGoalReached:
		return "goal_reached"
	default:
		return "unknown"
	}
}

// maxCascadeSteps bounds the resolve loop. With positive weights every step
// advances progress, so the goal ends any chain long before this.
const maxCascadeSteps = 1000

// Cascade runs the clear, score, gravity, refill, rescan loop.
type Cascade struct {
	grid    *Grid
	spawn   *SpawnPolicy
	tracker *ProgressTracker
	minRun  int
	emit    func(Event)
}

// NewCascade wires a cascade to its collaborators. emit receives every event
// in order; it may be nil.
func NewCascade(g *Grid, spawn *SpawnPolicy, tracker *ProgressTracker, minRun int, emit func(Event)) *Cascade {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Cascade{
		grid:    g,
		spawn:   spawn,
		tracker: tracker,
		minRun:  minRun,
		emit:    emit,
	}
}

// Resolve clears runs until the board is stable or the goal is reached.
// initial is the cleared set found by the swap; when empty the board is scanned.
// Returns the outcome and the number of clear steps performed.
func (cs *Cascade) Resolve(initial CoordSet) (Outcome, int, error) {
	if at, ok := cs.grid.FirstEmpty(); ok {
		return OutcomeStable, 0, &InvariantViolation{Op: "resolve", At: at, Detail: "grid not dense at cascade entry"}
	}

	cleared := initial
	for step := 1; step <= maxCascadeSteps; step++ {
		if step > 1 || cleared.Empty() {
			cleared = Detect(cs.grid, cs.minRun).Cleared
		}
		if cleared.Empty() {
			return OutcomeStable, step - 1, nil
		}

		counts := cs.clear(step, cleared)
		if cs.score(counts) {
			return OutcomeGoalReached, step, nil
		}

		cs.applyGravity()
		spawned, err := cs.spawn.Refill(cs.grid)
		for _, ev := range spawned {
			cs.emit(ev)
		}
		if err != nil {
			return OutcomeStable, step, err
		}
	}
	return OutcomeStable, maxCascadeSteps, &InvariantViolation{
		Op:     "resolve",
		Detail: fmt.Sprintf("cascade did not settle within %d steps", maxCascadeSteps),
	}
}

// clear tallies the cleared cells by type, empties them and emits CellsCleared.
func (cs *Cascade) clear(step int, cleared CoordSet) map[TokenType]int {
	coords := cleared.Coords()
	types := make([]TokenType, len(coords))
	counts := make(map[TokenType]int)
	for i, c := range coords {
		t := cs.grid.At(c)
		types[i] = t
		counts[t]++
	}
	for _, c := range coords {
		//nolint:errcheck // Coords come from a scan of this grid
		cs.grid.Set(c, TokenEmpty)
	}
	cs.emit(CellsCleared{Step: step, Coords: coords, Types: types})
	return counts
}

// score applies the counts to the tracker and reports whether the goal is met.
func (cs *Cascade) score(counts map[TokenType]int) bool {
	delta := cs.tracker.ApplyClear(counts)
	if delta.Advance > 0 {
		cs.emit(ProgressChanged{Progress: delta.Progress, Goal: cs.tracker.Goal(), Percent: cs.tracker.Percent()})
	}
	if delta.CurrencyGained > 0 {
		cs.emit(CurrencyChanged{Value: delta.Currency, Gained: delta.CurrencyGained})
	}
	if delta.GoalReached {
		cs.emit(GoalReached{Currency: delta.Currency})
	}
	return delta.GoalReached
}

// applyGravity compacts each column downward, keeping the relative order of
// surviving tokens, and leaves the vacated top cells empty.
func (cs *Cascade) applyGravity() {
	for c := 0; c < cs.grid.Cols(); c++ {
		for _, mv := range compactColumn(cs.grid, c) {
			cs.emit(mv)
		}
	}
}

// compactColumn drops the tokens of one column to the bottom.
func compactColumn(g *Grid, col int) []CellsMoved {
	var moves []CellsMoved
	write := g.Rows() - 1
	for r := g.Rows() - 1; r >= 0; r-- {
		from := C(r, col)
		t := g.At(from)
		if t == TokenEmpty {
			continue
		}
		if r != write {
			to := C(write, col)
			//nolint:errcheck // Both cells are inside the column
			g.Set(to, t)
			//nolint:errcheck
			g.Set(from, TokenEmpty)
			moves = append(moves, CellsMoved{From: from, To: to, Type: t})
		}
		write--
	}
	return moves
}
