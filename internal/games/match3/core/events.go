package core

// Event is a state transition the presentation layer can observe.
// Events are queued in order and handed to a single consumer via Engine.DrainEvents.
type Event interface {
	engineEvent()
}

// SwapReverted is emitted after a swap that formed no run was reverted.
type SwapReverted struct {
	A, B Coord
}

func (SwapReverted) engineEvent() {}

// CellsCleared is emitted once per cascade step with every cleared cell.
// Types[i] is the token that occupied Coords[i].
type CellsCleared struct {
	Step   int
	Coords []Coord
	Types  []TokenType
}

func (CellsCleared) engineEvent() {}

// CellsMoved is emitted for every token that falls during gravity.
type CellsMoved struct {
	From, To Coord
	Type     TokenType
}

func (CellsMoved) engineEvent() {}

// CellsSpawned is emitted for every token placed by a refill.
type CellsSpawned struct {
	At   Coord
	Type TokenType
}

func (CellsSpawned) engineEvent() {}

// ProgressChanged is emitted when progress advances.
type ProgressChanged struct {
	Progress int
	Goal     int
	Percent  int
}

func (ProgressChanged) engineEvent() {}

// CurrencyChanged is emitted when currency increases.
type CurrencyChanged struct {
	Value  int
	Gained int
}

func (CurrencyChanged) engineEvent() {}

// GoalReached is emitted once, when progress hits the goal.
type GoalReached struct {
	Currency int
}

func (GoalReached) engineEvent() {}

// CascadeSettled is the terminal signal for an accepted swap.
// The presentation may send new swaps only after receiving it.
type CascadeSettled struct {
	Outcome Outcome
	Steps   int
}

func (CascadeSettled) engineEvent() {}

// BoardShuffled is emitted when a stable board had no legal move left and
// was refilled from scratch.
type BoardShuffled struct{}

func (BoardShuffled) engineEvent() {}
