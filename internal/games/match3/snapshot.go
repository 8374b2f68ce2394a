package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	Level     int    // 1-indexed campaign level, 0 for endless
	Board     string // Engine board in token characters, empty between boards
	Progress  int
	Goal      int
	Score     int
	Currency  int
	Moves     int
	BestChain int
	Cursor    core.Coord
	Selected  *core.Coord
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.anim.Busy():
		state = StateAnimating
	}

	snap := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.score(),
		Currency:  g.totalCurrency(),
		Moves:     g.moves,
		BestChain: g.bestChain,
		Cursor:    g.cursor,
		State:     state,
	}
	if g.mode == ModeCampaign {
		snap.Level = g.levelIndex + 1
	}
	if g.engine != nil {
		snap.Board = g.engine.Grid().String()
		p := g.engine.Progress()
		snap.Progress, snap.Goal = p.Progress, p.Goal
	}
	if g.selecting {
		sel := g.selected
		snap.Selected = &sel
	}
	return snap
}
