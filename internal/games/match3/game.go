// Package match3 implements the match-3 game on top of the board engine:
// cursor and selection input, campaign levels, animated cascades and the
// HUD. The engine in match3/core owns every board mutation.
package match3

import (
	"errors"
	"math/rand"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	levelClearDuration = 120 // 2 seconds at 60fps
	hintDuration       = 90
	messageDuration    = 90
	endlessGoalGrowth  = 0.1 // Goal increase per cleared endless board
)

// Package-level variables for config
var (
	settings = config.DefaultMatch3Config()
	preset   = config.DifficultyNormal
)

// Configure sets the settings and difficulty used by games created afterwards.
// The preset is applied to a copy of s.
func Configure(s config.Match3Config, p config.DifficultyPreset) {
	config.ApplyMatch3Preset(&s, p)
	settings = s
	preset = p
}

// Game implements the match-3 game.
type Game struct {
	mode     Mode
	rng      *rand.Rand
	tick     uint64
	settings config.Match3Config
	preset   config.DifficultyPreset

	levels     []levels.Level
	levelIndex int
	startLevel int // 1-based, set by StartAt; 0 is the first level
	board      int // Boards cleared in endless mode
	engine     *core.Engine
	view       boardView
	anim       animator

	cursor    core.Coord
	selected  core.Coord
	selecting bool
	hint      core.Move
	hintTicks int

	// Totals carried across boards
	banked    int
	currency  int
	moves     int
	bestChain int
	lastChain int

	screenW int
	screenH int

	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
	victoryMsg      string
	message         string
	messageTicks    int
	err             error
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}

// StartAt sets the 1-based campaign level the next Reset starts from.
// It has no effect in endless mode.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.settings = settings
	g.preset = preset
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.board = 0
	g.banked = 0
	g.currency = 0
	g.moves = 0
	g.bestChain = 0
	g.lastChain = 0
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.victoryMsg = ""
	g.message = ""
	g.messageTicks = 0
	g.err = nil

	g.levels = nil
	g.levelIndex = 0
	if g.mode == ModeCampaign {
		g.levels = levels.Campaign()
		if g.startLevel > 0 && g.startLevel <= len(g.levels) {
			g.levelIndex = g.startLevel - 1
		}
	}

	g.startBoard()
	g.checkScreenSize()
}

// startBoard builds an engine for the current level or endless board.
func (g *Game) startBoard() {
	g.anim = animator{}
	g.cursor = core.C(0, 0)
	g.selecting = false
	g.hintTicks = 0

	rng := rand.New(rand.NewSource(g.rng.Int63()))
	e, err := NewEngine(g.settings, g.preset, g.currentLevel(), g.board, rng)
	if err != nil {
		g.fail(err)
		return
	}

	// Runs settled on a prepared board are not replayed.
	g.engine = e
	g.view = newBoardView(e)
}

// currentLevel returns the campaign level being played, or nil in endless mode.
func (g *Game) currentLevel() *levels.Level {
	if g.mode != ModeCampaign || g.levelIndex >= len(g.levels) {
		return nil
	}
	return &g.levels[g.levelIndex]
}

// fail ends the run on an engine error.
func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	rows, cols := 8, 6
	if g.engine != nil {
		rows, cols = g.engine.Config().Rows, g.engine.Config().Cols
	}
	minW := max(cols*cellWidth+2, hudMinWidth)
	minH := rows + hudHeight + 3
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize adapts to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) && g.gameOver {
		// Will be reset by platform
		return platformcore.StepResult{State: g.State()}
	}

	if g.messageTicks > 0 {
		g.messageTicks--
	}
	if g.hintTicks > 0 {
		g.hintTicks--
	}

	if g.anim.Busy() {
		g.anim.Step(&g.view)
		return platformcore.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDuration {
			g.advanceLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	if g.gameOver {
		return platformcore.StepResult{State: g.State()}
	}

	if g.engine.Finished() {
		g.finishBoard()
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return platformcore.StepResult{State: g.State()}
}

// handleInput moves the cursor and turns selections into swap requests.
func (g *Game) handleInput(in platformcore.InputFrame) {
	cfg := g.engine.Config()

	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row = platformcore.Wrap(g.cursor.Row-1, cfg.Rows)
	case in.Has(platformcore.ActionDown):
		g.cursor.Row = platformcore.Wrap(g.cursor.Row+1, cfg.Rows)
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col = platformcore.Wrap(g.cursor.Col-1, cfg.Cols)
	case in.Has(platformcore.ActionRight):
		g.cursor.Col = platformcore.Wrap(g.cursor.Col+1, cfg.Cols)
	}

	switch {
	case in.Has(platformcore.ActionSelect), in.Has(platformcore.ActionConfirm):
		g.selectCell(g.cursor)
	case in.Has(platformcore.ActionBack):
		g.selecting = false
	case in.Has(platformcore.ActionHint):
		g.showHint()
	}
}

// selectCell implements click-click swapping: the first pick marks a cell,
// picking it again clears the mark, an adjacent pick swaps and any other
// pick moves the mark.
func (g *Game) selectCell(at core.Coord) {
	switch {
	case !g.selecting:
		g.selected = at
		g.selecting = true
	case g.selected == at:
		g.selecting = false
	case g.selected.Adjacent(at):
		g.selecting = false
		g.swap(g.selected, at)
	default:
		g.selected = at
	}
}

// swap asks the engine to swap a and b and queues the resulting animation.
func (g *Game) swap(a, b core.Coord) {
	g.hintTicks = 0
	outcome, err := g.engine.RequestSwap(a, b)
	events := g.engine.DrainEvents()

	switch {
	case errors.Is(err, core.ErrBusy), errors.Is(err, core.ErrFinished):
		return
	case err != nil:
		var inv *core.InvariantViolation
		if errors.As(err, &inv) {
			g.fail(err)
			return
		}
		g.flash(err.Error())
		return
	}

	g.anim.Queue(g.settings.Animation, a, b, events, g.engine.Grid())

	if outcome == core.SwapAccepted {
		g.moves++
		if chain := g.engine.BestChain(); chain > g.bestChain {
			g.bestChain = chain
		}
		for _, ev := range events {
			if settled, ok := ev.(core.CascadeSettled); ok {
				g.lastChain = settled.Steps
			}
		}
	}
}

// showHint highlights the best available move for a while.
func (g *Game) showHint() {
	if mv, ok := g.engine.Hint(); ok {
		g.hint = mv
		g.hintTicks = hintDuration
		return
	}
	g.flash("No moves")
}

// flash shows a short message under the board.
func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageDuration
}

// finishBoard banks the finished board and starts the level-clear pause.
func (g *Game) finishBoard() {
	p := g.engine.Progress()
	g.banked += p.Progress
	g.currency += p.Currency
	g.levelCleared = true
	g.levelClearTicks = 0
	g.engine = nil

	if msgs := g.settings.Victory.Messages; len(msgs) > 0 {
		g.victoryMsg = msgs[g.rng.Intn(len(msgs))]
	}
}

// advanceLevel moves to the next level or ends the campaign.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.mode == ModeEndless {
		g.board++
		g.startBoard()
		g.checkScreenSize()
		return
	}

	if g.levelIndex >= len(g.levels)-1 {
		g.won = true
		g.gameOver = true
		return
	}

	g.levelIndex++
	g.startBoard()
	g.checkScreenSize()
}

// score is banked progress plus progress on the current board.
func (g *Game) score() int {
	if g.engine == nil {
		return g.banked
	}
	return g.banked + g.engine.Progress().Progress
}

// totalCurrency is banked currency plus currency on the current board.
func (g *Game) totalCurrency() int {
	if g.engine == nil {
		return g.currency
	}
	return g.currency + g.engine.Progress().Currency
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Stats summarizes the run for persistence.
func (g *Game) Stats() platformcore.SessionStats {
	stats := platformcore.SessionStats{
		Currency:  g.totalCurrency(),
		Moves:     g.moves,
		BestChain: g.bestChain,
		Won:       g.won,
	}
	if g.mode == ModeCampaign {
		stats.Level = g.levelIndex + 1
	}
	if g.engine != nil {
		p := g.engine.Progress()
		stats.Progress, stats.Goal = p.Progress, p.Goal
	} else {
		stats.Progress, stats.Goal = g.view.progress, g.view.goal
	}
	return stats
}

// Err returns the engine error that ended the run, if any.
func (g *Game) Err() error {
	return g.err
}
