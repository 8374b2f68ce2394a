package match3

import (
	"math/rand"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	_ registry.Game          = (*Game)(nil)
	_ registry.StatsReporter = (*Game)(nil)
	_ registry.Controller    = (*Game)(nil)
	_ registry.Resizer       = (*Game)(nil)
	_ registry.LevelSelector = (*Game)(nil)
	_ registry.ErrorReporter = (*Game)(nil)
)

func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	if g.err != nil {
		t.Fatalf("Reset failed: %v", g.err)
	}
	return g
}

func withSettings(t *testing.T, s config.Match3Config, p config.DifficultyPreset) {
	t.Helper()
	Configure(s, p)
	t.Cleanup(func() {
		Configure(config.DefaultMatch3Config(), config.DifficultyNormal)
	})
}

func step(g *Game, actions ...platformcore.Action) {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	g.Step(in)
}

// drain steps the game until the animation queue is empty.
func drain(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.anim.Busy(); i++ {
		if i > 10000 {
			t.Fatal("animation never finished")
		}
		step(g)
	}
}

// playHint performs the engine's suggested move through the selection input.
func playHint(t *testing.T, g *Game) core.Move {
	t.Helper()
	mv, ok := g.engine.Hint()
	if !ok {
		t.Fatal("board has no legal move")
	}
	g.selectCell(mv.A)
	g.selectCell(mv.B)
	return mv
}

func TestDeterministicReset(t *testing.T) {
	g1 := newTestGame(t, NewEndless(), 42)
	g2 := newTestGame(t, NewEndless(), 42)

	if g1.Snapshot().Board != g2.Snapshot().Board {
		t.Error("same seed should deal the same board")
	}

	playHint(t, g1)
	playHint(t, g2)
	drain(t, g1)
	drain(t, g2)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	s1.Tick, s2.Tick = 0, 0
	if s1.Board != s2.Board || s1.Progress != s2.Progress || s1.Currency != s2.Currency {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestCursorWraps(t *testing.T) {
	g := newTestGame(t, NewEndless(), 1)
	cfg := g.engine.Config()

	step(g, platformcore.ActionLeft)
	if g.cursor != core.C(0, cfg.Cols-1) {
		t.Errorf("cursor after Left = %v, want (0,%d)", g.cursor, cfg.Cols-1)
	}

	step(g, platformcore.ActionUp)
	if g.cursor != core.C(cfg.Rows-1, cfg.Cols-1) {
		t.Errorf("cursor after Up = %v, want (%d,%d)", g.cursor, cfg.Rows-1, cfg.Cols-1)
	}

	step(g, platformcore.ActionDown)
	step(g, platformcore.ActionRight)
	if g.cursor != core.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}
}

func TestSelectionToggle(t *testing.T) {
	g := newTestGame(t, NewEndless(), 1)

	step(g, platformcore.ActionSelect)
	if !g.selecting || g.selected != core.C(0, 0) {
		t.Fatalf("first select should mark (0,0), got selecting=%v at %v", g.selecting, g.selected)
	}

	step(g, platformcore.ActionSelect)
	if g.selecting {
		t.Error("selecting the marked cell again should clear the mark")
	}

	step(g, platformcore.ActionSelect)
	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionSelect)
	if !g.selecting || g.selected != core.C(0, 2) {
		t.Errorf("non-adjacent select should move the mark to (0,2), got %v", g.selected)
	}

	step(g, platformcore.ActionBack)
	if g.selecting {
		t.Error("Back should clear the mark")
	}
}

func TestAcceptedSwapAnimates(t *testing.T) {
	g := newTestGame(t, NewEndless(), 7)

	playHint(t, g)
	if !g.anim.Busy() {
		t.Fatal("accepted swap should queue an animation")
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}

	// Input is ignored while frames play.
	cursor := g.cursor
	step(g, platformcore.ActionDown)
	if g.cursor != cursor {
		t.Error("cursor moved during animation")
	}
	if g.Snapshot().State != StateAnimating {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StateAnimating)
	}

	drain(t, g)

	if !g.view.grid.Equal(g.engine.Grid()) {
		t.Errorf("view out of sync after animation:\n%s\nengine:\n%s", g.view.grid, g.engine.Grid())
	}
	if g.view.progress != g.engine.Progress().Progress {
		t.Errorf("view progress = %d, engine = %d", g.view.progress, g.engine.Progress().Progress)
	}
	if g.State().Score == 0 {
		t.Error("accepted swap should score")
	}
}

func TestRejectedSwapRestoresView(t *testing.T) {
	g := newTestGame(t, NewEndless(), 3)
	before := g.engine.Grid()

	legal := make(map[[2]core.Coord]bool)
	for _, mv := range core.FindMoves(before, g.engine.Config().MinRun) {
		legal[[2]core.Coord{mv.A, mv.B}] = true
	}

	var a, b core.Coord
	found := false
	for c := 0; c+1 < before.Cols() && !found; c++ {
		a, b = core.C(0, c), core.C(0, c+1)
		found = !legal[[2]core.Coord{a, b}]
	}
	if !found {
		t.Skip("every swap on the first row is legal")
	}

	g.selectCell(a)
	g.selectCell(b)
	if !g.anim.Busy() {
		t.Fatal("rejected swap should still animate")
	}
	drain(t, g)

	if !g.view.grid.Equal(before) {
		t.Errorf("rejected swap changed the board:\n%s\nwant:\n%s", g.view.grid, before)
	}
	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
}

func TestEndlessBoardAdvances(t *testing.T) {
	s := config.DefaultMatch3Config()
	s.Scoring.Goal = 1
	withSettings(t, s, config.DifficultyFixed)

	g := newTestGame(t, NewEndless(), 11)
	playHint(t, g)
	drain(t, g)

	step(g)
	if !g.levelCleared {
		t.Fatal("goal of 1 should clear the board on the first match")
	}
	if !g.State().Paused {
		t.Error("level-cleared pause should report Paused")
	}
	score := g.State().Score

	for range levelClearDuration {
		step(g)
	}

	if g.levelCleared {
		t.Fatal("board should advance after the clear pause")
	}
	if g.board != 1 {
		t.Errorf("board = %d, want 1", g.board)
	}
	if g.State().Score != score {
		t.Errorf("score should carry over: got %d, want %d", g.State().Score, score)
	}
	if g.State().GameOver {
		t.Error("endless mode should not end on a cleared board")
	}
}

func TestCampaignStartLevel(t *testing.T) {
	g := New()
	g.StartAt(4)
	newTestGame(t, g, 1)

	snap := g.Snapshot()
	if snap.Level != 4 {
		t.Fatalf("level = %d, want 4", snap.Level)
	}
	if snap.Goal != 150 {
		t.Errorf("goal = %d, want 150", snap.Goal)
	}

	want := strings.Join([]string{"CFWBCF", "WCBFWB", "CFWBCF", "WBCFWB", "FCBWFC", "BWFCBW"}, "\n")
	if snap.Board != want {
		t.Errorf("board =\n%s\nwant layout\n%s", snap.Board, want)
	}
}

func TestStartAtIsPerGame(t *testing.T) {
	g := New()
	g.StartAt(2)
	newTestGame(t, g, 1)
	if got := g.Snapshot().Level; got != 2 {
		t.Fatalf("level = %d, want 2", got)
	}

	// A restart keeps the chosen level; other games are unaffected.
	newTestGame(t, g, 2)
	if got := g.Snapshot().Level; got != 2 {
		t.Errorf("level after restart = %d, want 2", got)
	}
	if got := newTestGame(t, New(), 1).Snapshot().Level; got != 1 {
		t.Errorf("fresh game level = %d, want 1", got)
	}
}

func TestNewEngineMatchesGameBoard(t *testing.T) {
	s, p := Settings()
	lvl := levels.Campaign()[3]
	e, err := NewEngine(s, p, &lvl, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if !e.Grid().Equal(lvl.Layout) {
		t.Errorf("layout level should start from its layout:\n%s", e.Grid())
	}
	if len(e.DrainEvents()) != 0 {
		t.Error("NewEngine should leave no pending events")
	}

	cfg, err := BoardConfig(s, p, nil, 2)
	if err != nil {
		t.Fatalf("BoardConfig: %v", err)
	}
	if want := s.Scoring.Goal + int(float64(s.Scoring.Goal)*endlessGoalGrowth*2); cfg.Goal != want {
		t.Errorf("endless board 2 goal = %d, want %d", cfg.Goal, want)
	}
}

func TestDifficultyScalesLevelGoal(t *testing.T) {
	withSettings(t, config.DefaultMatch3Config(), config.DifficultyHard)

	g := newTestGame(t, New(), 1)
	if got := g.Snapshot().Goal; got != 90 {
		t.Errorf("hard level 1 goal = %d, want 90", got)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, NewEndless(), 1)

	step(g, platformcore.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	step(g, platformcore.ActionRight)
	if g.cursor != core.C(0, 0) {
		t.Error("cursor moved while paused")
	}

	step(g, platformcore.ActionPause)
	if g.State().Paused {
		t.Error("game should resume")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := NewEndless()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 10, ScreenH: 5, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	screen := platformcore.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, NewEndless(), 2)
	board := g.Snapshot().Board

	g.Resize(10, 5)
	if g.Snapshot().State != StatePausedSmall {
		t.Fatal("shrinking below the minimum should pause")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePlaying)
	}
	if g.Snapshot().Board != board {
		t.Error("resize should not deal a new board")
	}
}

func TestHint(t *testing.T) {
	g := newTestGame(t, NewEndless(), 5)

	step(g, platformcore.ActionHint)
	if g.hintTicks == 0 {
		t.Fatal("hint should be shown")
	}
	if !g.hint.A.Adjacent(g.hint.B) {
		t.Errorf("hint %v-%v is not adjacent", g.hint.A, g.hint.B)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 1)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Level 1/") {
		t.Errorf("HUD missing level line:\n%s", out)
	}
	if !strings.Contains(out, "Moves 0") {
		t.Errorf("HUD missing moves:\n%s", out)
	}
	if !strings.ContainsAny(out, "CF✿■") {
		t.Errorf("board has no tokens:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	g := newTestGame(t, New(), 9)
	playHint(t, g)
	drain(t, g)

	stats := g.Stats()
	if stats.Level != 1 {
		t.Errorf("level = %d, want 1", stats.Level)
	}
	if stats.Moves != 1 {
		t.Errorf("moves = %d, want 1", stats.Moves)
	}
	if stats.BestChain < 1 {
		t.Errorf("best chain = %d, want >= 1", stats.BestChain)
	}
	if stats.Progress != g.State().Score {
		t.Errorf("progress = %d, score = %d", stats.Progress, g.State().Score)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"match3", "match3_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID = %q, want %q", g.ID(), id)
		}
	}
}
