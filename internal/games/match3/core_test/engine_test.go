package core_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// swapForms has exactly one interesting move: (0,2) <-> (1,2) lines up three cars.
var swapForms = []string{
	"CCFWBC",
	"FWCBFW",
	"WBFCWB",
}

func newEngine(t *testing.T, cfg core.Config, rows []string, seed int64) *core.Engine {
	t.Helper()
	e, err := core.NewWithGrid(cfg, mustGrid(t, rows...), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return e
}

func TestNewDealsPlayableBoard(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		e, err := core.New(core.DefaultConfig(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		g := e.Grid()
		assert.Equal(t, 8, g.Rows())
		assert.Equal(t, 6, g.Cols())
		assert.True(t, g.IsDense())
		assert.True(t, core.Detect(g, 3).Empty())
		assert.NotEmpty(t, core.FindMoves(g, 3))
		assert.Equal(t, core.PhaseIdle, e.Phase())
		assert.Empty(t, e.DrainEvents())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Goal = 0
	cfg.Tokens = nil

	_, err := core.New(cfg, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goal")
	assert.Contains(t, err.Error(), "palette")
}

func TestNewWithTinyPaletteFails(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 3
	cfg.Tokens = []core.TokenType{core.TokenCar}

	_, err := core.New(cfg, rand.New(rand.NewSource(1)))
	var iv *core.InvariantViolation
	assert.True(t, errors.As(err, &iv))
}

func TestInitialize(t *testing.T) {
	g, err := core.Initialize(8, 6, core.AllTokens(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.True(t, g.IsDense())
	assert.True(t, core.Detect(g, 3).Empty())
}

func TestSwapRejectedRestoresGrid(t *testing.T) {
	e := newEngine(t, core.DefaultConfig(), []string{
		"CCFWBC",
		"FWBCFW",
		"WBCFWB",
	}, 1)
	before := e.Grid()

	outcome, err := e.RequestSwap(core.C(0, 2), core.C(0, 3))
	require.NoError(t, err)
	assert.Equal(t, core.SwapRejected, outcome)
	assert.True(t, before.Equal(e.Grid()), "grid must be identical after a rejected swap")
	assert.Equal(t, core.PhaseIdle, e.Phase())
	assert.Zero(t, e.Moves())
	assert.Equal(t, []core.Event{core.SwapReverted{A: core.C(0, 2), B: core.C(0, 3)}}, e.DrainEvents())
}

func TestSwapInvalid(t *testing.T) {
	tests := []struct {
		name   string
		a, b   core.Coord
		reason string
	}{
		{"out of bounds", core.C(0, 5), core.C(0, 6), "out of bounds"},
		{"negative", core.C(-1, 0), core.C(0, 0), "out of bounds"},
		{"same cell", core.C(1, 1), core.C(1, 1), "same cell"},
		{"diagonal", core.C(0, 0), core.C(1, 1), "cells not adjacent"},
		{"too far", core.C(0, 0), core.C(0, 2), "cells not adjacent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, core.DefaultConfig(), swapForms, 1)
			before := e.Grid()

			outcome, err := e.RequestSwap(tt.a, tt.b)
			assert.Equal(t, core.SwapInvalid, outcome)

			var ise *core.InvalidSwapError
			require.True(t, errors.As(err, &ise))
			assert.Equal(t, tt.reason, ise.Reason)
			assert.True(t, before.Equal(e.Grid()))
			assert.Empty(t, e.DrainEvents())
			assert.Equal(t, core.PhaseIdle, e.Phase())
		})
	}
}

func TestSwapAccepted(t *testing.T) {
	e := newEngine(t, core.DefaultConfig(), swapForms, 5)

	outcome, err := e.RequestSwap(core.C(0, 2), core.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, core.SwapAccepted, outcome)
	assert.Equal(t, 1, e.Moves())
	assert.GreaterOrEqual(t, e.BestChain(), 1)

	events := e.DrainEvents()
	require.NotEmpty(t, events)

	first, ok := events[0].(core.CellsCleared)
	require.True(t, ok, "first event is %T", events[0])
	assert.Equal(t, 1, first.Step)
	assert.Equal(t, []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)}, first.Coords)
	assert.Equal(t, []core.TokenType{core.TokenCar, core.TokenCar, core.TokenCar}, first.Types)

	pc, ok := events[1].(core.ProgressChanged)
	require.True(t, ok, "second event is %T", events[1])
	assert.Equal(t, 6, pc.Progress)
	assert.Equal(t, 6, pc.Percent)

	settled, ok := events[len(events)-1].(core.CascadeSettled)
	require.True(t, ok, "last event is %T", events[len(events)-1])
	assert.Equal(t, core.OutcomeStable, settled.Outcome)

	var spawned int
	for _, ev := range events {
		if _, ok := ev.(core.CellsSpawned); ok {
			spawned++
		}
	}
	assert.GreaterOrEqual(t, spawned, 3)

	g := e.Grid()
	assert.True(t, g.IsDense())
	assert.True(t, core.Detect(g, 3).Empty())
	assert.Equal(t, core.PhaseIdle, e.Phase())
	assert.GreaterOrEqual(t, e.Progress().Progress, 6)
}

func TestGoalReachedFinishesSession(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Goal = 5
	e := newEngine(t, cfg, swapForms, 1)

	outcome, err := e.RequestSwap(core.C(0, 2), core.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, core.SwapAccepted, outcome)
	assert.True(t, e.Finished())

	events := e.DrainEvents()
	require.Len(t, events, 4)
	assert.IsType(t, core.CellsCleared{}, events[0])
	assert.Equal(t, core.ProgressChanged{Progress: 5, Goal: 5, Percent: 100}, events[1])
	assert.Equal(t, core.GoalReached{Currency: 0}, events[2])
	assert.Equal(t, core.CascadeSettled{Outcome: core.OutcomeGoalReached, Steps: 1}, events[3])

	// Cleared cells stay empty: no refill after the goal.
	assert.Equal(t, []core.TokenType{core.TokenEmpty, core.TokenEmpty, core.TokenEmpty}, e.Grid().Row(0)[:3])

	outcome, err = e.RequestSwap(core.C(2, 0), core.C(2, 1))
	assert.Equal(t, core.SwapInvalid, outcome)
	assert.ErrorIs(t, err, core.ErrFinished)

	_, err = e.Settle()
	assert.ErrorIs(t, err, core.ErrFinished)
}

func TestDeadBoardIsShuffled(t *testing.T) {
	// Clearing the top row and refilling it with car, fuel, flower leaves
	// "CFW" over "CFF": no swap can line up three.
	rng := &scriptedRand{vals: []int{idxCar, idxFuel, idxFlower}}
	e, err := core.NewWithGrid(core.DefaultConfig(), mustGrid(t, "BBF", "CFB"), rng)
	require.NoError(t, err)

	outcome, err := e.RequestSwap(core.C(0, 2), core.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, core.SwapAccepted, outcome)

	events := e.DrainEvents()
	require.GreaterOrEqual(t, len(events), 2)

	var spawned []core.TokenType
	for _, ev := range events {
		if sp, ok := ev.(core.CellsSpawned); ok {
			spawned = append(spawned, sp.Type)
		}
	}
	assert.Equal(t, []core.TokenType{core.TokenCar, core.TokenFuel, core.TokenFlower}, spawned)

	assert.Equal(t, core.BoardShuffled{}, events[len(events)-2])
	assert.Equal(t, core.CascadeSettled{Outcome: core.OutcomeStable, Steps: 1}, events[len(events)-1])
	assert.Equal(t, core.PhaseIdle, e.Phase())

	g := e.Grid()
	assert.True(t, g.IsDense())
	assert.True(t, core.Detect(g, 3).Empty())
}

func TestNewWithGridSettlesExistingRuns(t *testing.T) {
	e := newEngine(t, core.DefaultConfig(), []string{
		"CFW",
		"BBB",
		"CWF",
		"FCB",
	}, 9)

	assert.GreaterOrEqual(t, e.Progress().Progress, 2)
	assert.True(t, core.Detect(e.Grid(), 3).Empty())
	assert.Zero(t, e.Moves(), "settling a prepared board is not a move")

	events := e.DrainEvents()
	require.NotEmpty(t, events)
	assert.IsType(t, core.CascadeSettled{}, events[len(events)-1])
}

func TestNewWithGridRejectsSparseBoard(t *testing.T) {
	_, err := core.NewWithGrid(core.DefaultConfig(), mustGrid(t, "CF.", "WBC"), rand.New(rand.NewSource(1)))
	var iv *core.InvariantViolation
	require.True(t, errors.As(err, &iv))
	assert.Equal(t, "new", iv.Op)
}

func TestConcurrentSwapsAreSerialized(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Goal = 1 << 20
	e := newEngine(t, cfg, swapForms, 11)

	var wg sync.WaitGroup
	results := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := core.C(0, 2), core.C(1, 2)
			if i%2 == 1 {
				a, b = core.C(1, 0), core.C(1, 1)
			}
			_, results[i] = e.RequestSwap(a, b)
		}(i)
	}
	wg.Wait()

	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, core.ErrBusy)
		}
	}
	g := e.Grid()
	assert.True(t, g.IsDense())
	assert.True(t, core.Detect(g, 3).Empty())
	assert.Equal(t, core.PhaseIdle, e.Phase())
}

func TestFindMoves(t *testing.T) {
	g := mustGrid(t, swapForms...)
	moves := core.FindMoves(g, 3)

	assert.Contains(t, moves, core.Move{A: core.C(0, 2), B: core.C(1, 2), Cleared: 3})
	best, ok := core.BestMove(g, 3)
	require.True(t, ok)
	assert.GreaterOrEqual(t, best.Cleared, 3)
	assert.Equal(t, mustGrid(t, swapForms...).Hash(), g.Hash(), "search must not modify the grid")
}

func TestFindMovesNone(t *testing.T) {
	g := mustGrid(t, "CFWB", "WBCF")

	assert.Empty(t, core.FindMoves(g, 3))
	_, ok := core.BestMove(g, 3)
	assert.False(t, ok)
}
