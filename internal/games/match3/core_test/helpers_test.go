package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// scriptedRand replays a fixed sequence of draws, wrapping around at the end.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func mustGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.GridFromRows(rows...)
	require.NoError(t, err)
	return g
}

// Token palette indices as drawn by the spawn policy from core.AllTokens().
const (
	idxCar    = 0
	idxFuel   = 1
	idxFlower = 2
	idxBlock  = 3
)
