package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFillHasNoImmediateMatches(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := core.NewGrid(8, 6)
		p := core.NewSpawnPolicy(core.AllTokens(), rand.New(rand.NewSource(seed)), 3, 64)

		require.NoError(t, p.Fill(g), "seed %d", seed)
		assert.True(t, g.IsDense(), "seed %d", seed)
		assert.True(t, core.Detect(g, 3).Empty(), "seed %d produced runs:\n%s", seed, g)
	}
}

func TestFillIsDeterministic(t *testing.T) {
	a := core.NewGrid(8, 6)
	b := core.NewGrid(8, 6)

	require.NoError(t, core.NewSpawnPolicy(core.AllTokens(), rand.New(rand.NewSource(7)), 3, 64).Fill(a))
	require.NoError(t, core.NewSpawnPolicy(core.AllTokens(), rand.New(rand.NewSource(7)), 3, 64).Fill(b))

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestFillResamples(t *testing.T) {
	// Every draw is Car until the resample kicks in on the third cell.
	rng := &scriptedRand{vals: []int{idxCar, idxCar, idxCar, idxFuel}}
	g := core.NewGrid(1, 3)
	p := core.NewSpawnPolicy(core.AllTokens(), rng, 3, 8)

	require.NoError(t, p.Fill(g))
	assert.Equal(t, "CCF", g.String())
}

func TestFillSinglePaletteViolatesInvariant(t *testing.T) {
	g := core.NewGrid(1, 3)
	p := core.NewSpawnPolicy([]core.TokenType{core.TokenCar}, rand.New(rand.NewSource(1)), 3, 16)

	err := p.Fill(g)
	var iv *core.InvariantViolation
	require.True(t, errors.As(err, &iv))
	assert.Equal(t, "spawn", iv.Op)
	assert.Equal(t, core.C(0, 2), iv.At)
}

func TestRefillFillsEmptiesBottomUp(t *testing.T) {
	g := mustGrid(t,
		"..W",
		".FB",
		"CWF",
	)
	rng := &scriptedRand{vals: []int{idxBlock}}
	p := core.NewSpawnPolicy(core.AllTokens(), rng, 3, 8)

	spawned, err := p.Refill(g)
	require.NoError(t, err)
	assert.True(t, g.IsDense())

	want := []core.Coord{core.C(1, 0), core.C(0, 0), core.C(0, 1)}
	require.Len(t, spawned, len(want))
	for i, ev := range spawned {
		assert.Equal(t, want[i], ev.At)
		assert.Equal(t, g.At(ev.At), ev.Type)
	}
}

func TestRefillAvoidsRunWithCellsBelow(t *testing.T) {
	g := mustGrid(t,
		".",
		"B",
		"B",
	)
	rng := &scriptedRand{vals: []int{idxBlock, idxBlock, idxFlower}}
	p := core.NewSpawnPolicy(core.AllTokens(), rng, 3, 8)

	spawned, err := p.Refill(g)
	require.NoError(t, err)
	require.Len(t, spawned, 1)
	assert.Equal(t, core.TokenFlower, spawned[0].Type)
}
