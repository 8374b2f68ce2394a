package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestGridFromRows(t *testing.T) {
	g := mustGrid(t,
		"CFWB",
		"B.WC",
	)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, core.TokenCar, g.At(core.C(0, 0)))
	assert.Equal(t, core.TokenFlower, g.At(core.C(0, 2)))
	assert.Equal(t, core.TokenEmpty, g.At(core.C(1, 1)))
	assert.Equal(t, "CFWB\nB.WC", g.String())

	at, ok := g.FirstEmpty()
	require.True(t, ok)
	assert.Equal(t, core.C(1, 1), at)
	assert.False(t, g.IsDense())
}

func TestGridFromRowsRejectsBadInput(t *testing.T) {
	_, err := core.GridFromRows("CFW", "CF")
	assert.Error(t, err)

	_, err = core.GridFromRows("CXW")
	assert.Error(t, err)
}

func TestGridOutOfBounds(t *testing.T) {
	g := core.NewGrid(3, 3)

	testCases := []core.Coord{
		core.C(-1, 0),
		core.C(0, -1),
		core.C(3, 0),
		core.C(0, 3),
	}

	for _, c := range testCases {
		_, err := g.Get(c)
		var be *core.BoundsError
		require.True(t, errors.As(err, &be), "Get(%v)", c)
		assert.Equal(t, c, be.At)

		assert.Error(t, g.Set(c, core.TokenCar))
		assert.Error(t, g.Swap(core.C(0, 0), c))
		assert.Equal(t, core.TokenEmpty, g.At(c))
	}
}

func TestGridSwapAndClone(t *testing.T) {
	g := mustGrid(t, "CF", "WB")
	clone := g.Clone()

	require.NoError(t, g.Swap(core.C(0, 0), core.C(1, 1)))
	assert.Equal(t, "BF\nWC", g.String())
	assert.Equal(t, "CF\nWB", clone.String(), "clone must not share cells")
	assert.False(t, g.Equal(clone))
	assert.NotEqual(t, g.Hash(), clone.Hash())

	require.NoError(t, g.Swap(core.C(0, 0), core.C(1, 1)))
	assert.True(t, g.Equal(clone))
	assert.Equal(t, g.Hash(), clone.Hash())
}

func TestGridCountByType(t *testing.T) {
	g := mustGrid(t, "CCF", "W.C")
	counts := g.CountByType()

	assert.Equal(t, 3, counts[core.TokenCar])
	assert.Equal(t, 1, counts[core.TokenFuel])
	assert.Equal(t, 1, counts[core.TokenFlower])
	assert.Zero(t, counts[core.TokenEmpty])
}

func TestCoordAdjacent(t *testing.T) {
	a := core.C(2, 2)

	assert.True(t, a.Adjacent(core.C(1, 2)))
	assert.True(t, a.Adjacent(core.C(2, 3)))
	assert.False(t, a.Adjacent(a))
	assert.False(t, a.Adjacent(core.C(3, 3)))
	assert.False(t, a.Adjacent(core.C(2, 4)))
	assert.Equal(t, core.C(1, 2), a.Step(core.DirUp))
	assert.Equal(t, core.C(3, 2), a.Step(core.DirDown))
}

func TestCoordSet(t *testing.T) {
	var empty core.CoordSet
	assert.True(t, empty.Empty())

	s := empty.With(core.C(1, 0), core.C(0, 2)).With(core.C(1, 0))
	assert.True(t, empty.Empty(), "With must not modify the receiver")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []core.Coord{core.C(0, 2), core.C(1, 0)}, s.Coords())

	u := s.Union(core.NewCoordSet(core.C(0, 2), core.C(5, 5)))
	assert.Equal(t, 3, u.Len())
	assert.Equal(t, 2, s.Len(), "union must not modify the receiver")
}

func TestCoordSetCopiesAreIndependent(t *testing.T) {
	a := core.NewCoordSet(core.C(0, 0))
	b := a
	b = b.With(core.C(1, 1))

	assert.Equal(t, 1, a.Len())
	assert.False(t, a.Contains(core.C(1, 1)))
	assert.Equal(t, 2, b.Len())

	c := b.Clone()
	assert.True(t, c.Equal(b))
	c = c.With(core.C(2, 2))
	assert.False(t, c.Equal(b))
	assert.Equal(t, 2, b.Len())
}

func TestParseToken(t *testing.T) {
	for _, tok := range core.AllTokens() {
		got, ok := core.ParseToken(tok.String())
		require.True(t, ok)
		assert.Equal(t, tok, got)

		got, ok = core.ParseToken(string(tok.Char()))
		require.True(t, ok)
		assert.Equal(t, tok, got)
	}

	_, ok := core.ParseToken("truck")
	assert.False(t, ok)
}
