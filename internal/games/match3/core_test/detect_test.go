package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		cleared []core.Coord
		runs    int
	}{
		{
			name:    "no runs",
			rows:    []string{"CFWB", "WBCF"},
			cleared: nil,
		},
		{
			name:    "horizontal triple",
			rows:    []string{"CCCF", "FWBW"},
			cleared: []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)},
			runs:    1,
		},
		{
			name:    "vertical triple",
			rows:    []string{"FC", "WC", "BC", "CF"},
			cleared: []core.Coord{core.C(0, 1), core.C(1, 1), core.C(2, 1)},
			runs:    1,
		},
		{
			name: "run of five",
			rows: []string{"WWWWWF"},
			cleared: []core.Coord{
				core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(0, 3), core.C(0, 4),
			},
			runs: 1,
		},
		{
			name: "L shape shares the corner",
			rows: []string{"CCCB", "CFWF", "CBFW"},
			cleared: []core.Coord{
				core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(1, 0), core.C(2, 0),
			},
			runs: 2,
		},
		{
			name: "T shape",
			rows: []string{"CCC", "FCW", "WCB"},
			cleared: []core.Coord{
				core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(1, 1), core.C(2, 1),
			},
			runs: 2,
		},
		{
			name:    "empty cells never match",
			rows:    []string{"...", "..."},
			cleared: nil,
		},
		{
			name:    "pair is not a run",
			rows:    []string{"CCFF"},
			cleared: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.rows...)
			det := core.Detect(g, 3)

			assert.Len(t, det.Runs, tt.runs)
			if tt.cleared == nil {
				assert.True(t, det.Empty())
				return
			}
			assert.Equal(t, tt.cleared, det.Cleared.Coords())
		})
	}
}

func TestDetectIsIdempotent(t *testing.T) {
	g := mustGrid(t, "CCCB", "CFWF", "CBFW")
	before := g.Hash()

	first := core.Detect(g, 3)
	second := core.Detect(g, 3)

	assert.True(t, first.Cleared.Equal(second.Cleared))
	assert.Equal(t, first.Runs, second.Runs)
	assert.Equal(t, before, g.Hash(), "detection must not modify the grid")
}

func TestDetectRunDetails(t *testing.T) {
	g := mustGrid(t, "FBBBB", "WCFWC")
	det := core.Detect(g, 3)

	require.Len(t, det.Runs, 1)
	run := det.Runs[0]
	assert.Equal(t, core.TokenBlock, run.Token)
	assert.Equal(t, core.AxisRow, run.Axis)
	assert.Equal(t, core.C(0, 1), run.Start)
	assert.Equal(t, 4, run.Length)
	assert.Equal(t, []core.Coord{core.C(0, 1), core.C(0, 2), core.C(0, 3), core.C(0, 4)}, run.Cells())
}

func TestDetectHonoursMinRun(t *testing.T) {
	g := mustGrid(t, "CCFWWW")

	assert.Equal(t, 5, core.Detect(g, 2).Cleared.Len())
	assert.Equal(t, 3, core.Detect(g, 3).Cleared.Len())
	assert.True(t, core.Detect(g, 4).Empty())
}

func TestTallyClearedCountsOverlapOnce(t *testing.T) {
	g := mustGrid(t, "CCCB", "CFWF", "CBFW")
	det := core.Detect(g, 3)

	counts := core.TallyCleared(g, det.Cleared)
	assert.Equal(t, map[core.TokenType]int{core.TokenCar: 5}, counts)
}
