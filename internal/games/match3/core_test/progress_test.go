package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestWeightedAdvance(t *testing.T) {
	tests := []struct {
		name   string
		counts map[core.TokenType]int
		want   int
	}{
		{"three cars", map[core.TokenType]int{core.TokenCar: 3}, 6},
		{"three fuel with bonus", map[core.TokenType]int{core.TokenFuel: 3}, 6},
		{"three flowers", map[core.TokenType]int{core.TokenFlower: 3}, 3},
		{"three blocks", map[core.TokenType]int{core.TokenBlock: 3}, 2},
		{"four blocks rounds up", map[core.TokenType]int{core.TokenBlock: 4}, 3},
		{"mixed set rounds once", map[core.TokenType]int{core.TokenFuel: 1, core.TokenBlock: 1}, 3},
		{"nothing", map[core.TokenType]int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := core.NewProgressTracker(core.DefaultConfig())
			assert.Equal(t, tt.want, p.WeightedAdvance(tt.counts))
		})
	}
}

func TestCurrencyPerTriple(t *testing.T) {
	tests := []struct {
		flowers int
		gained  int
	}{
		{2, 0},
		{3, 1},
		{5, 1},
		{6, 2},
		{9, 3},
	}

	for _, tt := range tests {
		p := core.NewProgressTracker(core.DefaultConfig())
		d := p.ApplyClear(map[core.TokenType]int{core.TokenFlower: tt.flowers})
		assert.Equal(t, tt.gained, d.CurrencyGained, "flowers=%d", tt.flowers)
		assert.Equal(t, tt.gained, p.Currency(), "flowers=%d", tt.flowers)
	}
}

func TestProgressClampsAtGoal(t *testing.T) {
	p := core.NewProgressTracker(core.DefaultConfig())

	p.ApplyClear(map[core.TokenType]int{core.TokenCar: 45})  // 90
	p.ApplyClear(map[core.TokenType]int{core.TokenBlock: 7}) // 95
	assert.Equal(t, 95, p.Progress())
	assert.Equal(t, 95, p.Percent())
	assert.False(t, p.Done())

	d := p.ApplyClear(map[core.TokenType]int{core.TokenCar: 20}) // +40
	assert.Equal(t, 100, d.Progress)
	assert.Equal(t, 5, d.Advance)
	assert.True(t, d.GoalReached)
	assert.Equal(t, 100, p.Percent())
	assert.True(t, p.Done())
}

func TestProgressIsMonotonic(t *testing.T) {
	p := core.NewProgressTracker(core.DefaultConfig())
	last := 0
	for i := 0; i < 40; i++ {
		d := p.ApplyClear(map[core.TokenType]int{core.TokenBlock: 3, core.TokenFlower: 3})
		assert.GreaterOrEqual(t, d.Progress, last)
		assert.LessOrEqual(t, d.Progress, p.Goal())
		last = d.Progress
	}
	assert.Equal(t, 100, last)
	assert.Equal(t, 40, p.Currency())
}
