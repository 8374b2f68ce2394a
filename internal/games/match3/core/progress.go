package core

import "math"

// ProgressDelta describes the effect of one cleared set.
type ProgressDelta struct {
	Advance        int  // Points added after clamping
	Progress       int  // Progress after the clear
	CurrencyGained int  // Currency added by this clear
	Currency       int  // Currency after the clear
	GoalReached    bool // Progress is at the goal
}

// ProgressTracker turns cleared-cell counts into progress and currency.
// Both values only ever increase; progress never exceeds the goal.
type ProgressTracker struct {
	weights       map[TokenType]int
	bonusToken    TokenType
	bonusFactor   float64
	normalization int
	goal          int

	currencyToken     TokenType
	currencyPerTriple int

	progress int
	currency int
}

// NewProgressTracker creates a tracker from the engine configuration.
func NewProgressTracker(cfg Config) *ProgressTracker {
	weights := make(map[TokenType]int, len(cfg.Weights))
	for t, w := range cfg.Weights {
		weights[t] = w
	}
	return &ProgressTracker{
		weights:           weights,
		bonusToken:        cfg.BonusToken,
		bonusFactor:       cfg.BonusFactor,
		normalization:     cfg.Normalization,
		goal:              cfg.Goal,
		currencyToken:     cfg.CurrencyToken,
		currencyPerTriple: cfg.CurrencyPerTriple,
	}
}

// Progress returns current progress (0..Goal).
func (p *ProgressTracker) Progress() int {
	return p.progress
}

// Currency returns accumulated currency.
func (p *ProgressTracker) Currency() int {
	return p.currency
}

// Goal returns the progress ceiling.
func (p *ProgressTracker) Goal() int {
	return p.goal
}

// Percent returns progress as a whole percentage of the goal.
func (p *ProgressTracker) Percent() int {
	if p.goal <= 0 {
		return 0
	}
	return int(math.Round(float64(p.progress) * 100 / float64(p.goal)))
}

// Done reports whether the goal has been reached.
func (p *ProgressTracker) Done() bool {
	return p.progress >= p.goal
}

// WeightedAdvance computes the raw advance for a set of counts: the weighted
// sum across types (bonus type multiplied), divided by the normalization and
// rounded once at the end.
func (p *ProgressTracker) WeightedAdvance(counts map[TokenType]int) int {
	var sum float64
	for t, n := range counts {
		contrib := float64(n * p.weights[t])
		if t == p.bonusToken {
			contrib *= p.bonusFactor
		}
		sum += contrib
	}
	return int(math.Round(sum / float64(p.normalization)))
}

// ApplyClear folds one cleared set into the tracker.
func (p *ProgressTracker) ApplyClear(counts map[TokenType]int) ProgressDelta {
	before := p.progress
	p.progress = min(p.goal, p.progress+p.WeightedAdvance(counts))

	gained := 0
	if n := counts[p.currencyToken]; n >= 3 {
		gained = (n / 3) * p.currencyPerTriple
		p.currency += gained
	}

	return ProgressDelta{
		Advance:        p.progress - before,
		Progress:       p.progress,
		CurrencyGained: gained,
		Currency:       p.currency,
		GoalReached:    p.Done(),
	}
}
