package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
// It matches defaults/match3.yaml and is used if the embedded file cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Rows:   8,
			Cols:   6,
			MinRun: 3,
		},
		Tokens: []TokenConfig{
			{Name: "car", Weight: 6},
			{Name: "fuel", Weight: 4},
			{Name: "flower", Weight: 3},
			{Name: "block", Weight: 2},
		},
		Scoring: ScoringConfig{
			Goal:              100,
			Normalization:     3,
			BonusToken:        "fuel",
			BonusFactor:       1.5,
			CurrencyToken:     "flower",
			CurrencyPerTriple: 1,
		},
		Spawn: SpawnConfig{
			MaxAttempts: 64,
		},
		Animation: AnimationConfig{
			SwapTicks:   6,
			ClearTicks:  10,
			FallTicks:   6,
			SpawnTicks:  6,
			RejectTicks: 12,
		},
		Victory: VictoryConfig{
			Title: "Goal reached!",
			Messages: []string{
				"Another full tank, another road trip.",
			},
		},
	}
}
