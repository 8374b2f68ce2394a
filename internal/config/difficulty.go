package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Use the loaded values as-is
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// GoalScaleForPreset returns the multiplier applied to the goal.
func GoalScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Hard also drops the bonus multiplier so fuel pays like any other token.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		return
	}
	cfg.Scoring.Goal = max(1, int(math.Round(float64(cfg.Scoring.Goal)*GoalScaleForPreset(preset))))

	switch preset {
	case DifficultyEasy:
		cfg.Scoring.CurrencyPerTriple = max(cfg.Scoring.CurrencyPerTriple, 1) * 2
	case DifficultyHard:
		cfg.Scoring.BonusFactor = 1.0
	}
}
