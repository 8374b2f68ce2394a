// Package config provides YAML-based configuration loading, difficulty
// presets and environment overrides for the match-3 game.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board     BoardConfig     `yaml:"board"`
	Tokens    []TokenConfig   `yaml:"tokens"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Animation AnimationConfig `yaml:"animation"`
	Victory   VictoryConfig   `yaml:"victory"`
}

// BoardConfig defines the board dimensions and run length.
type BoardConfig struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	MinRun int `yaml:"min_run"`
}

// TokenConfig defines one token type of the palette.
type TokenConfig struct {
	Name   string `yaml:"name"`   // car, fuel, flower, block
	Weight int    `yaml:"weight"` // Advance weight per cleared cell
}

// ScoringConfig defines how cleared cells turn into progress and currency.
type ScoringConfig struct {
	Goal              int     `yaml:"goal"`
	Normalization     int     `yaml:"normalization"`
	BonusToken        string  `yaml:"bonus_token"`
	BonusFactor       float64 `yaml:"bonus_factor"`
	CurrencyToken     string  `yaml:"currency_token"`
	CurrencyPerTriple int     `yaml:"currency_per_triple"`
}

// SpawnConfig defines the spawn policy limits.
type SpawnConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// AnimationConfig defines how many ticks each replayed event takes.
type AnimationConfig struct {
	SwapTicks   int `yaml:"swap_ticks"`
	ClearTicks  int `yaml:"clear_ticks"`
	FallTicks   int `yaml:"fall_ticks"`
	SpawnTicks  int `yaml:"spawn_ticks"`
	RejectTicks int `yaml:"reject_ticks"`
}

// VictoryConfig defines the goal-reached scene.
type VictoryConfig struct {
	Title    string   `yaml:"title"`
	Messages []string `yaml:"messages"` // One is picked at random
}

// EngineConfig converts the YAML view into an engine configuration.
func (c Match3Config) EngineConfig() (core.Config, error) {
	cfg := core.Config{
		Rows:              c.Board.Rows,
		Cols:              c.Board.Cols,
		MinRun:            c.Board.MinRun,
		Weights:           make(map[core.TokenType]int, len(c.Tokens)),
		BonusFactor:       c.Scoring.BonusFactor,
		Normalization:     c.Scoring.Normalization,
		Goal:              c.Scoring.Goal,
		CurrencyPerTriple: c.Scoring.CurrencyPerTriple,
		MaxSpawnAttempts:  c.Spawn.MaxAttempts,
	}

	for _, tc := range c.Tokens {
		t, err := parsePlaceable(tc.Name)
		if err != nil {
			return core.Config{}, err
		}
		cfg.Tokens = append(cfg.Tokens, t)
		cfg.Weights[t] = tc.Weight
	}

	var err error
	if cfg.BonusToken, err = parsePlaceable(c.Scoring.BonusToken); err != nil {
		return core.Config{}, fmt.Errorf("bonus_token: %w", err)
	}
	if cfg.CurrencyToken, err = parsePlaceable(c.Scoring.CurrencyToken); err != nil {
		return core.Config{}, fmt.Errorf("currency_token: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}

func parsePlaceable(name string) (core.TokenType, error) {
	t, ok := core.ParseToken(name)
	if !ok || !t.Valid() {
		return core.TokenEmpty, fmt.Errorf("config: unknown token %q", name)
	}
	return t, nil
}
