package core

import (
	"errors"
	"fmt"
)

// Config holds the constants an engine is built with.
// Values are fixed for the lifetime of the engine.
type Config struct {
	Rows   int
	Cols   int
	MinRun int // Minimum run length that clears (3)

	Tokens  []TokenType       // Palette the spawn policy draws from
	Weights map[TokenType]int // Advance weight per token type

	BonusToken    TokenType // Token whose weighted contribution is multiplied
	BonusFactor   float64   // Multiplier for BonusToken (> 1)
	Normalization int       // Weighted sum is divided by this before rounding
	Goal          int       // Progress ceiling; reaching it wins

	CurrencyToken     TokenType // Token that pays currency
	CurrencyPerTriple int       // Currency units per three cleared CurrencyToken cells

	MaxSpawnAttempts int // Resample cap for the spawn policy
}

// DefaultConfig returns the reference tuning: an 8-row by 6-column board,
// four token types and a goal of 100.
func DefaultConfig() Config {
	return Config{
		Rows:   8,
		Cols:   6,
		MinRun: 3,
		Tokens: AllTokens(),
		Weights: map[TokenType]int{
			TokenCar:    6,
			TokenFuel:   4,
			TokenFlower: 3,
			TokenBlock:  2,
		},
		BonusToken:        TokenFuel,
		BonusFactor:       1.5,
		Normalization:     3,
		Goal:              100,
		CurrencyToken:     TokenFlower,
		CurrencyPerTriple: 1,
		MaxSpawnAttempts:  64,
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Rows < 1 || c.Cols < 1 {
		errs = append(errs, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Rows, c.Cols))
	}
	if c.MinRun < 2 {
		errs = append(errs, fmt.Errorf("min run must be >= 2, got %d", c.MinRun))
	}
	if len(c.Tokens) == 0 {
		errs = append(errs, errors.New("token palette is empty"))
	}
	seen := make(map[TokenType]bool)
	for _, t := range c.Tokens {
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("token %d is not placeable", t))
		}
		if seen[t] {
			errs = append(errs, fmt.Errorf("token %s listed twice", t))
		}
		seen[t] = true
	}
	if c.BonusFactor < 1 {
		errs = append(errs, fmt.Errorf("bonus factor must be >= 1, got %v", c.BonusFactor))
	}
	if c.Normalization < 1 {
		errs = append(errs, fmt.Errorf("normalization must be >= 1, got %d", c.Normalization))
	}
	if c.Goal < 1 {
		errs = append(errs, fmt.Errorf("goal must be >= 1, got %d", c.Goal))
	}
	if c.CurrencyPerTriple < 0 {
		errs = append(errs, fmt.Errorf("currency per triple must be >= 0, got %d", c.CurrencyPerTriple))
	}
	if c.MaxSpawnAttempts < 1 {
		errs = append(errs, fmt.Errorf("max spawn attempts must be >= 1, got %d", c.MaxSpawnAttempts))
	}
	for t, w := range c.Weights {
		if w < 0 {
			errs = append(errs, fmt.Errorf("weight for %s must be >= 0, got %d", t, w))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("match3: invalid config: %w", errors.Join(errs...))
	}
	return nil
}
