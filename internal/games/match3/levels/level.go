// Package levels provides the campaign levels for the match-3 game.
// Levels are YAML files; the built-in set is embedded in the binary.
package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Level is one campaign stage. Zero fields inherit from the base engine config.
type Level struct {
	ID          string
	Name        string
	Description string
	Goal        int
	Rows        int
	Cols        int
	Tokens      []core.TokenType
	BonusFactor float64
	Layout      *core.Grid // Fixed starting board, nil for a random deal
	FilePath    string
}

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Goal        int      `yaml:"goal"`
	Size        yamlSize `yaml:"size,omitempty"`
	Tokens      []string `yaml:"tokens,omitempty"`
	BonusFactor float64  `yaml:"bonus_factor,omitempty"`
	Layout      []string `yaml:"layout,omitempty"`
}

type yamlSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Parse parses a YAML level file.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	if yl.Goal < 0 {
		return Level{}, fmt.Errorf("level %s: negative goal %d", yl.ID, yl.Goal)
	}

	lvl := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Goal:        yl.Goal,
		Rows:        yl.Size.Rows,
		Cols:        yl.Size.Cols,
		BonusFactor: yl.BonusFactor,
	}
	if lvl.Name == "" {
		lvl.Name = "Level " + lvl.ID
	}

	for _, name := range yl.Tokens {
		t, ok := core.ParseToken(name)
		if !ok || !t.Valid() {
			return Level{}, fmt.Errorf("level %s: unknown token %q", yl.ID, name)
		}
		lvl.Tokens = append(lvl.Tokens, t)
	}

	if len(yl.Layout) > 0 {
		g, err := core.GridFromRows(yl.Layout...)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: layout: %w", yl.ID, err)
		}
		if at, ok := g.FirstEmpty(); ok {
			return Level{}, fmt.Errorf("level %s: layout has an empty cell at %s", yl.ID, at)
		}
		lvl.Layout = g
		lvl.Rows, lvl.Cols = g.Rows(), g.Cols()
	}

	return lvl, nil
}

// Apply returns base with the level's overrides.
func (l Level) Apply(base core.Config) core.Config {
	cfg := base
	if l.Goal > 0 {
		cfg.Goal = l.Goal
	}
	if l.Rows > 0 {
		cfg.Rows = l.Rows
	}
	if l.Cols > 0 {
		cfg.Cols = l.Cols
	}
	if len(l.Tokens) > 0 {
		cfg.Tokens = append([]core.TokenType(nil), l.Tokens...)
	}
	if l.BonusFactor > 0 {
		cfg.BonusFactor = l.BonusFactor
	}
	return cfg
}

// ScaledGoal returns the goal after a difficulty multiplier, never below 1.
func (l Level) ScaledGoal(scale float64) int {
	return max(1, int(float64(l.Goal)*scale+0.5))
}
