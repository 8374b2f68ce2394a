package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// BoardConfig merges settings, a campaign level and the difficulty into an
// engine configuration. lvl is nil for endless boards; board is the 0-based
// endless board number and grows the goal.
// s must already have the preset applied (see config.ApplyMatch3Preset).
func BoardConfig(s config.Match3Config, p config.DifficultyPreset, lvl *levels.Level, board int) (core.Config, error) {
	cfg, err := s.EngineConfig()
	if err != nil {
		return core.Config{}, err
	}

	if lvl != nil {
		cfg = lvl.Apply(cfg)
		if lvl.Goal > 0 && p != config.DifficultyFixed {
			cfg.Goal = lvl.ScaledGoal(config.GoalScaleForPreset(p))
		}
		if lvl.Layout != nil {
			cfg.Rows, cfg.Cols = lvl.Layout.Rows(), lvl.Layout.Cols()
		}
	} else {
		cfg.Goal += int(float64(cfg.Goal) * endlessGoalGrowth * float64(board))
	}
	return cfg, cfg.Validate()
}

// NewEngine deals a board for the given level (nil for endless).
// Levels with a layout start from it; runs already on the layout are
// resolved and their events drained.
func NewEngine(s config.Match3Config, p config.DifficultyPreset, lvl *levels.Level, board int, rng core.Rand) (*core.Engine, error) {
	cfg, err := BoardConfig(s, p, lvl, board)
	if err != nil {
		return nil, err
	}

	var e *core.Engine
	if lvl != nil && lvl.Layout != nil {
		e, err = core.NewWithGrid(cfg, lvl.Layout, rng)
	} else {
		e, err = core.New(cfg, rng)
	}
	if err != nil {
		return nil, err
	}

	e.DrainEvents()
	return e, nil
}

// Settings returns the configuration and difficulty new games start with.
func Settings() (config.Match3Config, config.DifficultyPreset) {
	return settings, preset
}
