package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"

	// Register the game modes
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a board",
	Long: `Start playing. The campaign is the default mode.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select a token, then a neighbour to swap
  H            - Show a hint
  P            - Pause
  Esc/B        - Deselect, or back while paused or after game over
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Smaller goals, flowers pay double
  normal - Goals as configured
  hard   - Bigger goals, no fuel bonus
  fixed  - Use the loaded config and level goals as-is

Examples:
  match3 play
  match3 play campaign --level 4
  match3 play endless --seed 42
  match3 play --difficulty easy --config ./my-match3.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - the game still works
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newGame creates the game for a mode and points it at a start level.
func newGame(gameID string, level int) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if level > 0 {
		if sel, ok := game.(registry.LevelSelector); ok {
			sel.StartAt(level)
		}
	}
	return game, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) == 1 {
		switch args[0] {
		case "campaign":
		case "endless":
			gameID = "match3_endless"
		default:
			return fmt.Errorf("unknown mode %q (want campaign or endless)", args[0])
		}
	}

	if n := len(levels.Campaign()); flagLevel < 0 || flagLevel > n {
		return fmt.Errorf("level must be between 1 and %d", n)
	}

	game, err := newGame(gameID, flagLevel)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
