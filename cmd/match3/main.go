// match3 is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	match3 play [campaign|endless]  - Play a board
//	match3 menu                     - Start menu to pick a mode or level
//	match3 levels                   - List the campaign levels
//	match3 scores [game]            - Show high scores and recent sessions
//	match3 serve                    - Serve the game over SSH and HTTP
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/match3.db)
//	--config <path>       - Custom match3.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//
// Settings can also come from the environment or a ./.env file
// (MATCH3_DB, MATCH3_CONFIG, MATCH3_DIFFICULTY, MATCH3_LOG_LEVEL, ...).
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string

	env    config.Env
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap tokens, clear runs, fill the tank",
	Long: `Match-3 is a terminal puzzle game. Swap two neighbouring tokens to
line up three or more of a kind; cleared tokens fall, new ones drop in and
chains keep going until the board settles or the goal is reached.

Available commands:
  play     - Play a campaign level or an endless run
  menu     - Interactive mode and level picker
  levels   - Show the campaign levels
  scores   - View high scores and recent sessions
  serve    - Serve the game over SSH and a JSON API

Examples:
  match3 play
  match3 play --level 3
  match3 play endless --difficulty hard
  match3 menu
  match3 serve --ssh :2222 --http :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default ~/.match3/match3.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup reads the environment, loads the game settings and applies the
// difficulty before any game is created. Flags win over the environment.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		return err
	}

	if lvl, err := log.ParseLevel(env.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", env.LogLevel)
	}

	if flagDBPath == "" {
		flagDBPath = env.DBPath
	}
	if flagConfig == "" {
		flagConfig = env.ConfigPath
	}
	if !cmd.Flag("difficulty").Changed {
		flagDifficulty = env.Difficulty
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	settings, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	match3.Configure(settings, preset)

	logger.Debug("configured", "difficulty", preset, "config", flagConfig, "db", flagDBPath)
	return nil
}
