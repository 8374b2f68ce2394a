package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent sessions",
	Long: `Display the top 10 high scores and the most recent sessions for a mode.
The game is match3 (campaign, the default) or match3_endless.

Examples:
  match3 scores
  match3 scores match3_endless --recent 20
  match3 scores match3_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent sessions to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and session of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (want match3 or match3_endless)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'match3 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		printStats(stats)
	}

	recent, err := store.RecentSessions(gameID, flagRecent)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}
	if len(recent) > 0 {
		fmt.Println()
		fmt.Println("Recent sessions:")
		fmt.Printf("  %-16s  %-5s  %-9s  %-5s  %-5s  %s\n", "Date", "Level", "Progress", "Moves", "Chain", "Result")
		for _, s := range recent {
			result := "-"
			if s.Won {
				result = "won"
			}
			fmt.Printf("  %-16s  %-5d  %-9s  %-5d  %-5d  %s\n",
				s.CreatedAt.Format("2006-01-02 15:04"), s.Level,
				fmt.Sprintf("%d/%d", s.Progress, s.Goal), s.Moves, s.BestChain, result)
		}
	}
	return nil
}

func printStats(stats *storage.GameStats) {
	fmt.Printf("Best: %d  Avg: %.1f  Games: %d  Won: %d  Flowers: %d  Best chain: %d\n",
		stats.HighScore, stats.AvgScore, stats.GamesCount, stats.Wins, stats.TotalCurrency, stats.BestChain)
}
