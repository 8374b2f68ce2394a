package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long:  `Shows the campaign levels with their goal and board size at the chosen difficulty.`,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	settings, preset := match3.Settings()
	campaign := levels.Campaign()

	fmt.Printf("Campaign levels (%s):\n", preset)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range campaign {
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-6s  %-5s  %s\n", "#", maxNameLen, "Name", "Goal", "Size", "Start")
	fmt.Printf("  %-3s  %-*s  %-6s  %-5s  %s\n", "-", maxNameLen, "----", "----", "----", "-----")

	for i, lvl := range campaign {
		cfg, err := match3.BoardConfig(settings, preset, &lvl, 0)
		if err != nil {
			return fmt.Errorf("level %s: %w", lvl.ID, err)
		}
		start := "random"
		if lvl.Layout != nil {
			start = "layout"
		}
		fmt.Printf("  %-3d  %-*s  %-6d  %-5s  %s\n", i+1, maxNameLen, lvl.Name, cfg.Goal,
			fmt.Sprintf("%dx%d", cfg.Rows, cfg.Cols), start)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play --level <n>' to start from a level.")
	return nil
}
