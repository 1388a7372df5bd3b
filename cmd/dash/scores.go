package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var flagClearRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show run history for a level",
	Long: `Display the top 10 runs and overall stats for a level. The level is
either its number as listed by 'dash levels' or its name.

Examples:
  dash scores 1
  dash scores "Back On Track"
  dash scores 2 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearRuns, "clear", false, "Delete the recorded runs of the level")
}

func runScores(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	level, err := resolveLevel(cfg.Levels, args[0])
	if err != nil {
		return err
	}
	name := cfg.Levels[level].Name

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagClearRuns {
		if err := store.ClearRuns(level); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Printf("Cleared run history for %s.\n", name)
		return nil
	}

	runs, err := store.TopRuns(level, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Top Runs - %s\n", name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dash play' to set the first score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Jumps", "Modes", "End", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "-----", "---", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-6d  %-6d  %-6d  %-8s  %s\n",
			i+1, r.Player, r.Score, r.Jumps, r.ModesUsed, r.Reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.LevelStats(level)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Avg: %.1f  Deaths: %d  Jumps: %d\n",
		stats.Runs, stats.BestScore, stats.AvgScore, stats.Deaths, stats.TotalJumps)
	return nil
}

// resolveLevel accepts a 1-based level number or a case-insensitive name.
func resolveLevel(levels []config.Level, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(levels) {
			return 0, fmt.Errorf("level %d out of range (1-%d)", n, len(levels))
		}
		return n - 1, nil
	}
	for i, lvl := range levels {
		if strings.EqualFold(lvl.Name, arg) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q; run 'dash levels' to list them", arg)
}
