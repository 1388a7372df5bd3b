package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/progress"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels, unlock state and best scores",
	Long: `Shows every level in the catalog with its modes, base speed, whether it
is unlocked in the progress file and the best score reached so far.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	lockedStyle = cellStyle.Foreground(lipgloss.Color("241"))
)

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadProgress(cfg)
	if err != nil {
		return err
	}

	locked := make(map[int]bool)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("#", "Level", "Modes", "Speed", "Best", "Status")

	for i, lvl := range cfg.Levels {
		status := "open"
		if !dash.LevelUnlocked(p, cfg.Rules.UnlockScore, i) {
			status = fmt.Sprintf("needs %d on %s", cfg.Rules.UnlockScore, cfg.Levels[i-1].Name)
			locked[i] = true
		}
		t.Row(
			strconv.Itoa(i+1),
			lvl.Name,
			strings.Join(levelModes(lvl), " "),
			fmt.Sprintf("%.1f", lvl.ScrollSpeed),
			strconv.Itoa(p.HighScores[i]),
			status,
		)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle.Padding(0, 1)
		case locked[row]:
			return lockedStyle
		default:
			return cellStyle
		}
	})

	fmt.Println(t.String())
	fmt.Println()
	fmt.Println("Run 'dash play' and pick a level from the menu.")
	return nil
}

// levelModes lists the movement modes a level can switch into.
func levelModes(lvl config.Level) []string {
	var modes []string
	for _, m := range []string{config.ModeCube, config.ModeShip, config.ModeBall, config.ModeUFO, config.ModeWave} {
		if lvl.Allows(m) {
			modes = append(modes, m)
		}
	}
	return modes
}

// loadProgress reads the progress file sized to the loaded catalogs. An
// unreadable file counts as no progress, the same as in the game.
func loadProgress(cfg config.DashConfig) (progress.Progress, error) {
	f, err := progress.NewFile(flagSavePath)
	if err != nil {
		return progress.Progress{}, err
	}
	p, err := f.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		p = progress.Progress{}
	}
	return p.Normalize(len(cfg.Levels), len(cfg.Challenges)), nil
}
