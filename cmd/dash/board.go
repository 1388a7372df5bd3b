package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse run history interactively",
	Long: `Open a scrollable run history table. Tab and Shift+Tab switch levels,
Esc or q closes it.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	names := make([]string, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		names[i] = lvl.Name
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(store, names, width, height)
}
