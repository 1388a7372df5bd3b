package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/progress"
	"github.com/vovakirdan/tui-dash/internal/registry"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal.

Controls:
  Space      - Jump (cube, ball, UFO) / hold to fly (ship, wave)
  Up/Down    - Move menu cursor
  Enter      - Select
  Esc/P      - Pause / back
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Terminals report key repeats but not releases. A held jump counts as
released once no repeat arrives for --hold-ms milliseconds.

Difficulty options:
  easy   - Slower spawns, gentle ramp
  normal - Level defaults
  hard   - Faster spawns, steep ramp
  fixed  - Spawn interval never shrinks

Examples:
  dash play
  dash play --difficulty hard
  dash play --config ./my-levels.yaml --log-file dash.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	saveFile, err := progress.NewFile(flagSavePath)
	if err != nil {
		return err
	}

	game, err := registry.Create(dash.ID, registry.Env{
		Logger:   logger,
		Progress: saveFile,
	})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Run history is optional
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "err", err)
		store = nil
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	runErr := tui.Run(game, cfg, tui.Options{
		Store:       store,
		Player:      storage.LocalPlayer,
		HoldTimeout: time.Duration(flagHoldMS) * time.Millisecond,
		Logger:      logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// newLogger returns a logger writing to path, or discarding when path is
// empty. The alternate screen owns stdout while playing.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dash",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
