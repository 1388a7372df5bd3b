package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/registry"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

// Options configures a game Model.
type Options struct {
	// Store records finished runs. Nil disables run history.
	Store *storage.Store

	// Player names the history rows. Defaults to storage.LocalPlayer.
	Player string

	// HoldTimeout is the jump key release inference window.
	HoldTimeout time.Duration

	// Renderer styles the output. Nil uses the default renderer.
	Renderer *lipgloss.Renderer

	Logger *log.Logger
}

// Model is the Bubble Tea model running one game instance.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	painter *Painter
	store   *storage.Store
	player  string
	log     *log.Logger
	config  core.RuntimeConfig
	keys    KeyMap
	input   *Input

	lastTick  time.Time
	runsSaved int
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}
	if opts.Logger == nil {
		opts.Logger = registry.Env{}.WithDefaults().Logger
	}

	keys := DefaultKeyMap()
	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter: NewPainter(opts.Renderer),
		store:   opts.Store,
		player:  opts.Player,
		log:     opts.Logger,
		config:  cfg,
		keys:    keys,
		input:   NewInput(keys, opts.HoldTimeout),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game scales its field to the screen, so a resize keeps the run
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "err", err)
		} else {
			m.log.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.input.Key(msg, time.Now()) == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := m.input.Frame(now, elapsedSince(m.lastTick, now))
	m.lastTick = now

	result := m.game.Step(frame)
	if result.Finished != nil {
		m.recordRun(*result.Finished)
	}
	if result.State.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a finished run. Failures are logged, never shown.
func (m *Model) recordRun(s core.RunSummary) {
	m.runsSaved++
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(storage.NewRunEntry(m.player, s)); err != nil {
		m.log.Warn("run history save failed", "err", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".dash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// RunsRecorded returns how many finished runs the model has seen.
func (m Model) RunsRecorded() int {
	return m.runsSaved
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.painter.Paint(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
