package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/core"
)

// DefaultHoldTimeout is how long the jump key counts as held after the last
// key event. Terminals report key repeats, never releases, so a release is
// inferred once repeats stop arriving.
const DefaultHoldTimeout = 400 * time.Millisecond

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Jump    key.Binding
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
	Shot    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Confirm, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Up, k.Down},
		{k.Confirm, k.Back, k.Quit, k.Shot},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "jump / hold to fly"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/k", "menu up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/j", "menu down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "p"),
			key.WithHelp("esc/p", "pause / back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Input collects key events between ticks and turns them into input frames.
// Every jump key event is a jump edge. The key also counts as held until no
// event has arrived for the hold timeout, which then produces a release edge.
type Input struct {
	keys    KeyMap
	timeout time.Duration

	pending  core.InputFrame
	held     bool
	lastJump time.Time
}

// NewInput creates an input collector. A non-positive timeout uses
// DefaultHoldTimeout.
func NewInput(keys KeyMap, timeout time.Duration) *Input {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &Input{
		keys:    keys,
		timeout: timeout,
		pending: core.NewInputFrame(),
	}
}

// Key records a key event received at now. Returns the action it mapped to,
// ActionNone for unbound keys.
func (in *Input) Key(msg tea.KeyMsg, now time.Time) core.Action {
	switch {
	case key.Matches(msg, in.keys.Quit):
		in.pending.Set(core.ActionQuit)
		return core.ActionQuit
	case key.Matches(msg, in.keys.Jump):
		// Every event is an edge; tap modes ignore presses they cannot act on
		in.pending.Set(core.ActionJump)
		in.held = true
		in.lastJump = now
		return core.ActionJump
	case key.Matches(msg, in.keys.Up):
		in.pending.Set(core.ActionUp)
		return core.ActionUp
	case key.Matches(msg, in.keys.Down):
		in.pending.Set(core.ActionDown)
		return core.ActionDown
	case key.Matches(msg, in.keys.Confirm):
		in.pending.Set(core.ActionConfirm)
		return core.ActionConfirm
	case key.Matches(msg, in.keys.Back):
		in.pending.Set(core.ActionBack)
		return core.ActionBack
	}
	return core.ActionNone
}

// Held reports whether the jump key currently counts as held.
func (in *Input) Held() bool {
	return in.held
}

// Frame returns the input for the tick at now and starts collecting the next.
func (in *Input) Frame(now time.Time, elapsed time.Duration) core.InputFrame {
	if in.held && now.Sub(in.lastJump) > in.timeout {
		in.held = false
		in.pending.Set(core.ActionRelease)
	}
	if in.held {
		in.pending.Set(core.ActionHold)
	}

	frame := in.pending.Clone()
	frame.Elapsed = elapsed
	in.pending.Clear()
	return frame
}
