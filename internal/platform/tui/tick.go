// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and run history.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxElapsed caps the wall time fed into one tick after a stall.
const maxElapsed = 250 * time.Millisecond

// elapsedSince returns the time between two ticks, zero for the first one.
func elapsedSince(last, now time.Time) time.Duration {
	if last.IsZero() || now.Before(last) {
		return 0
	}
	return min(now.Sub(last), maxElapsed)
}
