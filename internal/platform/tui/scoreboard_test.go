package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/storage"
)

var levelNames = []string{"Stereo Madness", "Back On Track", "Polargeist"}

func TestScoreboardSwitchesLevels(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.RunEntry{
		{Player: "ann", Level: 0, LevelName: levelNames[0], Score: 4, Reason: "died"},
		{Player: "bo", Level: 0, LevelName: levelNames[0], Score: 12, Reason: "died"},
		{Player: "cy", Level: 2, LevelName: levelNames[2], Score: 7, Reason: "forfeit"},
	} {
		if _, err := store.SaveRun(e); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, levelNames, 100, 30)
	if len(m.Runs()) != 2 || m.Runs()[0].Player != "bo" {
		t.Fatalf("level 0 runs = %+v", m.Runs())
	}
	if !strings.Contains(m.View(), "Stereo Madness") {
		t.Error("title should name the level")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Level() != 1 || len(m.Runs()) != 0 {
		t.Errorf("level 1: cursor=%d runs=%d", m.Level(), len(m.Runs()))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty level should say so")
	}

	// Wraps backwards
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.Level() != 2 || len(m.Runs()) != 1 {
		t.Errorf("level 2: cursor=%d runs=%d", m.Level(), len(m.Runs()))
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, levelNames, 60, 20)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("missing store should be reported")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc should close the scoreboard")
	}
}
