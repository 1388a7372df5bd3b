package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dash/internal/registry"
)

func TestNewSSHServerUnknownGame(t *testing.T) {
	registry.Register("scripted-ssh", func(registry.Env) registry.Game { return &scriptedGame{} })

	_, err := NewSSHServer(SSHServerConfig{GameID: "nope"})
	if err == nil {
		t.Fatal("expected an error for an unregistered game")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"nope"`) {
		t.Errorf("error should name the requested game: %v", err)
	}
	if !strings.Contains(msg, "scripted-ssh") {
		t.Errorf("error should list registered games: %v", err)
	}
}
