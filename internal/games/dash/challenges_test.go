package dash

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-dash/internal/config"
)

func TestMet(t *testing.T) {
	var all ModeSet
	for m := range Mode(modeCount) {
		all.Add(m)
	}
	var two ModeSet
	two.Add(ModeCube)
	two.Add(ModeShip)

	tests := []struct {
		name  string
		ch    config.Challenge
		stats Stats
		want  bool
	}{
		{"score below", config.Challenge{Kind: config.ChallengeScore, Requirement: 5}, Stats{Score: 4}, false},
		{"score reached", config.Challenge{Kind: config.ChallengeScore, Requirement: 5}, Stats{Score: 5}, true},
		{"all levels", config.Challenge{Kind: config.ChallengeAllLevels, Requirement: 10}, Stats{HighScores: []int{10, 12, 10}}, true},
		{"all levels one short", config.Challenge{Kind: config.ChallengeAllLevels, Requirement: 10}, Stats{HighScores: []int{10, 9, 30}}, false},
		{"all levels empty", config.Challenge{Kind: config.ChallengeAllLevels, Requirement: 10}, Stats{}, false},
		{"perfect run", config.Challenge{Kind: config.ChallengePerfectRun, Requirement: 10, Limit: 20}, Stats{Score: 10, Jumps: 20}, true},
		{"perfect run too many jumps", config.Challenge{Kind: config.ChallengePerfectRun, Requirement: 10, Limit: 20}, Stats{Score: 15, Jumps: 21}, false},
		{"mode master", config.Challenge{Kind: config.ChallengeModeMaster, Requirement: 5}, Stats{Modes: all}, true},
		{"mode master partial", config.Challenge{Kind: config.ChallengeModeMaster, Requirement: 5}, Stats{Modes: two}, false},
		{"unknown kind", config.Challenge{Kind: "speedrun"}, Stats{Score: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Met(tt.ch, tt.stats); got != tt.want {
				t.Errorf("Met() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackerMonotonic(t *testing.T) {
	catalog := config.DefaultDashConfig().Challenges
	tr := NewTracker(catalog, []bool{false, true})

	if !tr.Done(1) || tr.Count() != 1 {
		t.Fatal("persisted flags should seed the tracker")
	}

	got := tr.Evaluate(Stats{Score: 10, Jumps: 50, HighScores: []int{10, 0, 0}})
	if want := []string{"beginner"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}

	// Already complete: nothing new, nothing reset
	if got := tr.Evaluate(Stats{}); len(got) != 0 {
		t.Errorf("Evaluate() = %v on empty stats", got)
	}
	if !tr.Done(0) || !tr.Done(1) {
		t.Error("completed challenges must never reset")
	}

	flags := tr.Flags()
	flags[2] = true
	if tr.Done(2) {
		t.Error("Flags() should return a copy")
	}
}
