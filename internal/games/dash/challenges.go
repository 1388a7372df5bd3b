package dash

import "github.com/vovakirdan/tui-dash/internal/config"

// Stats is the run and profile data challenges are evaluated against.
type Stats struct {
	Score      int
	Jumps      int
	Modes      ModeSet
	HighScores []int
}

// Met reports whether stats satisfy a challenge condition.
func Met(ch config.Challenge, s Stats) bool {
	switch ch.Kind {
	case config.ChallengeScore:
		return s.Score >= ch.Requirement
	case config.ChallengeAllLevels:
		if len(s.HighScores) == 0 {
			return false
		}
		for _, hs := range s.HighScores {
			if hs < ch.Requirement {
				return false
			}
		}
		return true
	case config.ChallengePerfectRun:
		return s.Score >= ch.Requirement && s.Jumps <= ch.Limit
	case config.ChallengeModeMaster:
		return s.Modes.Len() >= ch.Requirement
	default:
		return false
	}
}

// Tracker holds completion flags for the challenge catalog. Flags only ever
// go from false to true.
type Tracker struct {
	catalog []config.Challenge
	done    []bool
}

// NewTracker creates a tracker seeded with persisted flags. done is copied
// and sized to the catalog.
func NewTracker(catalog []config.Challenge, done []bool) *Tracker {
	t := &Tracker{catalog: catalog, done: make([]bool, len(catalog))}
	copy(t.done, done)
	return t
}

// Evaluate marks newly satisfied challenges and returns their IDs.
func (t *Tracker) Evaluate(s Stats) []string {
	var completed []string
	for i, ch := range t.catalog {
		if t.done[i] || !Met(ch, s) {
			continue
		}
		t.done[i] = true
		completed = append(completed, ch.ID)
	}
	return completed
}

// Done reports whether challenge i is complete.
func (t *Tracker) Done(i int) bool {
	return i >= 0 && i < len(t.done) && t.done[i]
}

// Flags returns a copy of the completion flags in catalog order.
func (t *Tracker) Flags() []bool {
	return append([]bool(nil), t.done...)
}

// Count returns how many challenges are complete.
func (t *Tracker) Count() int {
	n := 0
	for _, d := range t.done {
		if d {
			n++
		}
	}
	return n
}

// Catalog returns the challenge definitions.
func (t *Tracker) Catalog() []config.Challenge {
	return t.catalog
}
