package dash

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-dash/internal/config"
)

// RunState is everything owned by one attempt at a level. It is rebuilt from
// scratch on level entry.
type RunState struct {
	Level     int
	Score     int
	Lives     int
	SpeedMult float64 // changed only by speed portals
	Ticks     int
	Modes     ModeSet

	Body       Body
	Entities   []Entity
	Background []BackgroundElement

	// Spawn timer
	SinceSpawn time.Duration
	Interval   time.Duration
	Tail       float64 // right edge of the newest cluster

	retiredJumps int // jumps made by bodies replaced through portals
}

// newRun creates a fresh run on level idx. The body always starts as a cube.
func newRun(idx int, cfg config.DashConfig, ramp *config.SpawnRamp, rng *rand.Rand) *RunState {
	level := cfg.Levels[idx]
	r := &RunState{
		Level:     idx,
		Lives:     cfg.Rules.Lives,
		SpeedMult: 1.0,
		Body:      NewBody(ModeCube, cfg.Field, cfg.Physics, level.Player.RGB),
		Entities:  make([]Entity, 0, 64),
		Interval:  ramp.Initial(level),
	}
	r.Modes.Add(ModeCube)
	r.Background = newBackground(level, cfg.Field, rng)
	return r
}

func newBackground(level config.Level, field config.Field, rng *rand.Rand) []BackgroundElement {
	color := level.Background.Contrast()
	bg := make([]BackgroundElement, level.BackgroundElements)
	for i := range bg {
		bg[i] = newBackgroundElement(field, color, rng)
	}
	return bg
}

// Jumps returns the jump count across every body used in this run.
func (r *RunState) Jumps() int {
	return r.retiredJumps + r.Body.Jumps()
}

// Scroll returns the world scroll per tick for the given level.
func (r *RunState) Scroll(level config.Level) float64 {
	return level.ScrollSpeed * r.SpeedMult
}

// switchMode replaces the body with a fresh one of the target mode. Color is
// carried over and the grace window starts from scratch.
func (r *RunState) switchMode(target Mode, cfg config.DashConfig) {
	old := r.Body
	r.retiredJumps += old.Jumps()
	r.Body = NewBody(target, cfg.Field, cfg.Physics, old.Color())
	r.Body.BeginInvincibility(cfg.Rules.PortalGraceTicks)
	r.Modes.Add(target)
}

// addCluster appends generated entities and advances the spawn tail.
func (r *RunState) addCluster(c Cluster, anchor float64) {
	r.Entities = append(r.Entities, c.Entities...)
	r.Tail = max(r.Tail, c.Tail(anchor))
}
