package dash

import (
	"math/rand"

	"github.com/vovakirdan/tui-dash/internal/config"
)

// Outcome reports what one resolver pass changed.
type Outcome struct {
	Scored      int
	Switched    []Mode // portal targets triggered this tick, in order
	SpeedChange bool
	Culled      int
	Damaged     bool
	GameOver    bool
}

// Resolver runs the per-tick interaction pass over the live entity set.
type Resolver struct {
	cfg config.DashConfig
	rng *rand.Rand
}

// NewResolver creates a resolver. rng drives entity visuals only.
func NewResolver(cfg config.DashConfig, rng *rand.Rand) *Resolver {
	return &Resolver{cfg: cfg, rng: rng}
}

// Resolve advances every live entity by scroll and applies scoring, portal
// triggers, culling and damage to run. Damage is applied at most once per
// pass no matter how many hazards overlap.
func (r *Resolver) Resolve(run *RunState, scroll float64) Outcome {
	var out Outcome
	hit := false

	valid := run.Entities[:0]
	for i := range run.Entities {
		e := run.Entities[i]
		e.Advance(scroll, r.rng)

		switch e.Kind {
		case KindHazard:
			if !e.Passed && run.Body.Bounds().Right() > e.Right() {
				e.Passed = true
				run.Score++
				out.Scored++
			}
		case KindPortal:
			if !e.Passed && e.Hitbox().Intersects(run.Body.Hitbox()) {
				e.Passed = true
				run.switchMode(e.Target, r.cfg)
				out.Switched = append(out.Switched, e.Target)
			}
		case KindSpeedPortal:
			if !e.Passed && e.Hitbox().Intersects(run.Body.Hitbox()) {
				e.Passed = true
				run.SpeedMult = e.Speed
				out.SpeedChange = true
			}
		}

		if e.OffScreen() {
			out.Culled++
			continue
		}

		if e.Kind == KindHazard && !run.Body.Invincible() && e.Hitbox().Intersects(run.Body.Hitbox()) {
			hit = true
		}
		valid = append(valid, e)
	}
	// Drop references held past the new length
	for i := len(valid); i < len(run.Entities); i++ {
		run.Entities[i] = Entity{}
	}
	run.Entities = valid

	if hit {
		out.Damaged = true
		run.Lives = max(run.Lives-1, 0)
		if run.Lives == 0 {
			out.GameOver = true
		} else {
			run.Body.BeginInvincibility(r.cfg.Rules.HitGraceTicks)
		}
	}
	return out
}
