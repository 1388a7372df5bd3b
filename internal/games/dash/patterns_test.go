package dash

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-dash/internal/config"
)

func newTestGenerator(seed int64) (*Generator, config.DashConfig) {
	cfg := config.DefaultDashConfig()
	return NewGenerator(rand.New(rand.NewSource(seed)), cfg.Field, cfg.Rules), cfg
}

func TestEveryPatternHasBuilder(t *testing.T) {
	for id := range config.PatternModes {
		if patternBuilders[id] == nil {
			t.Errorf("pattern %q has no builder", id)
		}
	}
	if len(patternBuilders) != len(config.PatternModes) {
		t.Errorf("%d builders for %d known patterns", len(patternBuilders), len(config.PatternModes))
	}
}

func TestCandidatesFilterDisallowedModes(t *testing.T) {
	g, cfg := newTestGenerator(1)

	// A level listing mode patterns without enabling the modes
	level := cfg.Levels[2]
	level.ShipMode, level.BallMode, level.UFOMode, level.WaveMode = false, false, false, false

	want := []string{"basic_spike_row", "basic_block", "double_spike", "platform_jump"}
	if got := g.Candidates(level); !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}

	for range 200 {
		c := g.Generate(level, cfg.Field.Width)
		for _, e := range c.Entities {
			if e.Kind == KindPortal {
				t.Fatalf("pattern %q produced a portal on a cube-only level", c.Pattern)
			}
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	g1, cfg := newTestGenerator(99)
	g2, _ := newTestGenerator(99)
	level := cfg.Levels[2]

	for i := range 50 {
		c1 := g1.Generate(level, cfg.Field.Width)
		c2 := g2.Generate(level, cfg.Field.Width)
		if !reflect.DeepEqual(c1, c2) {
			t.Fatalf("cluster %d differs between equally seeded generators", i)
		}
	}
}

func TestModeSectionsReturnToCube(t *testing.T) {
	g, cfg := newTestGenerator(7)
	level := cfg.Levels[2]
	x := cfg.Field.Width

	for _, id := range []string{"ship_tunnel", "ship_columns", "ball_platforms", "ufo_pillars", "wave_corridor"} {
		t.Run(id, func(t *testing.T) {
			entities := patternBuilders[id](g, patternContext{level: level, x: x, obstacle: level.ObstacleColors[0].RGB, ground: level.Ground.RGB})

			var portals []Entity
			for _, e := range entities {
				if e.Kind == KindPortal {
					portals = append(portals, e)
				}
			}
			if len(portals) != 2 {
				t.Fatalf("expected entry and exit portals, got %d", len(portals))
			}
			want, _ := ParseMode(config.PatternModes[id])
			if portals[0].Target != want || portals[0].X != x {
				t.Errorf("entry portal = %v at %v", portals[0].Target, portals[0].X)
			}
			if portals[1].Target != ModeCube {
				t.Errorf("exit portal target = %v, want cube", portals[1].Target)
			}

			for _, e := range entities {
				if e.Kind != KindHazard {
					continue
				}
				if e.X < x+sectionLead {
					t.Errorf("obstacle at %v starts before the lead-in", e.X)
				}
				if e.X >= portals[1].X {
					t.Errorf("obstacle at %v placed past the exit portal", e.X)
				}
				if e.W <= 0 || e.H <= 0 || e.Y < 0 || e.Y+e.H > cfg.Field.GroundY() {
					t.Errorf("obstacle %+v outside the field", e.Bounds())
				}
			}
		})
	}
}

func TestGenerateDecorationsAndSpeedPortal(t *testing.T) {
	g, cfg := newTestGenerator(3)
	level := cfg.Levels[0]
	x := cfg.Field.Width

	sawSpeed := false
	for range 300 {
		c := g.Generate(level, x)
		decor := 0
		for _, e := range c.Entities {
			switch e.Kind {
			case KindDecorative:
				decor++
				if e.X < x || e.X > x+decorSpread {
					t.Fatalf("decoration at %v outside the spread", e.X)
				}
			case KindSpeedPortal:
				sawSpeed = true
				if e.X != x-speedPortalLead {
					t.Fatalf("speed portal at %v, want %v", e.X, x-speedPortalLead)
				}
			}
		}
		if decor < 3 || decor > 8 {
			t.Fatalf("cluster has %d decorations, want 3-8", decor)
		}
	}
	if !sawSpeed {
		t.Error("levels with speed changes should eventually get a speed portal")
	}

	level.SpeedChanges = false
	for range 300 {
		for _, e := range g.Generate(level, x).Entities {
			if e.Kind == KindSpeedPortal {
				t.Fatal("speed portal generated on a level without speed changes")
			}
		}
	}
}

func TestBackgroundElementWraps(t *testing.T) {
	cfg := config.DefaultDashConfig()
	rng := rand.New(rand.NewSource(5))
	b := newBackgroundElement(cfg.Field, cfg.Levels[0].Background.Contrast(), rng)
	b.X = -b.Size + 0.1

	b.Advance(5, cfg.Field, rng)
	if b.X < cfg.Field.Width {
		t.Errorf("element should wrap to the right edge, x=%v", b.X)
	}
	if b.Size < 10 || b.Size > 30 || b.Speed < 0.5 || b.Speed > 2 {
		t.Errorf("respawned element out of range: %+v", b)
	}
}

func TestPortalParticles(t *testing.T) {
	cfg := config.DefaultDashConfig()
	rng := rand.New(rand.NewSource(1))
	p := newPortal(500, cfg.Field, ModeShip)

	for range portalParticleEvery {
		p.Advance(1, rng)
	}
	if len(p.Particles) != 1 {
		t.Fatalf("portal should emit every %d ticks, have %d particles", portalParticleEvery, len(p.Particles))
	}
	for range portalParticleLife * 3 {
		p.Advance(1, rng)
	}
	if n := len(p.Particles); n > portalParticleLife/portalParticleEvery+1 {
		t.Errorf("expired particles should be dropped, have %d", n)
	}
}
