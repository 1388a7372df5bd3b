package dash

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/progress"
)

const spawnTick = 100 * time.Millisecond

// newSpawnGame starts a cube-only run on a 1500 ms interval with a 1490 ms
// floor, so the ramp reaches the floor after two spawns.
func newSpawnGame(t *testing.T, scroll float64) *Game {
	t.Helper()
	cfg := config.DefaultDashConfig()
	cfg.Rules.SpawnFloorMS = 1490

	lvl := &cfg.Levels[0]
	lvl.ScrollSpeed = scroll
	lvl.SpawnIntervalMS = 1500
	lvl.SpeedChanges = false
	lvl.ShipMode, lvl.BallMode, lvl.UFOMode, lvl.WaveMode = false, false, false, false
	lvl.Patterns = []string{"basic_spike_row", "basic_block"}

	g := New(WithConfig(cfg), WithStore(progress.NewMemory(progress.Progress{})))
	g.Reset(testRuntime(7))
	g.StartRun(0)
	g.run.Body.BeginInvincibility(1 << 20)
	return g
}

// stepSpawn advances one tick and reports whether a cluster spawned.
func stepSpawn(g *Game) bool {
	in := core.NewInputFrame()
	in.Elapsed = spawnTick
	g.Step(in)
	return g.run.SinceSpawn == 0
}

func TestSpawnCadence(t *testing.T) {
	tests := []struct {
		name      string
		mult      float64
		wantTicks []int
	}{
		// 1500/1.0 -> 16 ticks, then 1495 and 1490 -> 15 each
		{"normal speed", 1.0, []int{16, 31, 46, 61}},
		// 1500/1.3, 1495/1.3 and 1490/1.3 all need 12 ticks
		{"fast portal", 1.3, []int{12, 24, 36, 48}},
	}
	wantIntervals := []time.Duration{
		1495 * time.Millisecond,
		1490 * time.Millisecond,
		1490 * time.Millisecond,
		1490 * time.Millisecond,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Fast scroll keeps the tail gate open
			g := newSpawnGame(t, 100)
			g.run.SpeedMult = tt.mult

			var ticks []int
			var intervals []time.Duration
			for tick := 1; tick <= 200 && len(ticks) < len(tt.wantTicks); tick++ {
				if stepSpawn(g) {
					ticks = append(ticks, tick)
					intervals = append(intervals, g.run.Interval)
				}
			}

			if !reflect.DeepEqual(ticks, tt.wantTicks) {
				t.Errorf("spawn ticks = %v, want %v", ticks, tt.wantTicks)
			}
			if !reflect.DeepEqual(intervals, wantIntervals) {
				t.Errorf("intervals = %v, want %v", intervals, wantIntervals)
			}
			if g.run.Interval < g.ramp.Floor() {
				t.Errorf("interval %v fell below floor %v", g.run.Interval, g.ramp.Floor())
			}
		})
	}
}

func TestSpawnWaitsForTail(t *testing.T) {
	g := newSpawnGame(t, 1)
	level := g.cfg.Levels[0]
	width := g.cfg.Field.Width

	spawns, delayed := 0, 0
	for tick := 1; tick <= 3000; tick++ {
		run := g.run
		due := g.ramp.Due(run.SinceSpawn+spawnTick, run.Interval, run.SpeedMult)
		open := run.Tail-run.Scroll(level) <= width
		prev := run.Interval

		spawned := stepSpawn(g)
		if spawned != (due && open) {
			t.Fatalf("tick %d: spawned=%v due=%v gate open=%v", tick, spawned, due, open)
		}
		if due && !open {
			delayed++
		}
		if spawned {
			spawns++
			if want := g.ramp.Next(prev); g.run.Interval != want {
				t.Fatalf("tick %d: interval %v, want %v", tick, g.run.Interval, want)
			}
			if g.run.Tail < width {
				t.Fatalf("tick %d: tail %.1f left of the spawn edge", tick, g.run.Tail)
			}
		}
	}

	if spawns < 2 {
		t.Errorf("expected several spawns, got %d", spawns)
	}
	if delayed == 0 {
		t.Error("slow scroll should hold at least one due spawn behind the tail")
	}
}
