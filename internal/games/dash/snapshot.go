package dash

import "math"

// Snapshot contains the simulation state for determinism checks and tests.
// Positions are stored as hundredths of a world unit.
type Snapshot struct {
	Tick      uint64
	State     string
	Level     int
	Score     int
	Lives     int
	Jumps     int
	Modes     int // ModeSet bits
	Mode      int
	BodyY     int
	BodyVY    int
	Shield    int
	SpeedMult int // percent
	Interval  int // milliseconds

	// Interactive entities, 5 ints each: Kind, Shape, X, Y, Passed
	EntityCount int
	EntityData  []int
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		State: g.state.String(),
	}
	run := g.run
	if run == nil {
		return snap
	}

	snap.Level = run.Level
	snap.Score = run.Score
	snap.Lives = run.Lives
	snap.Jumps = run.Jumps()
	snap.Modes = int(run.Modes)
	snap.Mode = int(run.Body.Mode())
	snap.BodyY = fixed(run.Body.Y())
	snap.BodyVY = fixed(run.Body.VelocityY())
	snap.Shield = run.Body.InvincibleTicks()
	snap.SpeedMult = fixed(run.SpeedMult)
	snap.Interval = int(run.Interval.Milliseconds())

	data := make([]int, 0, len(run.Entities)*5)
	for i := range run.Entities {
		e := &run.Entities[i]
		if !e.Interactive() {
			continue
		}
		passed := 0
		if e.Passed {
			passed = 1
		}
		data = append(data, int(e.Kind), int(e.Shape), fixed(e.X), fixed(e.Y), passed)
	}
	snap.EntityCount = len(data) / 5
	snap.EntityData = data
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Jumps)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Modes)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BodyY)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BodyVY)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shield)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpeedMult)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Interval)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EntityCount) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
