package config

import (
	"math"
	"time"
)

// DifficultyConfig scales the spawn ramp on top of the per-level intervals.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`        // false freezes the interval at its starting value
	IntervalScale float64 `yaml:"interval_scale"` // Multiplier on each level's base spawn interval
	DecayScale    float64 `yaml:"decay_scale"`    // Multiplier on the per-spawn interval decay
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *DashConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	switch preset {
	case DifficultyEasy:
		d.Enabled, d.IntervalScale, d.DecayScale = true, 1.25, 0.5
	case DifficultyHard:
		d.Enabled, d.IntervalScale, d.DecayScale = true, 0.8, 2.0
	case DifficultyFixed:
		d.Enabled = false
		if d.IntervalScale <= 0 {
			d.IntervalScale = 1.0
		}
	default:
		d.Enabled, d.IntervalScale, d.DecayScale = true, 1.0, 1.0
	}
}

// SpawnRamp computes obstacle spawn timing. The current interval lives in the
// run state; the ramp only knows how to start it, advance it and test it.
type SpawnRamp struct {
	cfg   DifficultyConfig
	floor time.Duration
	decay time.Duration
}

// NewSpawnRamp creates a ramp from the run rules and difficulty settings.
func NewSpawnRamp(rules Rules, cfg DifficultyConfig) *SpawnRamp {
	if cfg.IntervalScale <= 0 {
		cfg.IntervalScale = 1.0
	}
	if cfg.DecayScale < 0 {
		cfg.DecayScale = 0
	}
	return &SpawnRamp{
		cfg:   cfg,
		floor: time.Duration(rules.SpawnFloorMS) * time.Millisecond,
		decay: time.Duration(float64(rules.SpawnDecayMS)*cfg.DecayScale*float64(time.Millisecond) + 0.5),
	}
}

// IsEnabled returns whether the interval shrinks after each spawn.
func (r *SpawnRamp) IsEnabled() bool {
	return r.cfg.Enabled && r.decay > 0
}

// Initial returns the starting interval for a level.
func (r *SpawnRamp) Initial(level Level) time.Duration {
	base := float64(level.SpawnIntervalMS) * r.cfg.IntervalScale
	return time.Duration(math.Round(base)) * time.Millisecond
}

// Due reports whether a new cluster should spawn. The interval is scaled
// inversely by the active scroll-speed multiplier.
func (r *SpawnRamp) Due(elapsed, interval time.Duration, speedMult float64) bool {
	if speedMult <= 0 {
		speedMult = 1
	}
	return float64(elapsed) > float64(interval)/speedMult
}

// Next returns the interval after one spawn, never dropping below the floor.
// An interval already under the floor is left alone.
func (r *SpawnRamp) Next(interval time.Duration) time.Duration {
	if !r.IsEnabled() || interval <= r.floor {
		return interval
	}
	return max(r.floor, interval-r.decay)
}

// Floor returns the minimum interval.
func (r *SpawnRamp) Floor() time.Duration {
	return r.floor
}
