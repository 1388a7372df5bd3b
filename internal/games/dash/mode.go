package dash

import "github.com/vovakirdan/tui-dash/internal/config"

// Mode is the active movement mode of the player body.
type Mode int

const (
	ModeCube Mode = iota
	ModeShip
	ModeBall
	ModeUFO
	ModeWave
)

// modeCount is the number of movement modes.
const modeCount = 5

var modeNames = [modeCount]string{
	config.ModeCube,
	config.ModeShip,
	config.ModeBall,
	config.ModeUFO,
	config.ModeWave,
}

var modeLabels = [modeCount]string{"CUBE", "SHIP", "BALL", "UFO", "WAVE"}

// String returns the config name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

// Label returns the HUD label of the mode.
func (m Mode) Label() string {
	if m < 0 || int(m) >= modeCount {
		return "?"
	}
	return modeLabels[m]
}

// ParseMode maps a config name to a Mode.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeCube, false
}

// HoldToFly reports whether holding jump keeps the input asserted every tick.
func (m Mode) HoldToFly() bool {
	return m == ModeShip || m == ModeWave
}

// ModeSet is a small bit set of modes used during a run.
type ModeSet uint8

// Add marks a mode as used.
func (s *ModeSet) Add(m Mode) {
	*s |= 1 << uint(m)
}

// Has reports whether a mode was used.
func (s ModeSet) Has(m Mode) bool {
	return s&(1<<uint(m)) != 0
}

// Len returns the number of distinct modes in the set.
func (s ModeSet) Len() int {
	n := 0
	for m := range Mode(modeCount) {
		if s.Has(m) {
			n++
		}
	}
	return n
}
