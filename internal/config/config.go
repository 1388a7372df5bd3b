// Package config provides YAML-based configuration loading for the dash
// simulation: field geometry, per-mode physics, run rules, the level catalog
// and the challenge catalog, plus difficulty presets for the spawn ramp.
package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dash/internal/core"
)

// DashConfig contains all configuration for the dash game.
type DashConfig struct {
	Field      Field            `yaml:"field"`
	Physics    Physics          `yaml:"physics"`
	Rules      Rules            `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     []Level          `yaml:"levels"`
	Challenges []Challenge      `yaml:"challenges"`
}

// Field is the world-space play area. All physics constants are in these units.
type Field struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	PlayerX      float64 `yaml:"player_x"`
	SafeTop      float64 `yaml:"safe_top"`    // Top of the band flying modes are clamped to
	SafeBottom   float64 `yaml:"safe_bottom"` // Bottom of that band
}

// GroundY returns the y-coordinate of the ground line.
func (f Field) GroundY() float64 {
	return f.Height - f.GroundHeight
}

// Physics groups the per-mode movement constants.
type Physics struct {
	Cube CubePhysics `yaml:"cube"`
	Ship ShipPhysics `yaml:"ship"`
	Ball BallPhysics `yaml:"ball"`
	UFO  UFOPhysics  `yaml:"ufo"`
	Wave WavePhysics `yaml:"wave"`
}

// CubePhysics defines the ground-runner mode.
type CubePhysics struct {
	Size         float64 `yaml:"size"`
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	HitboxInset  float64 `yaml:"hitbox_inset"`
	SpinPerTick  float64 `yaml:"spin_per_tick"`
}

// ShipPhysics defines the hold-to-fly mode.
type ShipPhysics struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`
	Thrust       float64 `yaml:"thrust"`
	MaxSpeed     float64 `yaml:"max_speed"`
	HitboxInsetX float64 `yaml:"hitbox_inset_x"`
	HitboxInsetY float64 `yaml:"hitbox_inset_y"`
	TiltFactor   float64 `yaml:"tilt_factor"`
}

// BallPhysics defines the gravity-flipping mode.
type BallPhysics struct {
	Radius      float64 `yaml:"radius"`
	Gravity     float64 `yaml:"gravity"`
	LaunchSpeed float64 `yaml:"launch_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	HitboxInset float64 `yaml:"hitbox_inset"`
	SpinFactor  float64 `yaml:"spin_factor"`
}

// UFOPhysics defines the tap-to-flap mode.
type UFOPhysics struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Gravity           float64 `yaml:"gravity"`
	Impulse           float64 `yaml:"impulse"`
	MaxRise           float64 `yaml:"max_rise"`
	MaxFall           float64 `yaml:"max_fall"`
	HitboxInsetX      float64 `yaml:"hitbox_inset_x"`
	HitboxInsetTop    float64 `yaml:"hitbox_inset_top"`
	HitboxInsetBottom float64 `yaml:"hitbox_inset_bottom"`
	HoverAmplitude    float64 `yaml:"hover_amplitude"`
	HoverStep         float64 `yaml:"hover_step"`
}

// WavePhysics defines the diagonal zig-zag mode.
type WavePhysics struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`
	TrailLength int     `yaml:"trail_length"`
	HitboxSize  float64 `yaml:"hitbox_size"`
}

// Rules defines run-level constants.
type Rules struct {
	Lives              int       `yaml:"lives"`
	PortalGraceTicks   int       `yaml:"portal_grace_ticks"`
	HitGraceTicks      int       `yaml:"hit_grace_ticks"`
	UnlockScore        int       `yaml:"unlock_score"`
	SpawnFloorMS       int       `yaml:"spawn_floor_ms"`
	SpawnDecayMS       int       `yaml:"spawn_decay_ms"`
	SpeedPortalChance  float64   `yaml:"speed_portal_chance"`
	SpeedPortalOptions []float64 `yaml:"speed_portal_options"`
}

// Level is one entry in the level catalog.
type Level struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description"`
	Background         Color    `yaml:"background_color"`
	Ground             Color    `yaml:"ground_color"`
	ObstacleColors     []Color  `yaml:"obstacle_colors"`
	Player             Color    `yaml:"player_color"`
	DecorationColors   []Color  `yaml:"decoration_colors"`
	ScrollSpeed        float64  `yaml:"base_scroll_speed"`
	SpawnIntervalMS    int      `yaml:"obstacle_frequency"`
	BackgroundElements int      `yaml:"background_elements"`
	ShipMode           bool     `yaml:"has_ship_mode"`
	BallMode           bool     `yaml:"has_ball_mode"`
	UFOMode            bool     `yaml:"has_ufo_mode"`
	WaveMode           bool     `yaml:"has_wave_mode"`
	SpeedChanges       bool     `yaml:"has_speed_changes"`
	Patterns           []string `yaml:"obstacle_patterns"`
}

// Allows reports whether the level permits the named movement mode.
// Cube is always allowed.
func (l Level) Allows(mode string) bool {
	switch mode {
	case ModeCube:
		return true
	case ModeShip:
		return l.ShipMode
	case ModeBall:
		return l.BallMode
	case ModeUFO:
		return l.UFOMode
	case ModeWave:
		return l.WaveMode
	default:
		return false
	}
}

// Challenge kinds.
const (
	ChallengeScore      = "score"       // Run score reaches Requirement
	ChallengeAllLevels  = "all_levels"  // Every level high score reaches Requirement
	ChallengePerfectRun = "perfect_run" // Run score reaches Requirement with at most Limit jumps
	ChallengeModeMaster = "mode_master" // Requirement distinct modes used in one run
)

// Challenge is one entry in the challenge catalog.
type Challenge struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
	Requirement int    `yaml:"requirement"`
	Limit       int    `yaml:"limit,omitempty"`
}

// Mode names as used in pattern requirements and level flags.
const (
	ModeCube = "cube"
	ModeShip = "ship"
	ModeBall = "ball"
	ModeUFO  = "ufo"
	ModeWave = "wave"
)

// PatternModes lists every known obstacle pattern and the mode it requires.
var PatternModes = map[string]string{
	"basic_spike_row": ModeCube,
	"basic_block":     ModeCube,
	"double_spike":    ModeCube,
	"platform_jump":   ModeCube,
	"ship_tunnel":     ModeShip,
	"ship_columns":    ModeShip,
	"ball_platforms":  ModeBall,
	"ufo_pillars":     ModeUFO,
	"wave_corridor":   ModeWave,
}

// Color is a level color. YAML accepts "#rrggbb" or a [r, g, b] sequence.
type Color struct {
	core.RGB
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		rgb, err := core.ParseRGB(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		c.RGB = rgb
		return nil
	case yaml.SequenceNode:
		var parts []int
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(parts) != 3 {
			return fmt.Errorf("line %d: color needs 3 channels, got %d", node.Line, len(parts))
		}
		for _, p := range parts {
			if p < 0 || p > 255 {
				return fmt.Errorf("line %d: color channel %d out of range", node.Line, p)
			}
		}
		//#nosec G115 -- range checked above
		c.RGB = core.RGB{R: uint8(parts[0]), G: uint8(parts[1]), B: uint8(parts[2])}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported color value", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return string(c.Hex()), nil
}

// Validate checks catalog consistency. The simulation relies on every level
// having at least one cube pattern so the generator never runs dry.
func (c DashConfig) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("config: no levels defined")
	}
	if c.Rules.Lives <= 0 {
		return fmt.Errorf("config: rules.lives must be positive")
	}
	if c.Field.Width <= 0 || c.Field.Height <= c.Field.GroundHeight {
		return fmt.Errorf("config: invalid field %vx%v", c.Field.Width, c.Field.Height)
	}
	for i, lvl := range c.Levels {
		if lvl.ScrollSpeed <= 0 {
			return fmt.Errorf("config: level %d (%s): base_scroll_speed must be positive", i, lvl.Name)
		}
		if lvl.SpawnIntervalMS <= 0 {
			return fmt.Errorf("config: level %d (%s): obstacle_frequency must be positive", i, lvl.Name)
		}
		if len(lvl.ObstacleColors) == 0 || len(lvl.DecorationColors) == 0 {
			return fmt.Errorf("config: level %d (%s): obstacle and decoration colors required", i, lvl.Name)
		}
		hasCube := false
		for _, p := range lvl.Patterns {
			mode, ok := PatternModes[p]
			if !ok {
				return fmt.Errorf("config: level %d (%s): unknown pattern %q", i, lvl.Name, p)
			}
			if mode == ModeCube {
				hasCube = true
			}
		}
		if !hasCube {
			return fmt.Errorf("config: level %d (%s): needs at least one cube pattern", i, lvl.Name)
		}
	}
	seen := make(map[string]bool, len(c.Challenges))
	kinds := []string{ChallengeScore, ChallengeAllLevels, ChallengePerfectRun, ChallengeModeMaster}
	for i, ch := range c.Challenges {
		if ch.ID == "" || seen[ch.ID] {
			return fmt.Errorf("config: challenge %d: missing or duplicate id %q", i, ch.ID)
		}
		seen[ch.ID] = true
		if !slices.Contains(kinds, ch.Kind) {
			return fmt.Errorf("config: challenge %q: unknown kind %q", ch.ID, ch.Kind)
		}
	}
	return nil
}
