package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-dash/internal/core"
)

//go:embed defaults/dash.yaml
var defaultDashYAML []byte

// DefaultDashConfig returns the built-in configuration. It mirrors
// defaults/dash.yaml and is used when the embedded file cannot be parsed.
func DefaultDashConfig() DashConfig {
	return DashConfig{
		Field: Field{
			Width:        800,
			Height:       500,
			GroundHeight: 50,
			PlayerX:      100,
			SafeTop:      10,
			SafeBottom:   440,
		},
		Physics: Physics{
			Cube: CubePhysics{
				Size:         30,
				Gravity:      0.8,
				JumpVelocity: -12,
				HitboxInset:  5,
				SpinPerTick:  -5,
			},
			Ship: ShipPhysics{
				Width:        40,
				Height:       20,
				Gravity:      0.15,
				Thrust:       0.45,
				MaxSpeed:     4,
				HitboxInsetX: 8,
				HitboxInsetY: 6,
				TiltFactor:   -5,
			},
			Ball: BallPhysics{
				Radius:      15,
				Gravity:     0.8,
				LaunchSpeed: 4,
				MaxSpeed:    12,
				HitboxInset: 5,
				SpinFactor:  2,
			},
			UFO: UFOPhysics{
				Width:             30,
				Height:            20,
				Gravity:           0.3,
				Impulse:           -6,
				MaxRise:           8,
				MaxFall:           6,
				HitboxInsetX:      8,
				HitboxInsetTop:    8,
				HitboxInsetBottom: 2,
				HoverAmplitude:    2,
				HoverStep:         0.1,
			},
			Wave: WavePhysics{
				Width:       30,
				Height:      10,
				Speed:       3,
				TrailLength: 20,
				HitboxSize:  6,
			},
		},
		Rules: Rules{
			Lives:              3,
			PortalGraceTicks:   60,
			HitGraceTicks:      90,
			UnlockScore:        10,
			SpawnFloorMS:       1200,
			SpawnDecayMS:       5,
			SpeedPortalChance:  0.2,
			SpeedPortalOptions: []float64{0.7, 1.0, 1.3},
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			IntervalScale: 1.0,
			DecayScale:    1.0,
		},
		Levels:     defaultLevels(),
		Challenges: defaultChallenges(),
	}
}

func rgb(r, g, b uint8) Color {
	return Color{core.RGB{R: r, G: g, B: b}}
}

func defaultLevels() []Level {
	cubePatterns := []string{"basic_spike_row", "basic_block", "double_spike", "platform_jump"}
	return []Level{
		{
			Name:               "Stereo Madness",
			Description:        "The beginning of your journey!",
			Background:         rgb(20, 30, 70),
			Ground:             rgb(0, 180, 80),
			ObstacleColors:     []Color{rgb(255, 50, 50), rgb(255, 100, 100)},
			Player:             Color{core.RGBNeonBlue},
			DecorationColors:   []Color{{core.RGBNeonGreen}, {core.RGBNeonBlue}, {core.RGBNeonPink}},
			ScrollSpeed:        4,
			SpawnIntervalMS:    2000,
			BackgroundElements: 30,
			SpeedChanges:       true,
			Patterns:           append([]string(nil), cubePatterns...),
		},
		{
			Name:               "Back On Track",
			Description:        "Find your rhythm!",
			Background:         rgb(70, 20, 90),
			Ground:             rgb(255, 140, 0),
			ObstacleColors:     []Color{rgb(0, 191, 255), rgb(0, 150, 200)},
			Player:             Color{core.RGBNeonOrange},
			DecorationColors:   []Color{{core.RGBNeonPink}, {core.RGBYellow}, {core.RGBCyan}},
			ScrollSpeed:        5,
			SpawnIntervalMS:    1800,
			BackgroundElements: 40,
			ShipMode:           true,
			SpeedChanges:       true,
			Patterns:           append(append([]string(nil), cubePatterns...), "ship_tunnel", "ship_columns"),
		},
		{
			Name:               "Polargeist",
			Description:        "Master all game modes!",
			Background:         rgb(20, 70, 90),
			Ground:             rgb(180, 0, 180),
			ObstacleColors:     []Color{rgb(255, 20, 147), rgb(200, 0, 100)},
			Player:             Color{core.RGBNeonGreen},
			DecorationColors:   []Color{{core.RGBNeonBlue}, {core.RGBNeonOrange}, {core.RGBYellow}},
			ScrollSpeed:        6,
			SpawnIntervalMS:    1600,
			BackgroundElements: 50,
			ShipMode:           true,
			BallMode:           true,
			UFOMode:            true,
			WaveMode:           true,
			SpeedChanges:       true,
			Patterns: append(append([]string(nil), cubePatterns...),
				"ship_tunnel", "ship_columns", "ball_platforms", "ufo_pillars", "wave_corridor"),
		},
	}
}

func defaultChallenges() []Challenge {
	return []Challenge{
		{ID: "beginner", Name: "Beginner", Description: "Score 5 points in any level", Kind: ChallengeScore, Requirement: 5},
		{ID: "intermediate", Name: "Intermediate", Description: "Score 10 points in any level", Kind: ChallengeScore, Requirement: 10},
		{ID: "expert", Name: "Expert", Description: "Score 15 points in any level", Kind: ChallengeScore, Requirement: 15},
		{ID: "level_master", Name: "Level Master", Description: "Score 10 on every level", Kind: ChallengeAllLevels, Requirement: 10},
		{ID: "perfect_run", Name: "Perfect Run", Description: "Score 10 without jumping more than 20 times", Kind: ChallengePerfectRun, Requirement: 10, Limit: 20},
		{ID: "mode_master", Name: "Mode Master", Description: "Use all game modes in a single run", Kind: ChallengeModeMaster, Requirement: 5},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDashYAML
}
