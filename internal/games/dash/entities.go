package dash

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// Kind tags how the resolver treats an entity.
type Kind int

const (
	KindHazard      Kind = iota // Damages on overlap, scores when cleared
	KindPortal                  // Switches movement mode on first overlap
	KindSpeedPortal             // Sets the scroll multiplier on first overlap
	KindDecorative              // Never interacts
)

func (k Kind) String() string {
	switch k {
	case KindHazard:
		return "hazard"
	case KindPortal:
		return "portal"
	case KindSpeedPortal:
		return "speed_portal"
	case KindDecorative:
		return "decorative"
	default:
		return "unknown"
	}
}

// Shape is the visual form of an entity.
type Shape int

const (
	ShapeSpike Shape = iota
	ShapeBlock
	ShapePlatform
	ShapePortal
	ShapeSpeedPortal
	ShapeDecoration
)

// DecorShape selects the glyph of decorations and background elements.
type DecorShape int

const (
	DecorSquare DecorShape = iota
	DecorTriangle
	DecorCircle
	DecorStar
	decorShapeCount
)

// Entity sizes and hitbox insets in world units.
const (
	spikeSize        = 30
	spikeInset       = 8
	blockWidth       = 30
	blockInset       = 3
	platformInset    = 3
	portalWidth      = 40
	portalInset      = 5
	speedPortalW     = 30
	speedPortalH     = 60
	speedPortalInset = 5

	portalParticleEvery = 5
	portalParticleLife  = 30
	speedParticleChance = 0.2
	speedParticleLife   = 20
	spikeGlintChance    = 0.02
)

// Particle is a short-lived portal sparkle.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int
}

// Entity is anything in the live obstacle set. Kind decides how the resolver
// treats it; the remaining fields are shape-specific.
type Entity struct {
	Kind  Kind
	Shape Shape
	X, Y  float64 // top-left
	W, H  float64
	Inset float64 // hitbox shrink on every side
	Color core.RGB

	// Passed is set once when the entity is scored or triggered and never cleared.
	Passed bool

	UpsideDown bool    // ceiling spikes
	Target     Mode    // portal destination
	Speed      float64 // speed portal multiplier

	Decor    DecorShape
	Rotation float64
	Spin     float64
	Glint    bool

	Particles     []Particle
	particleTimer int
}

// Advance scrolls the entity left and updates its visual sub-state.
func (e *Entity) Advance(scroll float64, rng *rand.Rand) {
	e.X -= scroll

	switch e.Shape {
	case ShapeSpike:
		e.Glint = rng.Float64() < spikeGlintChance
	case ShapePortal:
		e.particleTimer++
		if e.particleTimer >= portalParticleEvery {
			e.particleTimer = 0
			e.Particles = append(e.Particles, Particle{
				X:    e.X + e.W/2,
				Y:    e.Y + rng.Float64()*e.H,
				Life: portalParticleLife,
			})
		}
		e.ageParticles()
	case ShapeSpeedPortal:
		if rng.Float64() < speedParticleChance {
			e.Particles = append(e.Particles, Particle{
				X:    e.X + e.W/2,
				Y:    e.Y + rng.Float64()*e.H,
				VX:   -(1 + 2*rng.Float64()),
				VY:   2*rng.Float64() - 1,
				Life: speedParticleLife,
			})
		}
		e.ageParticles()
	case ShapeDecoration:
		e.Rotation = math.Mod(e.Rotation+e.Spin+360, 360)
	}
}

func (e *Entity) ageParticles() {
	valid := e.Particles[:0]
	for _, p := range e.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			valid = append(valid, p)
		}
	}
	e.Particles = valid
}

// Bounds returns the visual extent.
func (e *Entity) Bounds() core.RectF {
	return core.RectF{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Hitbox returns the collision box.
func (e *Entity) Hitbox() core.RectF {
	return e.Bounds().Inset(e.Inset, e.Inset)
}

// Right returns the trailing edge x.
func (e *Entity) Right() float64 {
	return e.X + e.W
}

// OffScreen reports whether the entity has fully left the field on the left.
func (e *Entity) OffScreen() bool {
	return e.Right() < 0
}

// Interactive reports whether the entity takes part in collision checks.
func (e *Entity) Interactive() bool {
	return e.Kind != KindDecorative
}

func newSpike(x float64, field config.Field, color core.RGB, upsideDown bool) Entity {
	y := field.GroundY() - spikeSize
	if upsideDown {
		y = 0
	}
	return Entity{
		Kind: KindHazard, Shape: ShapeSpike,
		X: x, Y: y, W: spikeSize, H: spikeSize,
		Inset: spikeInset, Color: color, UpsideDown: upsideDown,
	}
}

// newBlock creates a ground-standing block of the given height.
func newBlock(x, height float64, field config.Field, color core.RGB) Entity {
	return Entity{
		Kind: KindHazard, Shape: ShapeBlock,
		X: x, Y: field.GroundY() - height, W: blockWidth, H: height,
		Inset: blockInset, Color: color,
	}
}

func newPlatform(x, y, w, h float64, color core.RGB) Entity {
	return Entity{
		Kind: KindHazard, Shape: ShapePlatform,
		X: x, Y: y, W: w, H: h,
		Inset: platformInset, Color: color,
	}
}

// newPortal creates a mode portal. Portals span the whole playable height so
// a flying body cannot slip past the exit gate.
func newPortal(x float64, field config.Field, target Mode) Entity {
	return Entity{
		Kind: KindPortal, Shape: ShapePortal,
		X: x, Y: 0, W: portalWidth, H: field.GroundY(),
		Inset: portalInset, Color: portalColor(target), Target: target,
	}
}

func newSpeedPortal(x float64, field config.Field, mult float64) Entity {
	return Entity{
		Kind: KindSpeedPortal, Shape: ShapeSpeedPortal,
		X: x, Y: field.GroundY() - speedPortalH, W: speedPortalW, H: speedPortalH,
		Inset: speedPortalInset, Color: speedPortalColor(mult), Speed: mult,
	}
}

func newDecoration(x, y float64, color core.RGB, rng *rand.Rand) Entity {
	size := float64(10 + rng.Intn(21))
	return Entity{
		Kind: KindDecorative, Shape: ShapeDecoration,
		X: x, Y: y, W: size, H: size,
		Color:    color,
		Decor:    DecorShape(rng.Intn(int(decorShapeCount))),
		Rotation: float64(rng.Intn(361)),
		Spin:     2*rng.Float64() - 1,
	}
}

func portalColor(target Mode) core.RGB {
	switch target {
	case ModeShip:
		return core.RGBPurple
	case ModeBall:
		return core.RGBYellow
	case ModeUFO:
		return core.RGBCyan
	case ModeWave:
		return core.RGBNeonPink
	default:
		return core.RGBBlue
	}
}

func speedPortalColor(mult float64) core.RGB {
	switch {
	case mult < 1:
		return core.RGBGreen
	case mult > 1:
		return core.RGBRed
	default:
		return core.RGBYellow
	}
}

// BackgroundElement is a parallax shape behind the course. It wraps to the
// right edge instead of leaving the live set.
type BackgroundElement struct {
	X, Y     float64
	Size     float64
	Speed    float64
	Rotation float64
	Spin     float64
	Shape    DecorShape
	Color    core.RGB
}

func newBackgroundElement(field config.Field, color core.RGB, rng *rand.Rand) BackgroundElement {
	b := BackgroundElement{
		X:        float64(rng.Intn(int(field.Width) + 1)),
		Color:    color,
		Shape:    DecorShape(rng.Intn(int(decorShapeCount))),
		Rotation: float64(rng.Intn(361)),
		Spin:     4*rng.Float64() - 2,
	}
	b.respawn(field, rng)
	return b
}

func (b *BackgroundElement) respawn(field config.Field, rng *rand.Rand) {
	b.Y = float64(rng.Intn(int(field.Height) - 99))
	b.Size = float64(10 + rng.Intn(21))
	b.Speed = 0.5 + 1.5*rng.Float64()
}

// Advance drifts the element at a fraction of the scroll speed.
func (b *BackgroundElement) Advance(scroll float64, field config.Field, rng *rand.Rand) {
	b.X -= b.Speed * scroll / 5
	b.Rotation = math.Mod(b.Rotation+b.Spin+360, 360)
	if b.X+b.Size < 0 {
		b.X = field.Width + b.Size
		b.respawn(field, rng)
	}
}
