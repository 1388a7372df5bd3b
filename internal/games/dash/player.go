package dash

import (
	"math"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// Body is the player avatar in one movement mode. Exactly one Body exists per
// run; a portal replaces it with a fresh Body of the target mode.
type Body interface {
	Mode() Mode

	// Press applies jump input. Hold-to-fly modes receive it every held tick.
	Press()
	// Release ends a hold. A no-op for tap modes.
	Release()
	// Advance integrates one tick at the given scroll speed.
	Advance(scroll float64)

	// Hitbox is the collision box, strictly inside Bounds.
	Hitbox() core.RectF
	// Bounds is the visual extent.
	Bounds() core.RectF

	BeginInvincibility(ticks int)
	Invincible() bool
	InvincibleTicks() int
	// Flashing reports the blink phase of the invincibility window.
	Flashing() bool

	Color() core.RGB
	Y() float64
	VelocityY() float64
	// Jumps counts jumps that took effect on this body.
	Jumps() int

	draw(v *view)
}

// NewBody constructs a body for the given mode with fresh motion state.
func NewBody(mode Mode, field config.Field, phys config.Physics, color core.RGB) Body {
	base := body{field: field, color: color, x: field.PlayerX}
	switch mode {
	case ModeShip:
		return newShip(base, phys.Ship)
	case ModeBall:
		return newBall(base, phys.Ball)
	case ModeUFO:
		return newUFO(base, phys.UFO)
	case ModeWave:
		return newWave(base, phys.Wave)
	default:
		return newCube(base, phys.Cube)
	}
}

// shield is the invincibility countdown shared by every mode.
type shield struct {
	ticks int
}

// BeginInvincibility replaces any running window.
func (s *shield) BeginInvincibility(ticks int) {
	s.ticks = max(ticks, 0)
}

func (s *shield) Invincible() bool { return s.ticks > 0 }

func (s *shield) InvincibleTicks() int { return s.ticks }

func (s *shield) Flashing() bool { return s.ticks > 0 && s.ticks%4 < 2 }

func (s *shield) tick() {
	if s.ticks > 0 {
		s.ticks--
	}
}

// body holds the state common to every mode.
type body struct {
	shield
	field config.Field
	color core.RGB
	x     float64
	y     float64 // top edge
	vy    float64
	jumps int
}

func (b *body) Color() core.RGB    { return b.color }
func (b *body) Y() float64         { return b.y }
func (b *body) VelocityY() float64 { return b.vy }
func (b *body) Jumps() int         { return b.jumps }

// clampBand keeps a body of height h inside the safe flying band and stops
// vertical motion at the edges.
func (b *body) clampBand(h float64) {
	top, bottom := b.field.SafeTop, b.field.SafeBottom-h
	if b.y < top {
		b.y, b.vy = top, 0
	} else if b.y > bottom {
		b.y, b.vy = bottom, 0
	}
}

// Cube runs along the ground and jumps only when grounded.
type Cube struct {
	body
	phys     config.CubePhysics
	grounded bool
	rotation float64 // degrees, visual only
}

func newCube(b body, phys config.CubePhysics) *Cube {
	b.y = b.field.GroundY() - phys.Size
	return &Cube{body: b, phys: phys, grounded: true}
}

func (c *Cube) Mode() Mode { return ModeCube }

func (c *Cube) Press() {
	if !c.grounded {
		return
	}
	c.vy = c.phys.JumpVelocity
	c.grounded = false
	c.jumps++
}

func (c *Cube) Release() {}

func (c *Cube) Advance(float64) {
	c.vy += c.phys.Gravity
	c.y += c.vy

	floor := c.field.GroundY() - c.phys.Size
	if c.y >= floor {
		c.y = floor
		c.vy = 0
		c.grounded = true
		c.rotation = 0
	} else {
		c.grounded = false
		c.rotation = math.Mod(c.rotation+c.phys.SpinPerTick+360, 360)
	}
	c.tick()
}

func (c *Cube) Bounds() core.RectF {
	return core.RectF{X: c.x, Y: c.y, W: c.phys.Size, H: c.phys.Size}
}

func (c *Cube) Hitbox() core.RectF {
	return c.Bounds().Inset(c.phys.HitboxInset, c.phys.HitboxInset)
}

// Grounded reports whether the cube is resting on the ground.
func (c *Cube) Grounded() bool { return c.grounded }

// Rotation returns the visual spin angle in degrees.
func (c *Cube) Rotation() float64 { return c.rotation }

// Ship flies while input is held: thrust on top of a light gravity.
type Ship struct {
	body
	phys      config.ShipPhysics
	thrusting bool
}

func newShip(b body, phys config.ShipPhysics) *Ship {
	b.y = b.field.Height/2 - phys.Height/2
	return &Ship{body: b, phys: phys}
}

func (s *Ship) Mode() Mode { return ModeShip }

func (s *Ship) Press() { s.thrusting = true }

func (s *Ship) Release() { s.thrusting = false }

func (s *Ship) Advance(float64) {
	if s.thrusting {
		s.vy -= s.phys.Thrust
	}
	s.vy += s.phys.Gravity
	s.vy = core.ClampF(s.vy, -s.phys.MaxSpeed, s.phys.MaxSpeed)
	s.y += s.vy
	s.clampBand(s.phys.Height)
	s.tick()
}

func (s *Ship) Bounds() core.RectF {
	return core.RectF{X: s.x, Y: s.y, W: s.phys.Width, H: s.phys.Height}
}

func (s *Ship) Hitbox() core.RectF {
	return s.Bounds().Inset(s.phys.HitboxInsetX, s.phys.HitboxInsetY)
}

// Thrusting reports whether input is currently held.
func (s *Ship) Thrusting() bool { return s.thrusting }

// Tilt returns the visual nose angle, proportional to vertical velocity.
func (s *Ship) Tilt() float64 { return s.phys.TiltFactor * s.vy }

// Ball rolls on the floor or the ceiling and flips gravity on each jump
// taken while touching a surface.
type Ball struct {
	body
	phys       config.BallPhysics
	gravityDir float64 // +1 pulls to the floor, -1 to the ceiling
	onSurface  bool
	spin       float64
}

func newBall(b body, phys config.BallPhysics) *Ball {
	b.y = b.field.GroundY() - 2*phys.Radius
	return &Ball{body: b, phys: phys, gravityDir: 1, onSurface: true}
}

func (b *Ball) Mode() Mode { return ModeBall }

func (b *Ball) Press() {
	if !b.onSurface {
		return
	}
	b.gravityDir = -b.gravityDir
	b.vy = b.gravityDir * b.phys.LaunchSpeed
	b.onSurface = false
	b.jumps++
}

func (b *Ball) Release() {}

func (b *Ball) Advance(scroll float64) {
	b.vy += b.gravityDir * b.phys.Gravity
	b.vy = core.ClampF(b.vy, -b.phys.MaxSpeed, b.phys.MaxSpeed)
	b.y += b.vy

	floor := b.field.GroundY() - 2*b.phys.Radius
	ceiling := 0.0
	switch {
	case b.y >= floor:
		b.y, b.vy = floor, 0
		b.onSurface = b.gravityDir > 0
	case b.y <= ceiling:
		b.y, b.vy = ceiling, 0
		b.onSurface = b.gravityDir < 0
	default:
		b.onSurface = false
	}

	b.spin = math.Mod(b.spin+scroll*b.phys.SpinFactor, 360)
	b.tick()
}

func (b *Ball) Bounds() core.RectF {
	d := 2 * b.phys.Radius
	return core.RectF{X: b.x, Y: b.y, W: d, H: d}
}

func (b *Ball) Hitbox() core.RectF {
	return b.Bounds().Inset(b.phys.HitboxInset, b.phys.HitboxInset)
}

// OnCeiling reports whether gravity currently pulls toward the ceiling.
func (b *Ball) OnCeiling() bool { return b.gravityDir < 0 }

// Touching reports whether the ball rests on its target surface.
func (b *Ball) Touching() bool { return b.onSurface }

// UFO gets a fixed upward impulse per tap and falls under gravity.
type UFO struct {
	body
	phys     config.UFOPhysics
	hover    float64 // visual bob offset
	hoverDir float64
}

func newUFO(b body, phys config.UFOPhysics) *UFO {
	b.y = b.field.Height/2 - phys.Height/2
	return &UFO{body: b, phys: phys, hoverDir: 1}
}

func (u *UFO) Mode() Mode { return ModeUFO }

func (u *UFO) Press() {
	u.vy = u.phys.Impulse
	u.jumps++
}

func (u *UFO) Release() {}

func (u *UFO) Advance(float64) {
	u.vy += u.phys.Gravity
	u.vy = core.ClampF(u.vy, -u.phys.MaxRise, u.phys.MaxFall)
	u.y += u.vy
	u.clampBand(u.phys.Height)

	u.hover += u.phys.HoverStep * u.hoverDir
	if math.Abs(u.hover) > u.phys.HoverAmplitude {
		u.hoverDir = -u.hoverDir
	}
	u.tick()
}

func (u *UFO) Bounds() core.RectF {
	return core.RectF{X: u.x, Y: u.y, W: u.phys.Width, H: u.phys.Height}
}

// Hitbox ignores the hover offset; the bob is purely cosmetic.
func (u *UFO) Hitbox() core.RectF {
	return core.RectF{
		X: u.x + u.phys.HitboxInsetX,
		Y: u.y + u.phys.HitboxInsetTop,
		W: u.phys.Width - 2*u.phys.HitboxInsetX,
		H: u.phys.Height - u.phys.HitboxInsetTop - u.phys.HitboxInsetBottom,
	}
}

// Hover returns the visual bob offset.
func (u *UFO) Hover() float64 { return u.hover }

// TrailPoint is one remembered wave position.
type TrailPoint struct {
	X, Y float64
}

// Wave moves diagonally up while held and down otherwise, with no gravity.
type Wave struct {
	body
	phys   config.WavePhysics
	rising bool
	trail  []TrailPoint // oldest first
}

func newWave(b body, phys config.WavePhysics) *Wave {
	b.y = b.field.Height/2 - phys.Height/2
	return &Wave{body: b, phys: phys, trail: make([]TrailPoint, 0, phys.TrailLength)}
}

func (w *Wave) Mode() Mode { return ModeWave }

func (w *Wave) Press() { w.rising = true }

func (w *Wave) Release() { w.rising = false }

func (w *Wave) Advance(float64) {
	if w.rising {
		w.vy = -w.phys.Speed
	} else {
		w.vy = w.phys.Speed
	}
	w.y += w.vy
	w.clampBand(w.phys.Height)

	c := w.center()
	if len(w.trail) >= w.phys.TrailLength && len(w.trail) > 0 {
		copy(w.trail, w.trail[1:])
		w.trail = w.trail[:len(w.trail)-1]
	}
	if w.phys.TrailLength > 0 {
		w.trail = append(w.trail, TrailPoint{X: c.X, Y: c.Y})
	}
	w.tick()
}

func (w *Wave) center() TrailPoint {
	return TrailPoint{X: w.x + w.phys.Width/2, Y: w.y + w.phys.Height/2}
}

func (w *Wave) Bounds() core.RectF {
	return core.RectF{X: w.x, Y: w.y, W: w.phys.Width, H: w.phys.Height}
}

// Hitbox is a small square at the center of the arrow.
func (w *Wave) Hitbox() core.RectF {
	c := w.center()
	half := w.phys.HitboxSize / 2
	return core.RectF{X: c.X - half, Y: c.Y - half, W: w.phys.HitboxSize, H: w.phys.HitboxSize}
}

// Trail returns the remembered positions, oldest first.
func (w *Wave) Trail() []TrailPoint { return w.trail }

// Rising reports whether input is currently held.
func (w *Wave) Rising() bool { return w.rising }
