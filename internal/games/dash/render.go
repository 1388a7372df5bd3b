package dash

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// Minimum playable terminal size.
const (
	minScreenW = 40
	minScreenH = 16
)

// HUD rows above the field.
const hudRows = 1

var decorGlyphs = [decorShapeCount]rune{'▫', '▵', '◦', '✧'}

// view maps world coordinates onto the screen buffer.
type view struct {
	dst   *core.Screen
	field config.Field
	top   int // first field row
	w, h  int // field size in cells
}

func newView(dst *core.Screen, field config.Field) *view {
	return &view{
		dst:   dst,
		field: field,
		top:   hudRows,
		w:     dst.Width(),
		h:     dst.Height() - hudRows,
	}
}

func (v *view) col(x float64) int {
	return int(math.Floor(x * float64(v.w) / v.field.Width))
}

func (v *view) row(y float64) int {
	return v.top + int(math.Floor(y*float64(v.h)/v.field.Height))
}

// cells returns the inclusive cell span covered by r. Every non-empty
// rectangle covers at least one cell.
func (v *view) cells(r core.RectF) (c0, r0, c1, r1 int) {
	c0, r0 = v.col(r.X), v.row(r.Y)
	c1, r1 = v.col(r.Right()-0.01), v.row(r.Bottom()-0.01)
	return c0, r0, max(c0, c1), max(r0, r1)
}

func (v *view) fill(r core.RectF, ch rune, fg core.Color) {
	c0, r0, c1, r1 := v.cells(r)
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			v.dst.SetColored(x, y, ch, fg)
		}
	}
}

func (v *view) point(x, y float64, ch rune, fg core.Color) {
	v.dst.SetColored(v.col(x), v.row(y), ch, fg)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Please resize terminal")
		return
	}

	switch g.state {
	case StateMainMenu:
		g.renderMenuBackdrop(dst)
		g.renderMainMenu(dst)
	case StateLevelSelect:
		g.renderMenuBackdrop(dst)
		g.renderLevelSelect(dst)
	case StateChallenges:
		g.renderMenuBackdrop(dst)
		g.renderChallenges(dst)
	case StatePlaying:
		g.renderRun(dst)
	case StatePaused:
		g.renderRun(dst)
		g.renderPause(dst)
	case StateGameOver:
		g.renderRun(dst)
		g.renderGameOver(dst)
	}

	if g.toastTicks > 0 && g.toast != "" {
		dst.DrawTextCenteredColored(dst.Height()-2, "Challenge complete: "+g.toast, core.ColorYellow)
	}
}

func (g *Game) renderMenuBackdrop(dst *core.Screen) {
	level := g.cfg.Levels[0]
	dst.FillBG(level.Background.Hex())
	v := newView(dst, g.cfg.Field)
	drawBackground(v, g.menuBG)
}

func drawBackground(v *view, bg []BackgroundElement) {
	for i := range bg {
		b := &bg[i]
		v.point(b.X, b.Y, decorGlyphs[b.Shape], b.Color.Hex())
	}
}

func (g *Game) renderRun(dst *core.Screen) {
	run := g.run
	level := g.cfg.Levels[run.Level]
	v := newView(dst, g.cfg.Field)

	dst.FillBG(level.Background.Hex())
	drawBackground(v, run.Background)

	// Ground band
	groundTop := v.row(g.cfg.Field.GroundY())
	ground := level.Ground.Hex()
	dst.DrawRectColored(core.NewRect(0, groundTop, dst.Width(), 1), '▀', ground)
	dst.DrawRectColored(core.NewRect(0, groundTop+1, dst.Width(), dst.Height()-groundTop-1), '▓', ground)

	for i := range run.Entities {
		drawEntity(v, &run.Entities[i])
	}

	if !run.Body.Flashing() {
		run.Body.draw(v)
	}

	g.renderHUD(dst, level)
}

func drawEntity(v *view, e *Entity) {
	fg := e.Color.Hex()
	switch e.Shape {
	case ShapeSpike:
		ch := '▲'
		if e.UpsideDown {
			ch = '▼'
		}
		if e.Glint {
			fg = core.RGBWhite.Hex()
		}
		v.fill(e.Bounds(), ch, fg)
	case ShapeBlock:
		v.fill(e.Bounds(), '█', fg)
	case ShapePlatform:
		v.fill(e.Bounds(), '▓', fg)
	case ShapePortal:
		v.fill(e.Bounds(), '║', fg)
		for _, p := range e.Particles {
			v.point(p.X, p.Y, '·', fg)
		}
		b := e.Bounds()
		v.point(b.X+b.W/2, b.Y+b.H/2, []rune(e.Target.Label())[0], core.RGBWhite.Hex())
	case ShapeSpeedPortal:
		ch := '›'
		switch {
		case e.Speed < 1:
			ch = '‹'
		case e.Speed > 1:
			ch = '»'
		}
		v.fill(e.Bounds(), ch, fg)
		for _, p := range e.Particles {
			v.point(p.X, p.Y, '·', fg)
		}
	case ShapeDecoration:
		v.point(e.X, e.Y, decorGlyphs[e.Decor], fg)
	}
}

func (c *Cube) draw(v *view) {
	ch := '■'
	if !c.grounded && math.Mod(math.Abs(c.rotation), 90) >= 45 {
		ch = '◆'
	}
	v.fill(c.Bounds(), ch, c.color.Hex())
}

func (s *Ship) draw(v *view) {
	b := s.Bounds()
	v.fill(b, '▬', s.color.Hex())
	nose := '►'
	switch t := s.Tilt(); {
	case t > 5:
		nose = '◥'
	case t < -5:
		nose = '◢'
	}
	v.point(b.Right()-1, b.Y+b.H/2, nose, s.color.Hex())
}

func (b *Ball) draw(v *view) {
	v.fill(b.Bounds(), '●', b.color.Hex())
}

func (u *UFO) draw(v *view) {
	b := u.Bounds()
	b.Y += u.hover
	v.fill(b, '▄', u.color.Hex())
	v.point(b.X+b.W/2, b.Y, '◓', u.color.Hex())
}

func (w *Wave) draw(v *view) {
	trail := w.color.Contrast().Hex()
	for _, p := range w.trail {
		v.point(p.X, p.Y, '·', trail)
	}
	head := '◢'
	if w.rising {
		head = '◥'
	}
	c := w.center()
	v.point(c.X, c.Y, head, w.color.Hex())
}

func (g *Game) renderHUD(dst *core.Screen, level config.Level) {
	run := g.run
	hearts := strings.Repeat("♥", run.Lives) + strings.Repeat("♡", max(g.cfg.Rules.Lives-run.Lives, 0))
	left := fmt.Sprintf(" %s  Score %d  Best %d", level.Name, run.Score, g.progress.HighScores[run.Level])
	right := fmt.Sprintf("%s  x%.1f  %s ", run.Body.Mode().Label(), run.SpeedMult, hearts)

	dst.DrawText(0, 0, left)
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorRed)
	if run.Body.Invincible() {
		dst.DrawTextColored(dst.Width()/2-2, 0, "SAFE", core.ColorCyan)
	}
}

// panel draws a centered box and returns its inner top row and left column.
func panel(dst *core.Screen, w, h int) (int, int) {
	w = min(w, dst.Width())
	h = min(h, dst.Height())
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	r := core.NewRect(x, y, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	return y + 1, x + 2
}

func drawItems(dst *core.Screen, top, left int, items []string, cursor int) {
	for i, item := range items {
		if i == cursor {
			dst.DrawTextColored(left, top+i, "> "+item, core.ColorYellow)
		} else {
			dst.DrawText(left, top+i, "  "+item)
		}
	}
}

func (g *Game) renderMainMenu(dst *core.Screen) {
	top, left := panel(dst, 34, 10)
	dst.DrawTextCenteredColored(top, "T U I   D A S H", core.ColorCyan)
	stars := fmt.Sprintf("Challenges %d/%d", g.tracker.Count(), len(g.cfg.Challenges))
	dst.DrawTextCentered(top+1, stars)
	drawItems(dst, top+3, left+6, mainMenuItems, g.mainCursor)
	dst.DrawTextCentered(top+7, "enter select  esc quit")
}

func (g *Game) renderLevelSelect(dst *core.Screen) {
	n := len(g.cfg.Levels)
	top, left := panel(dst, 52, n*2+6)
	dst.DrawTextCenteredColored(top, "SELECT LEVEL", core.ColorCyan)

	for i, lvl := range g.cfg.Levels {
		y := top + 2 + i*2
		status := fmt.Sprintf("best %d", g.progress.HighScores[i])
		fg := core.ColorDefault
		if !g.Unlocked(i) {
			status = fmt.Sprintf("locked (%d on %s)", g.cfg.Rules.UnlockScore, g.cfg.Levels[i-1].Name)
			fg = core.ColorGray
		}
		prefix := "  "
		if i == g.levelCursor {
			prefix = "> "
			if fg == core.ColorDefault {
				fg = core.ColorYellow
			}
		}
		dst.DrawTextColored(left, y, fmt.Sprintf("%s%d. %s", prefix, i+1, lvl.Name), fg)
		dst.DrawTextColored(left+4, y+1, status, core.ColorGray)
	}
	dst.DrawTextCentered(top+n*2+3, "enter play  esc back")
}

func (g *Game) renderChallenges(dst *core.Screen) {
	n := len(g.cfg.Challenges)
	top, left := panel(dst, 56, n+5)
	dst.DrawTextCenteredColored(top, "CHALLENGES", core.ColorCyan)
	for i, ch := range g.cfg.Challenges {
		mark, fg := "[ ]", core.ColorDefault
		if g.tracker.Done(i) {
			mark, fg = "[x]", core.ColorGreen
		}
		dst.DrawTextColored(left, top+2+i, fmt.Sprintf("%s %-13s %s", mark, ch.Name, ch.Description), fg)
	}
}

func (g *Game) renderPause(dst *core.Screen) {
	top, left := panel(dst, 30, 7)
	dst.DrawTextCenteredColored(top, "PAUSED", core.ColorYellow)
	drawItems(dst, top+2, left+2, pauseMenuItems, g.pauseCursor)
}

func (g *Game) renderGameOver(dst *core.Screen) {
	top, _ := panel(dst, 34, 8)
	dst.DrawTextCenteredColored(top, "GAME OVER", core.ColorRed)
	if g.last != nil {
		dst.DrawTextCentered(top+2, fmt.Sprintf("Score %d  Jumps %d", g.last.Score, g.last.Jumps))
	}
	if g.newBest {
		dst.DrawTextCenteredColored(top+3, "NEW BEST!", core.ColorGreen)
	}
	dst.DrawTextCentered(top+5, "space to continue")
}
