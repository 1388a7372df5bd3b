package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dash/internal/core"
)

type styleKey struct {
	fg, bg core.Color
}

// Painter converts Screen buffers to styled strings. Each SSH session gets its
// own painter bound to the session's renderer so color detection follows the
// remote terminal.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[styleKey]lipgloss.Style
}

// NewPainter creates a painter. A nil renderer uses lipgloss's default.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[styleKey]lipgloss.Style),
	}
}

// style returns the cached style for a color pair. Colors are ANSI codes or
// "#rrggbb" hex, both of which lipgloss.Color accepts.
func (p *Painter) style(fg, bg core.Color) lipgloss.Style {
	k := styleKey{fg, bg}
	if s, ok := p.styles[k]; ok {
		return s
	}
	s := p.renderer.NewStyle()
	if fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(bg))
	}
	p.styles[k] = s
	return s
}

// Paint renders the screen. Groups adjacent cells with the same colors to
// minimize ANSI escape sequences.
func (p *Painter) Paint(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.FG == core.ColorDefault && start.BG == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
