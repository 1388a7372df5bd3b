package dash

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// Cluster geometry in world units.
const (
	sectionLead     = 150 // gap between an entry portal and the first obstacle
	sectionExit     = 200 // gap between the section end and the exit portal
	speedPortalLead = 150 // speed portals sit this far ahead of the cluster
	decorSpread     = 300
)

// Cluster is one generated batch of entities.
type Cluster struct {
	Pattern  string
	Entities []Entity
}

// Tail returns the largest right edge among interactive entities, or anchor
// when the cluster has none.
func (c Cluster) Tail(anchor float64) float64 {
	tail := anchor
	for i := range c.Entities {
		if c.Entities[i].Interactive() {
			tail = max(tail, c.Entities[i].Right())
		}
	}
	return tail
}

// patternContext carries the per-call draws every builder needs.
type patternContext struct {
	level    config.Level
	x        float64
	obstacle core.RGB
	ground   core.RGB
}

type patternFunc func(g *Generator, pc patternContext) []Entity

var patternBuilders = map[string]patternFunc{
	"basic_spike_row": (*Generator).basicSpikeRow,
	"basic_block":     (*Generator).basicBlock,
	"double_spike":    (*Generator).doubleSpike,
	"platform_jump":   (*Generator).platformJump,
	"ship_tunnel":     (*Generator).shipTunnel,
	"ship_columns":    (*Generator).shipColumns,
	"ball_platforms":  (*Generator).ballPlatforms,
	"ufo_pillars":     (*Generator).ufoPillars,
	"wave_corridor":   (*Generator).waveCorridor,
}

// Generator synthesizes obstacle clusters from a level's pattern list.
type Generator struct {
	rng   *rand.Rand
	field config.Field
	rules config.Rules
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand, field config.Field, rules config.Rules) *Generator {
	return &Generator{rng: rng, field: field, rules: rules}
}

// Candidates returns the level's patterns whose required mode the level
// allows, in configuration order.
func (g *Generator) Candidates(level config.Level) []string {
	out := make([]string, 0, len(level.Patterns))
	for _, p := range level.Patterns {
		mode, ok := config.PatternModes[p]
		if !ok || patternBuilders[p] == nil {
			continue
		}
		if level.Allows(mode) {
			out = append(out, p)
		}
	}
	return out
}

// Generate builds one cluster anchored at x.
func (g *Generator) Generate(level config.Level, x float64) Cluster {
	candidates := g.Candidates(level)
	var cluster Cluster

	pc := patternContext{
		level:    level,
		x:        x,
		obstacle: g.pickColor(level.ObstacleColors),
		ground:   level.Ground.RGB,
	}
	decor := g.pickColor(level.DecorationColors)

	if len(candidates) > 0 {
		cluster.Pattern = candidates[g.rng.Intn(len(candidates))]
		cluster.Entities = patternBuilders[cluster.Pattern](g, pc)
	}

	for range g.intRange(3, 8) {
		dx := float64(g.intRange(0, decorSpread))
		dy := float64(g.intRange(50, int(g.field.Height)-100))
		cluster.Entities = append(cluster.Entities, newDecoration(x+dx, dy, decor, g.rng))
	}

	if level.SpeedChanges && len(g.rules.SpeedPortalOptions) > 0 && g.rng.Float64() < g.rules.SpeedPortalChance {
		mult := g.rules.SpeedPortalOptions[g.rng.Intn(len(g.rules.SpeedPortalOptions))]
		cluster.Entities = append(cluster.Entities, newSpeedPortal(x-speedPortalLead, g.field, mult))
	}

	sort.SliceStable(cluster.Entities, func(i, j int) bool {
		return cluster.Entities[i].X < cluster.Entities[j].X
	})
	return cluster
}

func (g *Generator) pickColor(colors []config.Color) core.RGB {
	if len(colors) == 0 {
		return core.RGBWhite
	}
	return colors[g.rng.Intn(len(colors))].RGB
}

// intRange returns a uniform int in [lo, hi]. An empty range yields lo.
func (g *Generator) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) basicSpikeRow(pc patternContext) []Entity {
	count := g.intRange(1, 2)
	out := make([]Entity, 0, count)
	for i := range count {
		out = append(out, newSpike(pc.x+float64(i)*40, g.field, pc.obstacle, false))
	}
	return out
}

func (g *Generator) basicBlock(pc patternContext) []Entity {
	h := float64(g.intRange(30, 60))
	return []Entity{newBlock(pc.x, h, g.field, pc.obstacle)}
}

func (g *Generator) doubleSpike(pc patternContext) []Entity {
	out := []Entity{newSpike(pc.x, g.field, pc.obstacle, false)}
	if g.rng.Float64() > 0.5 {
		out = append(out, newSpike(pc.x, g.field, pc.obstacle, true))
	}
	return out
}

func (g *Generator) platformJump(pc patternContext) []Entity {
	w := float64(g.intRange(80, 150))
	h := float64(g.intRange(30, 50))
	y := g.field.GroundY() - h - float64(g.intRange(30, 60))
	return []Entity{
		newPlatform(pc.x, y, w, h, pc.ground),
		newSpike(pc.x+w+70, g.field, pc.obstacle, false),
	}
}

// gapRange returns the top of a vertical opening of height gap.
func (g *Generator) gapRange(gap, lo, bottomMargin int) float64 {
	return float64(g.intRange(lo, int(g.field.Height)-bottomMargin-gap))
}

// slabs returns a top and bottom slab of width w leaving an opening of height
// gap starting at gapY.
func (g *Generator) slabs(x, w, gapY, gap float64, shape Shape, color core.RGB) []Entity {
	bottomY := gapY + gap
	top, bottom := newPlatform(x, 0, w, gapY, color), newPlatform(x, bottomY, w, g.field.GroundY()-bottomY, color)
	if shape == ShapeBlock {
		top.Shape, top.Inset = ShapeBlock, blockInset
		bottom.Shape, bottom.Inset = ShapeBlock, blockInset
	}
	return []Entity{top, bottom}
}

func (g *Generator) shipTunnel(pc patternContext) []Entity {
	length := float64(g.intRange(300, 500))
	gap := g.intRange(150, 200)
	gapY := g.gapRange(gap, 100, 200)

	out := []Entity{newPortal(pc.x, g.field, ModeShip)}
	out = append(out, g.slabs(pc.x+sectionLead, length, gapY, float64(gap), ShapePlatform, pc.ground)...)
	return append(out, newPortal(pc.x+length+sectionExit, g.field, ModeCube))
}

func (g *Generator) shipColumns(pc patternContext) []Entity {
	section := float64(g.intRange(400, 600))
	count := g.intRange(2, 4)
	spacing := section / float64(count)

	out := []Entity{newPortal(pc.x, g.field, ModeShip)}
	for i := range count {
		gap := g.intRange(120, 160)
		gapY := g.gapRange(gap, 100, 200)
		cx := pc.x + sectionLead + float64(i)*spacing
		out = append(out, g.slabs(cx, blockWidth, gapY, float64(gap), ShapeBlock, pc.obstacle)...)
	}
	return append(out, newPortal(pc.x+section+sectionExit, g.field, ModeCube))
}

func (g *Generator) ballPlatforms(pc patternContext) []Entity {
	section := float64(g.intRange(400, 600))
	count := g.intRange(3, 5)
	spacing := section / float64(count)

	out := []Entity{newPortal(pc.x, g.field, ModeBall)}
	for i := range count {
		px := pc.x + sectionLead + float64(i)*spacing
		w := float64(g.intRange(70, 120))
		h := float64(g.intRange(30, 50))
		if i%2 == 0 {
			out = append(out, newPlatform(px, g.field.GroundY()-h, w, h, pc.ground))
		} else {
			out = append(out, newPlatform(px, 0, w, h, pc.ground))
		}
	}
	return append(out, newPortal(pc.x+section+sectionExit, g.field, ModeCube))
}

func (g *Generator) ufoPillars(pc patternContext) []Entity {
	section := float64(g.intRange(400, 600))
	count := g.intRange(3, 5)
	spacing := section / float64(count)

	out := []Entity{newPortal(pc.x, g.field, ModeUFO)}
	for i := range count {
		gap := g.intRange(120, 160)
		gapY := g.gapRange(gap, 100, 200)
		px := pc.x + sectionLead + float64(i)*spacing
		out = append(out, g.slabs(px, 30, gapY, float64(gap), ShapePlatform, pc.obstacle)...)
	}
	return append(out, newPortal(pc.x+section+sectionExit, g.field, ModeCube))
}

func (g *Generator) waveCorridor(pc patternContext) []Entity {
	section := float64(g.intRange(400, 600))
	width := g.intRange(100, 140)
	segments := g.intRange(3, 6)
	segLen := section / float64(segments)

	out := []Entity{newPortal(pc.x, g.field, ModeWave)}
	for i := range segments {
		var gapY float64
		if i%2 == 0 {
			gapY = g.gapRange(width, 100, 250)
		} else {
			gapY = g.gapRange(width, 150, 200)
		}
		sx := pc.x + sectionLead + float64(i)*segLen
		out = append(out, g.slabs(sx, segLen, gapY, float64(width), ShapePlatform, pc.obstacle)...)
	}
	return append(out, newPortal(pc.x+section+sectionExit, g.field, ModeCube))
}
