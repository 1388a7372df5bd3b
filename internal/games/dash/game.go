// Package dash implements a side-scrolling rhythm platformer: an avatar runs
// through a generated obstacle course in one of five movement modes while the
// player times jumps and holds.
//
// The simulation works in world units on a fixed field (800x500 by default).
// Render scales the field to whatever terminal size the platform provides.
package dash

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/progress"
	"github.com/vovakirdan/tui-dash/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "dash"

// Ticks a "challenge complete" banner stays on screen.
const toastTicks = 180

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Empty and unknown names
// keep the configured difficulty.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	if p, ok := config.ParsePreset(preset); ok {
		difficultyPreset = p
	}
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration at Reset.
func WithConfig(cfg config.DashConfig) Option {
	return func(g *Game) {
		g.fixedCfg = &cfg
	}
}

// WithStore sets the progress collaborator.
func WithStore(s progress.Store) Option {
	return func(g *Game) {
		g.store = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// Game implements the dash game logic.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.DashConfig
	fixedCfg *config.DashConfig
	ramp     *config.SpawnRamp

	log   *log.Logger
	store progress.Store

	rng      *rand.Rand
	gen      *Generator
	resolver *Resolver
	tracker  *Tracker
	progress progress.Progress

	state       State
	mainCursor  int
	levelCursor int
	pauseCursor int
	quit        bool
	tickCount   int

	run     *RunState
	menuBG  []BackgroundElement
	last    *core.RunSummary // most recent finished run
	newBest bool             // current run beat the stored high score

	toast      string
	toastTicks int
}

// New creates a new game instance. Call Reset before stepping.
func New(opts ...Option) *Game {
	env := registry.Env{}.WithDefaults()
	g := &Game{log: env.Logger, store: env.Progress}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dash"
}

// Reset loads configuration and progress and returns to the main menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.fixedCfg != nil {
		g.cfg = *g.fixedCfg
	} else {
		cfg, err := config.LoadDash(configPath)
		if err != nil {
			g.log.Warn("config load failed, using defaults", "err", err)
			cfg = config.DefaultDashConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	g.ramp = config.NewSpawnRamp(g.cfg.Rules, g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.gen = NewGenerator(g.rng, g.cfg.Field, g.cfg.Rules)
	g.resolver = NewResolver(g.cfg, g.rng)

	p, err := g.store.Load()
	if err != nil {
		g.log.Warn("progress load failed, starting fresh", "err", err)
		p = progress.Progress{}
	}
	g.progress = p.Normalize(len(g.cfg.Levels), len(g.cfg.Challenges))
	g.tracker = NewTracker(g.cfg.Challenges, g.progress.Challenges)

	g.state = StateMainMenu
	g.mainCursor, g.levelCursor, g.pauseCursor = 0, 0, 0
	g.quit = false
	g.tickCount = 0
	g.run = nil
	g.last = nil
	g.newBest = false
	g.toast, g.toastTicks = "", 0
	g.menuBG = newBackground(g.cfg.Levels[0], g.cfg.Field, g.rng)
}

// StartRun enters level idx with a fresh run. idx must be a valid level index.
func (g *Game) StartRun(idx int) {
	if idx < 0 || idx >= len(g.cfg.Levels) {
		panic(fmt.Sprintf("dash: level index %d out of range [0, %d)", idx, len(g.cfg.Levels)))
	}
	g.run = newRun(idx, g.cfg, g.ramp, g.rng)
	g.newBest = false
	g.last = nil
	g.log.Info("run started", "level", g.cfg.Levels[idx].Name, "interval", g.run.Interval, "floor", g.ramp.Floor())
	g.setState(StatePlaying)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tickCount++
	if g.toastTicks > 0 {
		g.toastTicks--
	}

	var finished *core.RunSummary
	switch g.state {
	case StateMainMenu:
		g.driftMenu()
		g.stepMainMenu(in)
	case StateLevelSelect:
		g.driftMenu()
		g.stepLevelSelect(in)
	case StateChallenges:
		g.driftMenu()
		g.stepChallenges(in)
	case StatePlaying:
		finished = g.stepPlaying(in)
	case StatePaused:
		finished = g.stepPaused(in)
	case StateGameOver:
		g.stepGameOver(in)
	}

	return core.StepResult{State: g.State(), Finished: finished}
}

// driftMenu keeps the menu backdrop moving.
func (g *Game) driftMenu() {
	for i := range g.menuBG {
		g.menuBG[i].Advance(1, g.cfg.Field, g.rng)
	}
}

func (g *Game) stepPlaying(in core.InputFrame) *core.RunSummary {
	if in.Has(core.ActionBack) {
		g.setState(StatePaused)
		return nil
	}

	run := g.run
	level := g.cfg.Levels[run.Level]

	body := run.Body
	if in.Has(core.ActionJump) || (body.Mode().HoldToFly() && in.Has(core.ActionHold)) {
		body.Press()
	}
	if in.Has(core.ActionRelease) {
		body.Release()
	}

	scroll := run.Scroll(level)
	body.Advance(scroll)
	for i := range run.Background {
		run.Background[i].Advance(scroll, g.cfg.Field, g.rng)
	}

	g.spawn(run, level, scroll, in.Elapsed)

	out := g.resolver.Resolve(run, scroll)
	run.Ticks++
	for _, m := range out.Switched {
		g.log.Debug("mode switch", "mode", m, "tick", run.Ticks)
	}
	if out.SpeedChange {
		g.log.Debug("speed change", "mult", run.SpeedMult, "tick", run.Ticks)
	}
	if out.Damaged {
		g.log.Debug("hit", "lives", run.Lives, "tick", run.Ticks)
	}

	g.record(run)

	if out.GameOver {
		summary := g.finish("died")
		g.setState(StateGameOver)
		return summary
	}
	return nil
}

// spawn runs the cluster timer. A new cluster is placed at the right field
// edge once the interval has elapsed and the previous cluster has fully
// scrolled into view.
func (g *Game) spawn(run *RunState, level config.Level, scroll float64, elapsed time.Duration) {
	if elapsed <= 0 {
		elapsed = g.runtime.TickDuration()
	}
	run.SinceSpawn += elapsed
	run.Tail -= scroll

	if !g.ramp.Due(run.SinceSpawn, run.Interval, run.SpeedMult) || run.Tail > g.cfg.Field.Width {
		return
	}
	anchor := g.cfg.Field.Width
	c := g.gen.Generate(level, anchor)
	run.addCluster(c, anchor)
	run.SinceSpawn = 0
	run.Interval = g.ramp.Next(run.Interval)
	g.log.Debug("cluster spawned", "pattern", c.Pattern, "entities", len(c.Entities), "next", run.Interval)
}

// record updates the high score and challenges and persists at most once.
func (g *Game) record(run *RunState) {
	dirty := false
	if run.Score > g.progress.HighScores[run.Level] {
		g.progress.HighScores[run.Level] = run.Score
		g.newBest = true
		dirty = true
	}

	completed := g.tracker.Evaluate(g.stats())
	if len(completed) > 0 {
		g.progress.Challenges = g.tracker.Flags()
		dirty = true
		for _, id := range completed {
			g.log.Info("challenge completed", "id", id)
		}
		g.toast = g.challengeName(completed[len(completed)-1])
		g.toastTicks = toastTicks
	}

	if dirty {
		g.save()
	}
}

func (g *Game) save() {
	if err := g.store.Save(g.progress.Clone()); err != nil {
		g.log.Warn("progress save failed", "err", err)
	}
}

func (g *Game) stats() Stats {
	s := Stats{HighScores: g.progress.HighScores}
	if g.run != nil {
		s.Score = g.run.Score
		s.Jumps = g.run.Jumps()
		s.Modes = g.run.Modes
	}
	return s
}

func (g *Game) challengeName(id string) string {
	for _, ch := range g.cfg.Challenges {
		if ch.ID == id {
			return ch.Name
		}
	}
	return id
}

// finish builds the summary of the current run.
func (g *Game) finish(reason string) *core.RunSummary {
	run := g.run
	s := &core.RunSummary{
		Level:     run.Level,
		LevelName: g.cfg.Levels[run.Level].Name,
		Score:     run.Score,
		Jumps:     run.Jumps(),
		ModesUsed: run.Modes.Len(),
		LivesLeft: run.Lives,
		Ticks:     run.Ticks,
		Reason:    reason,
	}
	g.last = s
	g.log.Info("run finished", "level", s.LevelName, "score", s.Score, "reason", reason, "ticks", s.Ticks)
	return s
}

// Unlocked reports whether level idx can be entered.
func (g *Game) Unlocked(idx int) bool {
	return LevelUnlocked(g.progress, g.cfg.Rules.UnlockScore, idx)
}

// LevelUnlocked reports whether level idx is open given saved progress. The
// first level is always open; every other one needs unlockScore on the
// level before it.
func LevelUnlocked(p progress.Progress, unlockScore, idx int) bool {
	if idx <= 0 {
		return idx == 0
	}
	if idx >= len(p.HighScores) {
		return false
	}
	return p.HighScores[idx-1] >= unlockScore
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	gs := core.GameState{
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
		Quit:     g.quit,
	}
	if g.run != nil {
		gs.Score = g.run.Score
	}
	return gs
}

// Phase returns the current top-level state.
func (g *Game) Phase() State {
	return g.state
}

// Run returns the active run, or nil outside of a run.
func (g *Game) Run() *RunState {
	return g.run
}

// Progress returns a copy of the persisted progress.
func (g *Game) Progress() progress.Progress {
	return g.progress.Clone()
}

// Config returns the active configuration.
func (g *Game) Config() config.DashConfig {
	return g.cfg
}

// Tracker returns the challenge tracker.
func (g *Game) Tracker() *Tracker {
	return g.tracker
}

// Register the game with the registry
func init() {
	registry.Register(ID, func(env registry.Env) registry.Game {
		env = env.WithDefaults()
		return New(WithLogger(env.Logger), WithStore(env.Progress))
	})
}
