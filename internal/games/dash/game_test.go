package dash

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/progress"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, store progress.Store) *Game {
	t.Helper()
	g := New(WithConfig(config.DefaultDashConfig()), WithStore(store))
	g.Reset(testRuntime(42))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical runs
	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i < 2:
			inputs[i].Set(core.ActionConfirm) // main menu -> level select -> play
		case i%25 == 0:
			inputs[i].Set(core.ActionJump)
		}
	}

	play := func() (Snapshot, int) {
		g := New(WithConfig(config.DefaultDashConfig()), WithStore(progress.NewMemory(progress.Progress{})))
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot(), g.run.Ticks
	}

	snap1, ticks1 := play()
	snap2, ticks2 := play()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if ticks1 != ticks2 {
		t.Errorf("Determinism failed: run lengths differ. Run1=%d, Run2=%d", ticks1, ticks2)
	}
	if snap1.State == StateMainMenu.String() || snap1.State == StateLevelSelect.String() {
		t.Errorf("scripted input should have started a run, state=%s", snap1.State)
	}
}

func TestBeginnerChallengeSavesOnce(t *testing.T) {
	// High score already above 5 so only the challenge transition persists
	store := progress.NewMemory(progress.Progress{HighScores: []int{50, 0, 0}})
	g := newTestGame(t, store)
	g.StartRun(0)

	run := g.Run()
	run.Score = 4
	run.Body.BeginInvincibility(1000)
	run.Entities = append(run.Entities, newSpike(g.cfg.Field.PlayerX-40, g.cfg.Field, core.RGBRed, false))

	g.Step(core.NewInputFrame())

	if run.Score != 5 {
		t.Fatalf("score = %d, want 5", run.Score)
	}
	if !g.Tracker().Done(0) {
		t.Error("Beginner should be complete")
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", store.Saves())
	}

	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if store.Saves() != 1 {
		t.Errorf("completion should persist exactly once, Saves() = %d", store.Saves())
	}

	saved, _ := store.Load()
	if !saved.Challenges[0] || saved.HighScores[0] != 50 {
		t.Errorf("saved progress = %+v", saved)
	}
}

func TestHighScoreNeverDecreases(t *testing.T) {
	store := progress.NewMemory(progress.Progress{})
	g := newTestGame(t, store)

	g.StartRun(0)
	g.Run().Score = 7
	g.Step(core.NewInputFrame())
	if got := g.Progress().HighScores[0]; got != 7 {
		t.Fatalf("high score = %d, want 7", got)
	}

	g.StartRun(0)
	g.Run().Score = 2
	g.Step(core.NewInputFrame())
	if got := g.Progress().HighScores[0]; got != 7 {
		t.Errorf("high score dropped to %d", got)
	}
	saved, _ := store.Load()
	if saved.HighScores[0] != 7 {
		t.Errorf("persisted high score = %d", saved.HighScores[0])
	}
}

func TestLivesMonotonicUntilGameOver(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))
	g.StartRun(0)

	lives := g.Run().Lives
	var summary *core.RunSummary
	for tick := 0; tick < 20000 && summary == nil; tick++ {
		res := g.Step(core.NewInputFrame())
		run := g.Run()
		if run.Lives > lives || run.Lives < 0 {
			t.Fatalf("tick %d: lives went from %d to %d", tick, lives, run.Lives)
		}
		lives = run.Lives
		summary = res.Finished
	}

	if summary == nil {
		t.Fatal("an idle cube should eventually run out of lives")
	}
	if summary.Reason != "died" || summary.LivesLeft != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if g.Phase() != StateGameOver || !g.State().GameOver {
		t.Errorf("state = %v", g.Phase())
	}

	// Game over screen does not finish the run again
	if res := g.Step(core.NewInputFrame()); res.Finished != nil {
		t.Error("finished summary reported twice")
	}
	g.Step(frame(core.ActionConfirm))
	if g.Phase() != StateLevelSelect {
		t.Errorf("confirm on game over should go to level select, got %v", g.Phase())
	}
}

func TestStateMachine(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))

	steps := []struct {
		in   core.InputFrame
		want State
	}{
		{frame(core.ActionDown), StateMainMenu},
		{frame(core.ActionConfirm), StateChallenges},
		{frame(core.ActionBack), StateMainMenu},
		{frame(core.ActionUp), StateMainMenu},
		{frame(core.ActionJump), StateLevelSelect}, // jump confirms in menus
		{frame(core.ActionDown), StateLevelSelect},
		{frame(core.ActionConfirm), StateLevelSelect}, // second level is locked
		{frame(core.ActionUp), StateLevelSelect},
		{frame(core.ActionConfirm), StatePlaying},
		{frame(core.ActionBack), StatePaused},
		{frame(core.ActionBack), StatePlaying},
		{frame(core.ActionBack), StatePaused},
		{frame(core.ActionConfirm), StatePlaying}, // Resume
		{frame(core.ActionBack), StatePaused},
		{frame(core.ActionDown), StatePaused},
	}
	for i, s := range steps {
		g.Step(s.in)
		if g.Phase() != s.want {
			t.Fatalf("step %d: state = %v, want %v", i, g.Phase(), s.want)
		}
	}

	res := g.Step(frame(core.ActionConfirm))
	if g.Phase() != StateLevelSelect {
		t.Fatalf("forfeit should return to level select, got %v", g.Phase())
	}
	if res.Finished == nil || res.Finished.Reason != "forfeit" {
		t.Errorf("forfeit should report a finished run, got %+v", res.Finished)
	}

	g.Step(frame(core.ActionBack))
	g.Step(frame(core.ActionBack))
	if !g.State().Quit {
		t.Error("back on the main menu should quit")
	}
}

func TestPausedFreezesSimulation(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))
	g.StartRun(0)
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	g.Step(frame(core.ActionBack))
	before := g.Snapshot()
	for range 50 {
		g.Step(core.NewInputFrame())
	}
	after := g.Snapshot()
	if g.Run().Ticks != 10 || before.EntityCount != after.EntityCount || before.BodyY != after.BodyY {
		t.Error("paused game should not advance the run")
	}
}

func TestLevelUnlock(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{HighScores: []int{10, 9, 0}}))

	if !g.Unlocked(0) || !g.Unlocked(1) {
		t.Error("first two levels should be unlocked")
	}
	if g.Unlocked(2) {
		t.Error("level 3 needs 10 on level 2")
	}
	if g.Unlocked(3) || g.Unlocked(-1) {
		t.Error("out-of-range levels are never unlocked")
	}
}

func TestStartRunOutOfRangePanics(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))
	defer func() {
		if recover() == nil {
			t.Error("StartRun with a bad index should panic")
		}
	}()
	g.StartRun(len(g.cfg.Levels))
}

func TestRunResetOnLevelEntry(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))
	g.StartRun(0)
	run := g.Run()
	run.Score, run.Lives, run.SpeedMult = 9, 1, 1.3
	run.switchMode(ModeShip, g.cfg)
	for range 300 {
		g.Step(core.NewInputFrame())
	}

	g.StartRun(0)
	fresh := g.Run()
	if fresh.Score != 0 || fresh.Lives != g.cfg.Rules.Lives || fresh.SpeedMult != 1 {
		t.Errorf("run not reset: %+v", fresh)
	}
	if fresh.Body.Mode() != ModeCube || fresh.Modes.Len() != 1 {
		t.Error("runs always start as a cube")
	}
	if len(fresh.Entities) != 0 || fresh.SinceSpawn != 0 {
		t.Error("entities and spawn timer should reset")
	}
	if fresh.Interval != g.ramp.Initial(g.cfg.Levels[0]) {
		t.Errorf("interval = %v, want the level base", fresh.Interval)
	}
}

func TestHoldKeepsShipFlying(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))
	g.StartRun(1)
	g.Run().switchMode(ModeShip, g.cfg)
	start := g.Run().Body.Y()

	g.Step(frame(core.ActionJump, core.ActionHold))
	for range 20 {
		g.Step(frame(core.ActionHold))
	}
	if g.Run().Body.Y() >= start {
		t.Error("holding jump should keep the ship climbing")
	}

	g.Step(frame(core.ActionRelease))
	if g.Run().Body.(*Ship).Thrusting() {
		t.Error("release should stop thrust")
	}
}

type brokenStore struct{}

func (brokenStore) Load() (progress.Progress, error) {
	return progress.Progress{}, errors.New("corrupt")
}
func (brokenStore) Save(progress.Progress) error { return errors.New("read-only") }

func TestBrokenStoreIsNotFatal(t *testing.T) {
	g := newTestGame(t, brokenStore{})

	p := g.Progress()
	if len(p.HighScores) != 3 || len(p.Challenges) != 6 {
		t.Fatalf("progress should fall back to defaults, got %+v", p)
	}

	g.StartRun(0)
	g.Run().Score = 6
	g.Step(core.NewInputFrame())
	if g.Progress().HighScores[0] != 6 || !g.Tracker().Done(0) {
		t.Error("in-memory progress should update despite save failures")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, progress.NewMemory(progress.Progress{}))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Play") {
		t.Error("main menu should list Play")
	}

	g.StartRun(0)
	for range 200 {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	if !strings.Contains(screen.Row(0), g.cfg.Levels[0].Name) {
		t.Errorf("HUD should show the level name, got %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.Row(screen.Height()-1), '▓') {
		t.Errorf("bottom row should be ground fill, got %q", screen.Row(screen.Height()-1))
	}

	g.Step(frame(core.ActionBack))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	small := core.NewScreen(20, 8)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("small screens should show a resize hint")
	}
}
