package dash

import "github.com/vovakirdan/tui-dash/internal/core"

// State is the top-level screen of the game.
type State int

const (
	StateMainMenu State = iota
	StateLevelSelect
	StatePlaying
	StatePaused
	StateGameOver
	StateChallenges
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateLevelSelect:
		return "level_select"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateChallenges:
		return "challenges"
	default:
		return "unknown"
	}
}

// Menu entries
var (
	mainMenuItems  = []string{"Play", "Challenges", "Quit"}
	pauseMenuItems = []string{"Resume", "Quit to level select"}
)

const (
	mainPlay = iota
	mainChallenges
	mainQuit
)

const (
	pauseResume = iota
	pauseForfeit
)

// confirmed reports a menu confirmation. Jump doubles as confirm in menus.
func confirmed(in core.InputFrame) bool {
	return in.Has(core.ActionConfirm) || in.Has(core.ActionJump)
}

// moveCursor applies up/down input to a wrapping cursor over n items.
func moveCursor(cursor, n int, in core.InputFrame) int {
	if n == 0 {
		return 0
	}
	if in.Has(core.ActionUp) {
		cursor--
	}
	if in.Has(core.ActionDown) {
		cursor++
	}
	return (cursor%n + n) % n
}

func (g *Game) stepMainMenu(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.quit = true
		return
	}
	g.mainCursor = moveCursor(g.mainCursor, len(mainMenuItems), in)
	if !confirmed(in) {
		return
	}
	switch g.mainCursor {
	case mainPlay:
		g.setState(StateLevelSelect)
	case mainChallenges:
		g.setState(StateChallenges)
	case mainQuit:
		g.quit = true
	}
}

func (g *Game) stepLevelSelect(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.setState(StateMainMenu)
		return
	}
	g.levelCursor = moveCursor(g.levelCursor, len(g.cfg.Levels), in)
	if !confirmed(in) {
		return
	}
	if !g.Unlocked(g.levelCursor) {
		g.log.Debug("level locked", "level", g.cfg.Levels[g.levelCursor].Name)
		return
	}
	g.StartRun(g.levelCursor)
}

func (g *Game) stepChallenges(in core.InputFrame) {
	if in.Has(core.ActionBack) || confirmed(in) {
		g.setState(StateMainMenu)
	}
}

func (g *Game) stepPaused(in core.InputFrame) *core.RunSummary {
	if in.Has(core.ActionBack) {
		g.setState(StatePlaying)
		return nil
	}
	g.pauseCursor = moveCursor(g.pauseCursor, len(pauseMenuItems), in)
	if !confirmed(in) {
		return nil
	}
	if g.pauseCursor == pauseResume {
		g.setState(StatePlaying)
		return nil
	}
	summary := g.finish("forfeit")
	g.setState(StateLevelSelect)
	return summary
}

func (g *Game) stepGameOver(in core.InputFrame) {
	if confirmed(in) || in.Has(core.ActionBack) {
		g.setState(StateLevelSelect)
	}
}

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	g.log.Debug("state change", "from", g.state, "to", s)
	g.state = s
	switch s {
	case StatePaused:
		g.pauseCursor = pauseResume
	case StatePlaying:
		// Ignore a hold carried over from the pause menu
		g.run.Body.Release()
	}
}
