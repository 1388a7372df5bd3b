// dash is a terminal rhythm platformer: run, jump and fly through generated
// obstacle courses in five movement modes.
//
// Usage:
//
//	dash                     - Play (same as dash play)
//	dash play                - Play in this terminal
//	dash levels              - List levels, unlock state and best scores
//	dash challenges          - List challenges and completion
//	dash scores <level>      - Show the run history of a level
//	dash board               - Interactive run history browser
//	dash serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Run history database (default: ~/.dash/dash.db)
//	--save <path>        - Progress file (default: ~/.dash/progress.json)
//	--config <path>      - Custom level/challenge config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-file <path>    - Write logs to a file
//	--hold-ms <ms>       - Jump hold release window
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/games/dash"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagSavePath   string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagHoldMS     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Dash - a rhythm platformer in your terminal",
	Long: `Dash is a side-scrolling rhythm platformer for the terminal.

Run through generated obstacle courses as a cube, and switch to ship, ball,
UFO and wave through portals. Score 10 on a level to unlock the next one.

Available commands:
  play        - Play in this terminal (default)
  levels      - List levels and best scores
  challenges  - List challenges
  scores      - Show run history for a level
  board       - Browse run history interactively
  serve       - Start SSH server for remote play

Examples:
  dash
  dash play --difficulty hard
  dash scores 2
  dash serve --ssh :2222`,
	PersistentPreRunE: setup,
	RunE:              runPlay,
	SilenceUsage:      true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.dash/dash.db", "Path to run history database")
	pf.StringVar(&flagSavePath, "save", "~/.dash/progress.json", "Path to progress save file")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	pf.IntVar(&flagHoldMS, "hold-ms", 400, "Milliseconds without key repeat before a held jump counts as released")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates global flags and hands config choices to the game.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	dash.SetConfigPath(flagConfig)
	dash.SetDifficultyPreset(flagDifficulty)
	return nil
}

// loadConfig loads the catalogs the same way the game does.
func loadConfig() (config.DashConfig, error) {
	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return config.DashConfig{}, err
	}
	if flagDifficulty != "" {
		p, _ := config.ParsePreset(flagDifficulty)
		config.ApplyPreset(&cfg, p)
	}
	return cfg, nil
}
