package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "List challenges and completion",
	Long:  `Shows the challenge catalog and which challenges the progress file marks as done.`,
	Args:  cobra.NoArgs,
	RunE:  runChallenges,
}

func runChallenges(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadProgress(cfg)
	if err != nil {
		return err
	}

	done := 0
	fmt.Println("Challenges:")
	fmt.Println()
	for i, ch := range cfg.Challenges {
		mark := " "
		if p.Challenges[i] {
			mark = "x"
			done++
		}
		fmt.Printf("  [%s] %-20s  %s\n", mark, ch.Name, ch.Description)
	}

	fmt.Println()
	fmt.Printf("Completed %d of %d\n", done, len(cfg.Challenges))
	return nil
}
