// t2048 is the 2048 sliding-tile puzzle for the terminal, SSH and HTTP.
//
// Usage:
//
//	t2048 list              - List available game modes
//	t2048 play [mode]       - Play a mode (default: 2048)
//	t2048 menu              - Start menu to pick a mode interactively
//	t2048 serve             - Start SSH server for remote play
//	t2048 http              - Start the JSON HTTP API
//	t2048 scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Path to a rules YAML file
//	--difficulty <preset> - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle. Slide the board in one of four
directions; equal tiles merge and a new tile appears after every move.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  http     - Start the JSON HTTP API
  scores   - View high scores

Examples:
  t2048 play
  t2048 play 2048_endless --difficulty hard
  t2048 menu
  t2048 serve --ssh :2222
  t2048 http --addr :8048
  t2048 scores 2048`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadRules resolves --config and --difficulty into engine rules,
// exiting on error.
func loadRules() core.Rules {
	rules, err := config.LoadRules(flagConfig, config.DifficultyPreset(flagDifficulty))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return rules
}
