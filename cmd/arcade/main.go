// arcade runs the kart racer and the top-down adventure simulations.
//
// Usage:
//
//	arcade list                  - List available simulations
//	arcade play <game>           - Play in the terminal
//	arcade menu                  - Pick a simulation interactively
//	arcade run <game>            - Run headless with scripted input
//	arcade verify <game>         - Check that seeded runs are deterministic
//	arcade results               - Show recorded race results
//	arcade save                  - Manage adventure save slots
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.arcade/arcade.db)
//	--config <path>       - Custom tuning YAML for the chosen simulation
//	--difficulty <name>   - easy, medium or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/games/dungeon"
	"github.com/vovakirdan/arcade-sim/internal/games/kart"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Sim - kart racing and adventure simulations in your terminal",
	Long: `Arcade Sim runs two real-time simulations on one fixed-tick engine:
a kart racer with AI opponents and a top-down adventure with rooms,
puzzles and combat.

Available commands:
  list     - Show all available simulations
  play     - Play a simulation in the terminal
  menu     - Interactive picker
  run      - Headless run with scripted input
  verify   - Determinism check across parallel runs
  results  - Race results
  save     - Adventure save slots

Examples:
  arcade list
  arcade play kart --difficulty hard
  arcade play dungeon --continue
  arcade run kart --ticks 7200 --hold accelerate
  arcade verify dungeon --runs 4 --seed 7`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to the results and saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom tuning YAML for the chosen simulation")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(saveCmd)
}

func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return nil
}

// quietLogger keeps the terminal clean while a TUI owns it.
func quietLogger() *log.Logger {
	if flagLogFile != "" {
		return logger
	}
	return log.New(io.Discard)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// runtimeConfig builds the validated runtime settings from the global flags.
// A zero seed is replaced once so every run of one command shares it.
func runtimeConfig() (core.RuntimeConfig, error) {
	rc := core.RuntimeConfig{
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: flagDifficulty,
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc, config.ValidateRuntime(rc)
}

// createGame applies the --config path and builds a simulation.
func createGame(id string, l *log.Logger, o entity.Observer) (registry.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown game %q, run 'arcade list' to see available games", id)
	}
	switch id {
	case kart.GameID:
		kart.SetConfigPath(flagConfig)
	case dungeon.GameID:
		dungeon.SetConfigPath(flagConfig)
	}
	return registry.Create(id, registry.WithLogger(l), registry.WithObserver(o))
}

// openStore opens the database; failures are logged and play continues without it.
func openStore(l *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		l.Warn("could not open database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
