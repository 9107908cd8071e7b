package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a simulation picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a simulation, left/right to change the
difficulty and Enter to start. After a run ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Difficulty
  Tab          - Best race times
  Enter/Space  - Start
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./arcade.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagSlot, "slot", "default", "Adventure save slot")
	menuCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the adventure from the save slot")
}

func runMenu(_ *cobra.Command, _ []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("menu needs a terminal")
	}

	difficulty := config.DifficultyMedium
	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		difficulty = d
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}

		choice, err := tui.RunMenu(difficulty, width)
		if err != nil {
			return err
		}
		difficulty = choice.Difficulty
		if choice.Quit {
			return nil
		}

		if choice.WantsScoreboard {
			store := openStore(quietLogger())
			var source tui.ResultSource
			if store != nil {
				source = store
			}
			goBack, err := tui.RunScoreboard(source, width, height)
			if store != nil {
				store.Close()
			}
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		flagDifficulty = string(difficulty)
		rc, err := runtimeConfig()
		if err != nil {
			return err
		}
		if _, err := playSession(ctx, choice.GameID, rc); err != nil {
			logger.Error("run failed", "game", choice.GameID, "err", err)
		}
	}
	return nil
}
