package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/games/dungeon"
	"github.com/vovakirdan/arcade-sim/internal/games/kart"
	"github.com/vovakirdan/arcade-sim/internal/platform/tui"
	"github.com/vovakirdan/arcade-sim/internal/profile"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/storage"
	"github.com/vovakirdan/arcade-sim/internal/telemetry"
)

var (
	flagMetricsAddr string
	flagSlot        string
	flagContinue    bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a simulation in the terminal",
	Long: `Start playing the specified simulation.

Controls:
  Arrows/WASD  - Move (adventure) / throttle, brake and steer (racer)
  Space        - Sword, hold to charge a spin (adventure) / drift (racer)
  E            - Use item
  F            - Lift, throw, open, read
  C            - Shield
  V            - Dash (needs boots)
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save the adventure
  Q/Ctrl+C     - Quit

Finished races are recorded in the database. The adventure saves to a
slot on Ctrl+S; --continue resumes that slot.

Examples:
  arcade play kart
  arcade play kart --difficulty hard --seed 42
  arcade play dungeon --slot alice --continue
  arcade play kart --metrics-addr :9100`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while playing")
	playCmd.Flags().StringVar(&flagSlot, "slot", "default", "Adventure save slot")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the adventure from the save slot")
}

func runPlay(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs a terminal, use 'arcade run' for headless runs")
	}
	rc, err := runtimeConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = playSession(ctx, args[0], rc)
	return err
}

// playSession runs one game in the terminal, serving metrics alongside when
// requested. It returns the final state.
func playSession(ctx context.Context, id string, rc core.RuntimeConfig) (core.GameState, error) {
	l := quietLogger()

	var observer entity.Observer
	var metrics *telemetry.Metrics
	reg, m := telemetry.NewRegistry()
	if flagMetricsAddr != "" {
		metrics = m
		observer = metrics
	}

	game, err := createGame(id, l, observer)
	if err != nil {
		return core.GameState{}, err
	}

	store := openStore(l)
	if store != nil {
		defer store.Close()
	}

	game.Reset(rc)
	hooks := sessionHooks(game, store, l)

	var state core.GameState
	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)

	if metrics != nil {
		g.Go(func() error {
			return telemetry.Serve(runCtx, flagMetricsAddr, telemetry.Handler(reg))
		})
	}
	g.Go(func() error {
		defer cancel()
		var runErr error
		state, runErr = tui.Run(runCtx, game, rc, hooks)
		if errors.Is(runErr, tea.ErrProgramKilled) {
			return nil
		}
		return runErr
	})

	if err := g.Wait(); err != nil {
		return state, err
	}
	return state, nil
}

// sessionHooks wires persistence into the play loop for the games that have any.
func sessionHooks(game registry.Game, store *storage.Store, l *log.Logger) tui.Hooks {
	switch g := game.(type) {
	case *kart.Game:
		return tui.Hooks{
			OnFinish: func(registry.Game) {
				recordRace(g, store, l)
			},
		}

	case *dungeon.Game:
		var blobs profile.BlobStore
		if store != nil {
			blobs = store
		}
		saver := profile.NewSaver(blobs, flagSlot, l)
		if flagContinue {
			if p, ok := saver.Load(); ok {
				if err := g.ImportProfile(p); err != nil {
					l.Warn("save not restored", "slot", saver.Slot(), "err", err)
				}
			}
		}
		return tui.Hooks{
			OnSave: func(registry.Game) string {
				if saver.Save(g.ExportProfile()) {
					return fmt.Sprintf("Saved to slot %q.", saver.Slot())
				}
				return "Save failed."
			},
		}
	}
	return tui.Hooks{}
}

// recordRace stores the player's result once the race is over.
func recordRace(g *kart.Game, store *storage.Store, l *log.Logger) (string, bool) {
	res, ok := g.Result()
	if !ok || store == nil {
		return "", false
	}
	runID, err := store.SaveRaceResult(storage.RaceResult{
		Difficulty: res.Difficulty,
		Position:   res.Position,
		Racers:     res.Racers,
		FinishMs:   res.FinishMs,
		Laps:       res.Laps,
		Seed:       res.Seed,
	})
	if err != nil {
		l.Error("race result not saved", "err", err)
		return "", false
	}
	l.Info("race recorded", "run", runID, "position", res.Position)
	return runID, true
}
