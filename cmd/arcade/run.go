package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/games/dungeon"
	"github.com/vovakirdan/arcade-sim/internal/games/kart"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/telemetry"
)

var (
	flagTicks   int
	flagHold    []string
	flagTap     []string
	flagRecord  string
	flagEvery   int
	flagSaveRun bool
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Run a simulation headless with scripted input",
	Long: `Run a simulation without a terminal UI.

Held actions are pressed on every tick. Taps press an action on a single
tick, written as name@tick. Action names ignore case, dashes and
underscores: accelerate, brake, steer-left, steer-right, drift, use-item,
up, down, left, right, attack, dash, block, interact, pause.

The run stops after --ticks ticks or as soon as the game is over.

Examples:
  arcade run kart --ticks 7200 --hold accelerate --seed 42
  arcade run kart --hold accelerate --tap use-item@900 --save
  arcade run dungeon --ticks 600 --hold up --tap attack@30
  arcade run kart --record race.yaml --every 60`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks to simulate")
	runCmd.Flags().StringSliceVar(&flagHold, "hold", nil, "Actions held on every tick")
	runCmd.Flags().StringSliceVar(&flagTap, "tap", nil, "Single-tick actions as name@tick")
	runCmd.Flags().StringVar(&flagRecord, "record", "", "Write snapshots to this YAML file")
	runCmd.Flags().IntVar(&flagEvery, "every", 60, "Ticks between recorded snapshots")
	runCmd.Flags().BoolVar(&flagSaveRun, "save", false, "Store a finished race in the database")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run")
}

// script is the scripted input of a headless run.
type script struct {
	hold []core.Action
	taps map[int][]core.Action
}

func parseScript(hold, taps []string) (script, error) {
	s := script{taps: make(map[int][]core.Action)}
	for _, name := range hold {
		a, ok := core.ParseAction(name)
		if !ok {
			return s, fmt.Errorf("unknown action %q", name)
		}
		s.hold = append(s.hold, a)
	}
	for _, tap := range taps {
		name, at, found := strings.Cut(tap, "@")
		if !found {
			return s, fmt.Errorf("tap %q must be name@tick", tap)
		}
		a, ok := core.ParseAction(name)
		if !ok {
			return s, fmt.Errorf("unknown action %q", name)
		}
		tick, err := strconv.Atoi(at)
		if err != nil || tick < 0 {
			return s, fmt.Errorf("tap %q has a bad tick", tap)
		}
		s.taps[tick] = append(s.taps[tick], a)
	}
	return s, nil
}

// frame returns the input for tick.
func (s script) frame(tick int) core.InputFrame {
	f := core.FrameOf(s.hold...)
	for _, a := range s.taps[tick] {
		f.Set(a)
	}
	return f
}

// headless steps a game through a script.
type headless struct {
	game   registry.Game
	script script
	ticks  int
	onTick func(tick int, g registry.Game) error
}

// run returns the number of ticks stepped and the final state.
func (h headless) run(ctx context.Context) (int, core.GameState, error) {
	var state core.GameState
	for tick := 0; tick < h.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return tick, state, err
		}
		state = h.game.Step(h.script.frame(tick)).State
		if h.onTick != nil {
			if err := h.onTick(tick, h.game); err != nil {
				return tick + 1, state, err
			}
		}
		if state.GameOver {
			return tick + 1, state, nil
		}
	}
	return h.ticks, state, nil
}

func runRun(_ *cobra.Command, args []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive")
	}
	sc, err := parseScript(flagHold, flagTap)
	if err != nil {
		return err
	}
	rc, err := runtimeConfig()
	if err != nil {
		return err
	}

	reg, metrics := telemetry.NewRegistry()
	var next entity.Observer
	if flagMetricsAddr != "" {
		next = metrics
	}
	counts := newTally(next)

	game, err := createGame(args[0], logger, counts)
	if err != nil {
		return err
	}
	game.Reset(rc)

	h := headless{game: game, script: sc, ticks: flagTicks}
	if flagRecord != "" {
		f, err := os.Create(flagRecord)
		if err != nil {
			return fmt.Errorf("cannot create record file: %w", err)
		}
		defer f.Close()
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		every := max(flagEvery, 1)
		h.onTick = func(tick int, g registry.Game) error {
			if tick%every != 0 && !g.State().GameOver {
				return nil
			}
			return enc.Encode(snapshotOf(g))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	if flagMetricsAddr != "" {
		g.Go(func() error {
			return telemetry.Serve(runCtx, flagMetricsAddr, telemetry.Handler(reg))
		})
	}

	var (
		stepped int
		state   core.GameState
	)
	started := time.Now()
	g.Go(func() error {
		defer cancel()
		var runErr error
		stepped, state, runErr = h.run(runCtx)
		return runErr
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printRun(game, rc, stepped, state, time.Since(started), counts)

	if flagSaveRun {
		if kg, ok := game.(*kart.Game); ok {
			store := openStore(logger)
			if store == nil {
				return fmt.Errorf("database unavailable, race not saved")
			}
			defer store.Close()
			if runID, ok := recordRace(kg, store, logger); ok {
				fmt.Printf("\nSaved as %s\n", runID)
			}
		}
	}
	return nil
}

func printRun(game registry.Game, rc core.RuntimeConfig, stepped int, state core.GameState, took time.Duration, counts *tally) {
	fmt.Printf("%s (seed %d, %d ticks/s)\n", game.Title(), rc.Seed, rc.TickRate)
	fmt.Printf("  Ticks:     %d (%.1fs simulated, %s wall)\n",
		stepped, float64(stepped)*rc.TickMillis()/1000, took.Round(time.Millisecond))
	fmt.Printf("  Over:      %v\n", state.GameOver)
	fmt.Printf("  Won:       %v\n", state.Won)
	fmt.Printf("  Score:     %d\n", state.Score)

	switch g := game.(type) {
	case *kart.Game:
		if res, ok := g.Result(); ok {
			fmt.Printf("  Result:    %d/%d in %s over %d laps\n",
				res.Position, res.Racers, clock(res.FinishMs), res.Laps)
		} else {
			s := g.Snapshot()
			for _, k := range s.Karts {
				if k.Player {
					fmt.Printf("  Standing:  %d/%d, lap %d/%d\n", k.Position, len(s.Karts), k.Lap, s.Laps)
				}
			}
		}
	case *dungeon.Game:
		s := g.Snapshot()
		fmt.Printf("  Room:      %s\n", s.Room)
		fmt.Printf("  Health:    %d/%d\n", s.Player.Health, s.Player.MaxHealth)
		fmt.Printf("  Items:     %s\n", strings.Join(s.Items, ", "))
		fmt.Printf("  Rupees:    %d  Keys: %d  Bombs: %d  Arrows: %d\n", s.Rupees, s.Keys, s.Bombs, s.Arrows)
	}

	names := counts.names()
	if len(names) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Events:")
	for _, n := range names {
		fmt.Printf("  %-18s %d\n", n, counts.count(n))
	}
}

// clock formats milliseconds as m:ss.cc.
func clock(ms float64) string {
	cs := int(ms / 10)
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
