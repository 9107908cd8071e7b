// Package kart implements the kart racer: an oval track, AI opponents that
// follow a waypoint loop, item boxes and a strict checkpoint race.
package kart

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-sim/internal/ai"
	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/physics"
	"github.com/vovakirdan/arcade-sim/internal/progress"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

// GameID is the registry identifier.
const GameID = "kart"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Kart is one racer, player or AI.
type Kart struct {
	entity.Actor
	Label  string
	Player bool

	params  physics.KartParams
	pilot   *ai.Pilot // nil for the player
	useWait core.Countdown
}

// Result is the player's outcome once the race is over.
type Result struct {
	Position   int
	Racers     int
	FinishMs   float64
	Laps       int
	Difficulty string
	Seed       int64
}

// Game implements the kart racer.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.KartConfig
	fixedCfg bool
	preset   config.DifficultyPreset
	logger   *log.Logger
	observer entity.Observer

	rng      *rand.Rand
	ids      entity.IDs
	track    Track
	race     *progress.Race
	arbiter  *combat.Arbiter
	resolver physics.Resolver

	karts   []*Kart // Grid order; the player is first
	byID    map[entity.ID]*Kart
	boxes   []*Box
	shells  []*Shell
	hazards []*Hazard

	countdown core.Countdown
	clock     float64 // Race clock, starts after the countdown
	tick      uint64
	over      bool
	paused    bool
	position  int // Player's final position once over

	events  []entity.Event
	notices []string
}

// New creates a kart racer that loads its configuration on Reset.
func New() *Game {
	return &Game{logger: log.New(io.Discard)}
}

// NewWithConfig creates a kart racer with a fixed configuration.
func NewWithConfig(cfg config.KartConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true, logger: log.New(io.Discard)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Kart Racer"
}

// SetLogger replaces the game's logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l.WithPrefix(GameID)
	}
}

// SetObserver registers a receiver for every tick's events.
func (g *Game) SetObserver(o entity.Observer) {
	g.observer = o
}

// Reset initializes or restarts the race.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadKart(configPath)
		if err != nil {
			g.logger.Warn("config rejected, using defaults", "err", err)
			cfg = config.DefaultKartConfig()
		}
		g.cfg = cfg
	}

	g.preset = g.cfg.AI.Difficulty
	if runtime.Difficulty != "" {
		if p, err := config.ParseDifficulty(runtime.Difficulty); err == nil {
			g.preset = p
		}
	}
	profile, err := g.cfg.Profile(g.preset)
	if err != nil {
		g.logger.Warn("unknown difficulty, using medium", "difficulty", g.preset)
		g.preset = config.DifficultyMedium
		profile = config.DefaultKartConfig().AI.Presets[config.DifficultyMedium]
	}

	g.rng = core.NewRNG(runtime.Seed)
	g.ids = entity.IDs{}
	total := 1 + g.cfg.Race.AICount
	g.track = BuildTrack(g.cfg.Track, g.cfg.Race, g.cfg.AI.WaypointStride, total)
	g.arbiter = combat.NewArbiter(combat.Tuning{})
	g.resolver = physics.Resolver{}

	base := kartParams(g.cfg.Physics)
	g.karts = nil
	g.byID = make(map[entity.ID]*Kart, total)
	ids := make([]entity.ID, 0, total)
	for i := 0; i < total; i++ {
		k := &Kart{params: base, Player: i == 0}
		k.Actor = entity.Actor{
			ID:       g.ids.Next(),
			Kind:     entity.KindKart,
			Pos:      g.track.Grid[i].Pos,
			Rotation: g.track.Grid[i].Rotation,
			Size:     core.V(g.cfg.Physics.KartWidth, g.cfg.Physics.KartWidth),
		}
		if k.Player {
			k.Label = "you"
			k.Kind = entity.KindPlayer
		} else {
			k.Label = fmt.Sprintf("cpu%d", i)
			k.params.MaxSpeed *= profile.SpeedMultiplier
			p := ai.Profile{
				SpeedMultiplier: profile.SpeedMultiplier,
				ReactionMs:      profile.ReactionMs,
				MistakeChance:   profile.MistakeChance,
			}
			k.pilot = ai.NewPilot(p, g.track.Waypoints, g.cfg.AI.WaypointStride, g.cfg.Physics.TurnSpeed,
				core.NewRNG(runtime.Seed+int64(i)*7919))
		}
		k.Tag = k.Label
		g.karts = append(g.karts, k)
		g.byID[k.ID] = k
		ids = append(ids, k.ID)
	}
	g.race = progress.NewRace(g.cfg.Race.Checkpoints, g.cfg.Race.Laps, ids)

	g.boxes = nil
	for _, pos := range g.track.Boxes {
		b := &Box{}
		b.Actor = entity.Actor{
			ID:   g.ids.Next(),
			Kind: entity.KindPickup,
			Tag:  "item_box",
			Pos:  pos,
			Size: core.V(g.cfg.Items.BoxSize, g.cfg.Items.BoxSize),
		}
		g.boxes = append(g.boxes, b)
	}
	g.shells = nil
	g.hazards = nil

	g.countdown.Set(g.cfg.Race.CountdownMs)
	g.clock = 0
	g.tick = 0
	g.over = false
	g.paused = false
	g.position = 0
	g.events = nil
	g.notices = nil

	g.logger.Info("race reset", "seed", runtime.Seed, "difficulty", g.preset, "racers", total)
}

func kartParams(p config.KartPhysics) physics.KartParams {
	return physics.KartParams{
		MaxSpeed:         p.MaxSpeed,
		Acceleration:     p.Acceleration,
		BrakeForce:       p.BrakeForce,
		TurnSpeed:        p.TurnSpeed,
		DriftMultiplier:  p.DriftMultiplier,
		Friction:         p.Friction,
		FrictionStepMs:   p.FrictionStepMs,
		ReverseFactor:    p.ReverseFactor,
		BoostFactor:      p.BoostFactor,
		MinTurnSpeed:     p.MinTurnSpeed,
		StopEpsilon:      p.StopEpsilon,
		DriftMinSpeed:    p.DriftMinSpeed,
		DriftChargeRate:  p.DriftChargeRate,
		DriftChargeMax:   p.DriftChargeMax,
		DriftBoostCharge: p.DriftBoostCharge,
		DriftBoostMs:     p.DriftBoostMs,
	}
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.Advance(g.runtime.TickMillis(), in)
}

// Advance runs one tick of dt milliseconds.
func (g *Game) Advance(dt float64, in core.InputFrame) core.StepResult {
	g.events = g.events[:0]
	g.notices = g.notices[:0]

	if in.Has(core.ActionRestart) && g.over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}
	if g.paused || g.over || dt <= 0 {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.countdown.Active() {
		if g.countdown.Tick(dt) {
			g.notices = append(g.notices, "GO!")
		}
		g.finishTick()
		return core.StepResult{State: g.State(), Notices: g.notices}
	}
	g.clock += dt

	// Intents and integration
	prev := make(map[entity.ID]core.Vec2, len(g.karts))
	for _, k := range g.karts {
		k.Status.Tick(dt)
		k.useWait.Tick(dt)
		intent := g.intent(k, in, dt)
		if k.Player && in.Has(core.ActionUseItem) {
			g.events = append(g.events, g.useItem(k)...)
		} else if !k.Player && k.HeldItem != "" && !k.useWait.Active() {
			g.events = append(g.events, g.useItem(k)...)
		}
		prev[k.ID] = k.Pos
		physics.IntegrateKart(&k.Actor, intent, k.params, dt)
	}
	g.moveShells(dt)
	for _, b := range g.boxes {
		b.respawn.Tick(dt)
	}

	// Contacts
	g.applyContacts(g.resolver.Resolve(g.scene()), prev)

	// Progress
	g.advanceProgress()

	g.purge()
	g.finishTick()
	return core.StepResult{State: g.State(), Notices: g.notices}
}

func (g *Game) intent(k *Kart, in core.InputFrame, dt float64) physics.KartIntent {
	if k.Player {
		return physics.KartIntent{
			Accelerate: in.Has(core.ActionAccelerate),
			Brake:      in.Has(core.ActionBrake),
			Drift:      in.Has(core.ActionDrift),
			Steer:      in.SteerValue(),
		}
	}
	st, _ := g.race.Standing(k.ID)
	return physics.KartIntent{
		Accelerate: true,
		Steer:      k.pilot.Decide(&k.Actor, st.Checkpoint, dt),
	}
}

func (g *Game) scene() physics.Scene {
	s := physics.Scene{Static: g.track.Walls}
	for _, k := range g.karts {
		s.Actors = append(s.Actors, physics.BodyOf(&k.Actor))
	}
	for _, b := range g.boxes {
		if b.Visible() {
			s.Actors = append(s.Actors, physics.BodyOf(&b.Actor))
		}
	}
	for _, h := range g.hazards {
		if !h.Dead {
			s.Actors = append(s.Actors, physics.BodyOf(&h.Actor))
		}
	}
	for _, sh := range g.shells {
		if !sh.Dead {
			body := physics.BodyOf(&sh.Actor)
			body.Owner = sh.owner
			s.Projectiles = append(s.Projectiles, body)
		}
	}
	return s
}

func (g *Game) applyContacts(contacts []physics.Contact, prev map[entity.ID]core.Vec2) {
	bounced := make(map[entity.ID]bool)
	for _, c := range contacts {
		switch c.Kind {
		case physics.ContactStatic:
			if k, ok := g.byID[c.A]; ok && !bounced[k.ID] {
				bounced[k.ID] = true
				physics.SlideOut(&k.Actor, prev[k.ID], g.track.Walls)
				k.Speed *= g.cfg.Physics.Bounce
			} else if s := g.shell(c.A); s != nil {
				s.Dead = true
			}
		case physics.ContactOverlap:
			g.overlap(c.A, c.B)
			g.overlap(c.B, c.A)
		case physics.ContactHit:
			s := g.shell(c.A)
			if s == nil || s.Dead {
				continue
			}
			if k, ok := g.byID[c.B]; ok {
				s.Dead = true
				g.events = append(g.events, g.arbiter.Stun(&k.Actor, g.cfg.Items.StunMs)...)
			} else if h := g.hazard(c.B); h != nil && !h.Dead {
				s.Dead = true
				h.Dead = true
			}
		}
	}
}

// overlap applies what a touches to kart a, if a is a kart.
func (g *Game) overlap(a, b entity.ID) {
	k, ok := g.byID[a]
	if !ok {
		return
	}
	if other, ok := g.byID[b]; ok {
		if k.Status.Invincible.Active() && !other.Status.Invincible.Active() {
			g.events = append(g.events, g.arbiter.Stun(&other.Actor, g.cfg.Items.StunMs)...)
		}
		return
	}
	if box := g.box(b); box != nil {
		g.events = append(g.events, g.collectBox(k, box)...)
		return
	}
	if h := g.hazard(b); h != nil && !h.Dead {
		h.Dead = true
		g.events = append(g.events, g.arbiter.Stun(&k.Actor, g.cfg.Items.StunMs)...)
	}
}

// advanceProgress feeds every checkpoint zone a kart is inside, in ascending index order.
func (g *Game) advanceProgress() {
	for _, k := range g.karts {
		for idx, cp := range g.track.Checkpoints {
			if k.Pos.Dist(cp) > g.track.Radius {
				continue
			}
			evs := g.race.Touch(k.ID, idx, g.clock)
			g.events = append(g.events, evs...)
			for _, e := range evs {
				switch ev := e.(type) {
				case entity.LapCompleted:
					if k.Player && ev.Lap < g.race.Laps() {
						g.notices = append(g.notices, fmt.Sprintf("Lap %d/%d", ev.Lap+1, g.race.Laps()))
					}
				case entity.Finished:
					g.logger.Info("racer finished", "kart", k.Label, "time_ms", math.Round(ev.Time))
				}
			}
		}
	}

	player := g.karts[0]
	if !g.over && g.race.Finished(player.ID) {
		g.over = true
		g.position = g.race.Position(player.ID)
		g.events = append(g.events, entity.RaceOver{Position: g.position})
		g.notices = append(g.notices, fmt.Sprintf("Finished %s!", ordinal(g.position)))
	}
}

func (g *Game) purge() {
	shells := g.shells[:0]
	for _, s := range g.shells {
		if !s.Dead {
			shells = append(shells, s)
		}
	}
	g.shells = shells

	hazards := g.hazards[:0]
	for _, h := range g.hazards {
		if !h.Dead {
			hazards = append(hazards, h)
		}
	}
	g.hazards = hazards
}

func (g *Game) finishTick() {
	if g.observer != nil {
		g.observer.ObserveTick(GameID, g.events)
	}
}

func (g *Game) shell(id entity.ID) *Shell {
	for _, s := range g.shells {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (g *Game) hazard(id entity.ID) *Hazard {
	for _, h := range g.hazards {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (g *Game) box(id entity.ID) *Box {
	for _, b := range g.boxes {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.position
	if !g.over && g.race != nil && len(g.karts) > 0 {
		score = g.race.Position(g.karts[0].ID)
	}
	return core.GameState{
		Score:    score,
		GameOver: g.over,
		Won:      g.over && g.position == 1,
		Paused:   g.paused,
	}
}

// Events returns the events of the last tick.
func (g *Game) Events() []entity.Event {
	return append([]entity.Event(nil), g.events...)
}

// Result reports the player's outcome once the race is over.
func (g *Game) Result() (Result, bool) {
	if !g.over {
		return Result{}, false
	}
	st, _ := g.race.Standing(g.karts[0].ID)
	return Result{
		Position:   g.position,
		Racers:     len(g.karts),
		FinishMs:   st.FinishTime,
		Laps:       g.race.Laps(),
		Difficulty: string(g.preset),
		Seed:       g.runtime.Seed,
	}, true
}

// Player returns the player's kart.
func (g *Game) Player() *Kart {
	if len(g.karts) == 0 {
		return nil
	}
	return g.karts[0]
}

// Karts returns every kart in grid order.
func (g *Game) Karts() []*Kart {
	return g.karts
}

// Track returns the race track.
func (g *Game) Track() Track {
	return g.track
}

// Race returns the checkpoint tracker.
func (g *Game) Race() *progress.Race {
	return g.race
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
