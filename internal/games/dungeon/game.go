// Package dungeon implements the top-down adventure: an overworld of screens,
// a small dungeon behind locked doors, sword and item combat against
// behavior-driven enemies, and the switches, plates and pits that gate progress.
package dungeon

import (
	"io"
	"maps"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/samber/oops"

	"github.com/vovakirdan/arcade-sim/internal/ai"
	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/physics"
	"github.com/vovakirdan/arcade-sim/internal/profile"
	"github.com/vovakirdan/arcade-sim/internal/progress"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

// GameID is the registry identifier.
const GameID = "dungeon"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the adventure.
type Game struct {
	runtime  core.RuntimeConfig
	base     config.DungeonConfig
	cfg      config.DungeonConfig
	fixedCfg bool
	preset   config.DifficultyPreset
	logger   *log.Logger
	observer entity.Observer

	rng          *rand.Rand
	ids          entity.IDs
	world        *progress.Graph
	nav          *progress.Navigator
	room         *progress.Room
	arbiter      *combat.Arbiter // Player side: invincibility window and shield
	enemyArbiter *combat.Arbiter
	resolver     physics.Resolver
	walk         physics.WalkParams
	radii        ai.Radii
	timing       ai.Timing

	player      *entity.Actor
	inv         *Inventory
	enemies     []*Enemy
	objects     []*Object
	projectiles []*Projectile
	drops       []*Drop
	lights      []Light

	charge       combat.Charge
	swing        combat.SwingTracker
	swingLeft    core.Countdown
	swordWait    core.Countdown
	itemWait     core.Countdown
	swingSpin    bool
	wantInteract bool
	lastIn       core.InputFrame
	rejected     *progress.Door // Refused door, until the player leaves its trigger

	playTime float64
	tick     uint64
	over     bool
	won      bool
	paused   bool

	events  []entity.Event
	notices []string
}

// New creates an adventure that loads its configuration on Reset.
func New() *Game {
	return &Game{logger: log.New(io.Discard)}
}

// NewWithConfig creates an adventure with a fixed configuration.
func NewWithConfig(cfg config.DungeonConfig) *Game {
	return &Game{base: cfg, fixedCfg: true, logger: log.New(io.Discard)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dungeon Quest"
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

// Reset starts a fresh adventure in the start room.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadDungeon(configPath)
		if err != nil {
			g.logger.Warn("config rejected, using defaults", "err", err)
			cfg = config.DefaultDungeonConfig()
		}
		g.base = cfg
	}
	g.preset = config.DifficultyMedium
	if runtime.Difficulty != "" {
		if p, err := config.ParseDifficulty(runtime.Difficulty); err == nil {
			g.preset = p
		}
	}
	g.cfg = g.base
	g.cfg.Enemies = maps.Clone(g.base.Enemies)
	config.ApplyDungeonPreset(&g.cfg, g.preset)

	world, err := BuildWorld(g.cfg, runtime.Seed)
	if err != nil {
		g.logger.Error("world rejected, using defaults", "err", err)
		g.cfg = config.DefaultDungeonConfig()
		config.ApplyDungeonPreset(&g.cfg, g.preset)
		world, _ = BuildWorld(g.cfg, runtime.Seed)
	}
	g.world = world

	c := g.cfg
	t := c.World.TileSize
	g.rng = core.NewRNG(runtime.Seed)
	g.ids = entity.IDs{}
	g.arbiter = combat.NewArbiter(combat.Tuning{
		InvincibleMs:     c.Combat.InvincibleMs,
		Knockback:        c.Combat.Knockback,
		BlockedKnockback: c.Combat.BlockedKnockback,
		BlockArc:         c.Combat.BlockArcDeg * math.Pi / 180,
		KnockbackDamping: c.Combat.KnockbackDamping,
		KnockbackEpsilon: c.Combat.KnockbackEpsilon,
	})
	g.enemyArbiter = combat.NewArbiter(combat.Tuning{
		Knockback:        c.Combat.EnemyKnockback,
		KnockbackDamping: c.Combat.KnockbackDamping,
		KnockbackEpsilon: c.Combat.KnockbackEpsilon,
	})
	g.resolver = physics.Resolver{InteractRadius: c.World.InteractRadius * t}
	g.walk = physics.WalkParams{
		Speed:          c.Player.Speed,
		DashSpeed:      c.Player.DashSpeed,
		DashMs:         c.Player.DashMs,
		DashCooldownMs: c.Player.DashCooldownMs,
	}
	g.radii = aiRadii(c.AI, t)
	g.timing = aiTiming(c.AI)

	g.player = &entity.Actor{
		ID:        g.ids.Next(),
		Kind:      entity.KindPlayer,
		Tag:       "player",
		Pos:       core.V(c.World.StartX, c.World.StartY),
		Facing:    core.DirDown,
		Size:      core.V(c.Player.Hitbox*t, c.Player.Hitbox*t),
		Health:    c.Player.Health,
		MaxHealth: c.Player.MaxHealth,
	}
	g.inv = NewInventory(c.Player)
	g.nav = progress.NewNavigator(g.world, c.World.StartRoom, c.World.TransitionMs)

	g.charge = combat.Charge{ThresholdMs: c.Combat.SpinChargeMs}
	g.swing = combat.SwingTracker{}
	g.swingLeft.Stop()
	g.swordWait.Stop()
	g.itemWait.Stop()
	g.swingSpin = false
	g.lastIn = core.InputFrame{}
	g.playTime = 0
	g.tick = 0
	g.over = false
	g.won = false
	g.paused = false
	g.events = nil
	g.notices = nil
	g.enterRoom()

	g.logger.Info("adventure reset", "seed", runtime.Seed, "difficulty", g.preset, "rooms", len(g.world.IDs()))
}

// tile returns the tile size in pixels.
func (g *Game) tile() float64 {
	return g.cfg.World.TileSize
}

// enterRoom tears down the previous room and spawns the current one.
func (g *Game) enterRoom() {
	g.room = g.nav.Room()
	g.dropCarried()
	g.enemies = nil
	g.objects = nil
	g.projectiles = nil
	g.drops = nil
	g.lights = nil
	g.rejected = nil
	g.swing.End()
	g.swingLeft.Stop()

	for _, s := range g.room.Objects {
		g.objects = append(g.objects, newObject(g.ids.Next(), s, g.tile()))
	}
	for _, s := range g.room.Enemies {
		g.spawnEnemy(s)
	}
	g.restoreRoom()
	if g.room.ID == RoomTreasure && !g.won {
		g.won = true
		g.logger.Info("dungeon conquered", "play_time_ms", g.playTime)
	}
	g.logger.Debug("room entered", "room", g.room.ID, "enemies", len(g.enemies), "objects", len(g.objects))
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
		g.lastIn = in.Clone()
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.playTime += dt

	// Room transitions freeze everything else
	if g.nav.Transitioning() {
		ph := g.nav.Tick(dt)
		if ph.Swap {
			g.player.Pos = ph.Door.TargetPos
			g.player.Knockback = core.Vec2{}
			g.enterRoom()
		}
		if ph.Done {
			g.emit(entity.TransitionCompleted{Room: g.nav.Current()})
		}
		g.lastIn = in.Clone()
		g.finishTick()
		return core.StepResult{State: g.State(), Notices: g.notices}
	}

	g.tickLights(dt)

	// Intents and integration
	prev := make(map[entity.ID]core.Vec2, len(g.enemies)+1)
	g.updatePlayer(in, dt, prev)
	g.updateEnemies(dt, prev)
	g.moveProjectiles(dt)

	// Contacts and effects
	contacts := g.resolver.Resolve(g.scene())
	g.applyContacts(contacts, prev)
	g.carryFollow()
	g.applySwing()
	if g.wantInteract {
		g.interact(interactCandidates(contacts, g.player.ID))
	}
	g.collectDrops(dt)
	g.updatePlates()
	g.checkPits()

	if !g.player.Alive() {
		g.over = true
		g.notices = append(g.notices, "Game over")
		g.logger.Info("player defeated", "room", g.room.ID, "play_time_ms", g.playTime)
	}
	g.purge()

	// Progress
	if !g.over {
		g.checkDoors(in)
	}

	g.lastIn = in.Clone()
	g.finishTick()
	return core.StepResult{State: g.State(), Notices: g.notices}
}

func (g *Game) scene() physics.Scene {
	s := physics.Scene{Static: g.solids()}
	s.Actors = append(s.Actors, physics.BodyOf(g.player))
	s.Actors = append(s.Actors, g.enemyBodies()...)
	s.Interactables = g.objectBodies()
	for _, p := range g.projectiles {
		if !p.Dead {
			b := physics.BodyOf(&p.Actor)
			b.Owner = p.Owner
			s.Projectiles = append(s.Projectiles, b)
		}
	}
	return s
}

// solids returns the room walls plus every solid object.
func (g *Game) solids() []core.Rect {
	out := append([]core.Rect(nil), g.room.Walls...)
	for _, o := range g.objects {
		if o.Solid() {
			out = append(out, o.Bounds())
		}
	}
	return out
}

func (g *Game) enemyBodies() []physics.Body {
	var out []physics.Body
	for _, e := range g.enemies {
		if e.Alive() {
			out = append(out, physics.BodyOf(&e.Actor))
		}
	}
	return out
}

func (g *Game) objectBodies() []physics.Body {
	var out []physics.Body
	for _, o := range g.objects {
		if o.Touchable() {
			out = append(out, physics.BodyOf(&o.Actor))
		}
	}
	return out
}

// applyContacts resolves walls, contact damage and projectile hits in contact order.
func (g *Game) applyContacts(contacts []physics.Contact, prev map[entity.ID]core.Vec2) {
	solids := g.solids()
	slid := make(map[entity.ID]bool)

	for _, c := range contacts {
		switch c.Kind {
		case physics.ContactStatic:
			if p := g.projectile(c.A); p != nil {
				if !p.Dead {
					g.projectileWall(p)
				}
				continue
			}
			if slid[c.A] {
				continue
			}
			slid[c.A] = true
			if c.A == g.player.ID {
				physics.SlideOut(g.player, prev[c.A], solids)
			} else if e := g.enemy(c.A); e != nil {
				physics.SlideOut(&e.Actor, prev[c.A], solids)
			}

		case physics.ContactOverlap:
			if c.A == g.player.ID || c.B == g.player.ID {
				other := c.B
				if other == g.player.ID {
					other = c.A
				}
				if e := g.enemy(other); e != nil && e.Alive() {
					h := combat.Hit{Source: e.ID, From: e.Pos, Amount: e.Stats.Damage}
					if e.Electric() {
						h.Unblockable = true
						h.StunMs = g.cfg.Combat.EnemyStunMs
					}
					g.playerHit(h)
				}
			}

		case physics.ContactHit:
			if p := g.projectile(c.A); p != nil {
				g.projectileHit(p, c.B)
			}
		}
	}

	g.keepInside(g.player)
	for _, e := range g.enemies {
		g.keepInside(&e.Actor)
	}
}

// keepInside clamps an actor to the room.
func (g *Game) keepInside(a *entity.Actor) {
	b := g.room.Bounds
	hw, hh := a.Size.X/2, a.Size.Y/2
	a.Pos.X = core.ClampF(a.Pos.X, b.X+hw, b.Right()-hw)
	a.Pos.Y = core.ClampF(a.Pos.Y, b.Y+hh, b.Bottom()-hh)
}

func interactCandidates(contacts []physics.Contact, actor entity.ID) []entity.ID {
	var out []entity.ID
	for _, c := range contacts {
		if c.Kind == physics.ContactInteract && c.A == actor {
			out = append(out, c.B)
		}
	}
	return out
}

// checkDoors asks the navigator for the door ahead of the player.
func (g *Game) checkDoors(in core.InputFrame) {
	p := g.player
	reach := p.Size.Y/2 + g.cfg.World.DoorThreshold*g.tile()

	if r := g.rejected; r != nil && !r.Trigger.Contains(p.Pos.Add(r.Direction.Vector().Scale(reach))) {
		g.rejected = nil
	}

	dir := in.Direction()
	probe := p.Pos.Add(dir.Vector().Scale(reach))
	door, ok := g.nav.DoorAt(probe, dir, g.cfg.World.EdgeMargin*g.tile())
	if !ok {
		return
	}
	marker := g.barrier(door)
	if marker != nil && marker.Tag == ObjShutter && !marker.On {
		return
	}
	if g.rejected != nil && g.rejected.Target == door.Target && g.rejected.Trigger == door.Trigger {
		return
	}

	req := door
	if marker != nil && marker.On {
		req.Lock = progress.LockNone
	}
	t, reason := g.nav.Request(req, g.inv)
	if reason != progress.ReasonNone {
		g.rejected = &door
		g.emit(entity.TransitionRejected{Target: door.Target, Reason: reason.String()})
		switch reason {
		case progress.ReasonNeedsKey:
			g.notices = append(g.notices, "The door is locked.")
		case progress.ReasonNeedsBossKey:
			g.notices = append(g.notices, "You need the boss key.")
		}
		g.logger.Debug("door refused", "target", door.Target, "reason", reason)
		return
	}

	if req.Lock != progress.LockNone && marker != nil {
		marker.On = true
		if marker.Name != "" {
			g.inv.MarkOpened(openedKey(g.room.ID, marker.Name))
		}
	}
	g.emit(entity.TransitionStarted{From: t.From, To: t.To})
	g.logger.Debug("transition", "from", t.From, "to", t.To, "style", t.Style)
}

// barrier returns the door object covering a door's trigger, if any.
func (g *Game) barrier(d progress.Door) *Object {
	for _, o := range g.objects {
		switch o.Tag {
		case ObjLockedDoor, ObjBossDoor, ObjShutter:
			if !o.Dead && o.Bounds().Intersects(d.Trigger) {
				return o
			}
		}
	}
	return nil
}

func (g *Game) purge() {
	g.enemies = keepAlive(g.enemies, func(e *Enemy) bool { return !e.Dead })
	g.objects = keepAlive(g.objects, func(o *Object) bool { return !o.Dead })
	g.projectiles = keepAlive(g.projectiles, func(p *Projectile) bool { return !p.Dead })
	g.drops = keepAlive(g.drops, func(d *Drop) bool { return !d.Dead })
}

func keepAlive[T any](list []T, alive func(T) bool) []T {
	kept := list[:0]
	for _, v := range list {
		if alive(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

func (g *Game) object(id entity.ID) *Object {
	if id == entity.None {
		return nil
	}
	for _, o := range g.objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (g *Game) emit(events ...entity.Event) {
	g.events = append(g.events, events...)
}

func (g *Game) finishTick() {
	if g.observer != nil {
		g.observer.ObserveTick(GameID, g.events)
	}
}

// State returns the coarse game state. Score is the rupee count.
func (g *Game) State() core.GameState {
	st := core.GameState{GameOver: g.over, Won: g.won, Paused: g.paused}
	if g.inv != nil {
		st.Score = g.inv.Rupees
	}
	return st
}

// Events returns a copy of the last tick's events.
func (g *Game) Events() []entity.Event {
	return append([]entity.Event(nil), g.events...)
}

// Player returns the player actor.
func (g *Game) Player() *entity.Actor {
	return g.player
}

// Inventory returns the player's inventory.
func (g *Game) Inventory() *Inventory {
	return g.inv
}

// Room returns the active room.
func (g *Game) Room() *progress.Room {
	return g.room
}

// Navigator returns the room state machine.
func (g *Game) Navigator() *progress.Navigator {
	return g.nav
}

// ExportProfile captures the persistent player state.
func (g *Game) ExportProfile() profile.Profile {
	p := profile.Profile{
		Version:    profile.Version,
		Health:     g.player.Health,
		MaxHealth:  g.player.MaxHealth,
		Room:       g.nav.Current(),
		X:          g.player.Pos.X,
		Y:          g.player.Pos.Y,
		Facing:     facingName(g.player.Facing),
		PlayTimeMs: g.playTime,
	}
	g.inv.Export(&p)
	p.Normalize()
	return p
}

// ImportProfile resumes from a saved profile. The game must have been Reset.
func (g *Game) ImportProfile(p profile.Profile) error {
	errb := oops.Code("PROFILE_INVALID").In("dungeon")
	if g.nav == nil {
		return errb.Errorf("adventure not started")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := g.world.Room(p.Room); !ok {
		return errb.With("room", p.Room).Errorf("profile room %q does not exist", p.Room)
	}
	if !g.nav.Place(p.Room) {
		return errb.With("room", p.Room).Errorf("cannot place player while transitioning")
	}

	g.inv = InventoryFromProfile(p, g.cfg.Player)
	g.player.Health = p.Health
	g.player.MaxHealth = p.MaxHealth
	g.player.Dead = p.Health <= 0
	g.player.Pos = core.V(p.X, p.Y)
	g.player.Facing = parseFacing(p.Facing)
	g.player.Knockback = core.Vec2{}
	g.playTime = p.PlayTimeMs
	g.enterRoom()
	g.keepInside(g.player)
	g.logger.Info("profile loaded", "room", p.Room, "play_time_ms", p.PlayTimeMs)
	return nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
