package config

import (
	"github.com/samber/oops"

	"github.com/vovakirdan/arcade-sim/internal/ai"
	"github.com/vovakirdan/arcade-sim/internal/core"
)

func invalid(section string) oops.OopsErrorBuilder {
	return oops.Code("CONFIG_INVALID").In("config").With("section", section)
}

// Validate rejects kart configurations the simulation cannot run.
func (c KartConfig) Validate() error {
	if c.Race.Laps < 1 {
		return invalid("race").With("laps", c.Race.Laps).Errorf("laps must be at least 1")
	}
	if c.Race.Checkpoints < 1 {
		return invalid("race").With("checkpoints", c.Race.Checkpoints).Errorf("at least one checkpoint is required")
	}
	if c.Race.AICount < 0 {
		return invalid("race").With("ai_count", c.Race.AICount).Errorf("ai count cannot be negative")
	}
	if c.AI.WaypointStride < 1 {
		return invalid("ai").With("waypoint_stride", c.AI.WaypointStride).Errorf("waypoint stride must be positive")
	}
	if c.Track.Waypoints < c.Race.Checkpoints*c.AI.WaypointStride {
		return invalid("track").
			With("waypoints", c.Track.Waypoints).
			With("checkpoints", c.Race.Checkpoints).
			With("stride", c.AI.WaypointStride).
			Errorf("track needs at least checkpoints*stride waypoints")
	}
	if c.Track.Width <= 0 || c.Track.CurveRadius <= c.Track.Width {
		return invalid("track").Errorf("curve radius must exceed the track width")
	}
	if c.Physics.MaxSpeed <= 0 || c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		return invalid("physics").Errorf("max speed must be positive and friction in (0, 1]")
	}
	if _, err := c.Profile(""); err != nil {
		return err
	}
	for name, p := range c.AI.Presets {
		if !probability(p.MistakeChance) {
			return invalid("ai").With("preset", string(name)).Errorf("mistake chance out of [0, 1]")
		}
	}
	var total float64
	for _, ch := range c.Items.Chances {
		if !probability(ch.Chance) {
			return invalid("items").With("item", ch.Item).Errorf("item chance out of [0, 1]")
		}
		total += ch.Chance
	}
	if total > 1+1e-9 {
		return invalid("items").With("total", total).Errorf("item chances sum past 1")
	}
	return nil
}

// Validate rejects adventure configurations the simulation cannot run.
func (c DungeonConfig) Validate() error {
	if c.World.TileSize <= 0 || c.World.RoomTilesW < 16 || c.World.RoomTilesH < 14 {
		return invalid("world").Errorf("rooms must be at least 16x14 tiles")
	}
	if c.World.OverworldW < 2 || c.World.OverworldH < 2 {
		return invalid("world").Errorf("overworld must be at least 2x2 rooms")
	}
	if c.AI.AlertRadius == c.AI.DisengageRadius {
		return invalid("ai").
			With("alert", c.AI.AlertRadius).
			Errorf("alert and disengage radii must differ")
	}
	if c.Player.MaxHealth < 1 || c.Player.Health > c.Player.MaxHealth {
		return invalid("player").Errorf("health must be positive and within max health")
	}
	for tag, e := range c.Enemies {
		if e.Health < 1 {
			return invalid("enemies").With("enemy", tag).Errorf("enemy health must be positive")
		}
		if ai.ParseBehavior(e.Behavior) != ai.Behavior(e.Behavior) {
			return invalid("enemies").With("enemy", tag).With("behavior", e.Behavior).Errorf("unknown behavior")
		}
		if e.Projectile != "" {
			if _, ok := c.Projectiles[e.Projectile]; !ok {
				return invalid("enemies").With("enemy", tag).Errorf("unknown projectile %q", e.Projectile)
			}
		}
	}
	for name, entries := range c.Drops.Tables {
		if err := c.checkDrops(name, entries); err != nil {
			return err
		}
	}
	return c.checkDrops("enemy", c.Drops.Enemy)
}

func (c DungeonConfig) checkDrops(table string, entries []DropChance) error {
	for _, e := range entries {
		if !probability(e.Chance) {
			return invalid("drops").With("table", table).With("item", e.Item).Errorf("drop chance out of [0, 1]")
		}
		if _, ok := c.Drops.Items[e.Item]; !ok {
			return invalid("drops").With("table", table).Errorf("unknown drop %q", e.Item)
		}
	}
	return nil
}

// ValidateRuntime rejects runtime settings no simulation can run with.
func ValidateRuntime(rc core.RuntimeConfig) error {
	if rc.TickRate <= 0 || rc.TickRate > 1000 {
		return invalid("runtime").With("tick_rate", rc.TickRate).Errorf("tick rate must be in 1..1000")
	}
	if rc.Difficulty != "" {
		if _, err := ParseDifficulty(rc.Difficulty); err != nil {
			return err
		}
	}
	return nil
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
