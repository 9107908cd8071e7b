package kart

import (
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/physics"
)

// Item names.
const (
	ItemMushroom   = "mushroom"
	ItemGreenShell = "green_shell"
	ItemRedShell   = "red_shell"
	ItemBanana     = "banana"
	ItemStar       = "star"
)

// Box is an item box that hides for a while after being driven through.
type Box struct {
	entity.Actor
	respawn core.Countdown
}

// Visible reports whether the box can be collected.
func (b *Box) Visible() bool {
	return !b.respawn.Active()
}

// Shell is a thrown shell. Red shells home on their target.
type Shell struct {
	entity.Actor
	owner  entity.ID
	target entity.ID
	life   core.Countdown
}

// Hazard is a dropped banana.
type Hazard struct {
	entity.Actor
	owner entity.ID
}

// RollItem draws one item from a weighted partition using a single roll.
// Returns "" when the roll lands past the last entry.
func RollItem(rng core.RNG, chances []config.ItemChance) string {
	r := rng.Float64()
	var acc float64
	for _, c := range chances {
		acc += c.Chance
		if r < acc {
			return c.Item
		}
	}
	return ""
}

// useItem activates the kart's held item. Stunned karts and empty hands do nothing.
func (g *Game) useItem(k *Kart) []entity.Event {
	if k.HeldItem == "" || k.Status.Stunned.Active() {
		return nil
	}
	item := k.HeldItem
	k.HeldItem = ""
	items := g.cfg.Items
	fwd := physics.Forward(k.Rotation)
	events := []entity.Event{entity.ItemUsed{Actor: k.ID, Item: item}}

	switch item {
	case ItemMushroom:
		extend(&k.Status.Boosting, items.BoostMs)
	case ItemStar:
		extend(&k.Status.Invincible, items.StarMs)
		extend(&k.Status.Boosting, items.StarMs)
	case ItemBanana:
		h := &Hazard{owner: k.ID}
		h.Actor = entity.Actor{
			ID:   g.ids.Next(),
			Kind: entity.KindHazard,
			Tag:  ItemBanana,
			Pos:  k.Pos.Sub(fwd.Scale(g.cfg.Physics.KartDepth + 1)),
			Size: core.V(1.5, 1.5),
		}
		g.hazards = append(g.hazards, h)
		events = append(events, entity.Fired{Owner: k.ID, Projectile: h.ID, Tag: ItemBanana})
	case ItemGreenShell, ItemRedShell:
		s := &Shell{owner: k.ID}
		s.Actor = entity.Actor{
			ID:       g.ids.Next(),
			Kind:     entity.KindProjectile,
			Tag:      item,
			Pos:      k.Pos.Add(fwd.Scale(g.cfg.Physics.KartDepth + 1)),
			Vel:      fwd.Scale(items.ShellSpeed),
			Rotation: k.Rotation,
			Size:     core.V(1.2, 1.2),
		}
		s.life.Set(items.ShellLifeMs)
		if item == ItemRedShell {
			s.target = g.kartAhead(k.ID)
		}
		g.shells = append(g.shells, s)
		events = append(events, entity.Fired{Owner: k.ID, Projectile: s.ID, Tag: item})
	}

	g.logger.Debug("item used", "kart", k.Label, "item", item)
	return events
}

// kartAhead returns the kart ranked directly ahead of id, or entity.None for the leader.
func (g *Game) kartAhead(id entity.ID) entity.ID {
	standings := g.race.Standings()
	for i, s := range standings {
		if s.Actor == id && i > 0 {
			return standings[i-1].Actor
		}
	}
	return entity.None
}

// moveShells steers red shells, advances every shell and expires old ones.
func (g *Game) moveShells(dt float64) {
	for _, s := range g.shells {
		if s.Dead {
			continue
		}
		if t, ok := g.byID[s.target]; ok && s.target != entity.None {
			dir := t.Pos.Sub(s.Pos).Normalize()
			if !dir.IsZero() {
				s.Vel = dir.Scale(g.cfg.Items.ShellSpeed)
			}
		}
		physics.MoveLinear(&s.Actor, dt)
		if s.life.Tick(dt) {
			s.Dead = true
		}
	}
}

// collectBox gives the kart an item if its hands are free and hides the box.
func (g *Game) collectBox(k *Kart, b *Box) []entity.Event {
	if !b.Visible() {
		return nil
	}
	b.respawn.Set(g.cfg.Items.BoxRespawnMs)
	if k.HeldItem != "" {
		return nil
	}
	item := RollItem(g.rng, g.cfg.Items.Chances)
	if item == "" {
		return nil
	}
	k.HeldItem = item
	if !k.Player {
		k.useWait.Set(core.RangeF(g.rng, k.pilot.Profile().ReactionMs, k.pilot.Profile().ReactionMs+2000))
	}
	return []entity.Event{entity.PickedUp{Actor: k.ID, Item: item, Amount: 1}}
}

func extend(c *core.Countdown, ms float64) {
	if c.Remaining() < ms {
		c.Set(ms)
	}
}
