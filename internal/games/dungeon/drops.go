package dungeon

import (
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Drop is an item lying on the floor.
type Drop struct {
	entity.Actor
	life core.Countdown
}

// RollTable runs independent trials in table order and returns the first item
// that succeeds.
func RollTable(table []config.DropChance, rng core.RNG) (string, bool) {
	for _, c := range table {
		if core.Chance(rng, c.Chance) {
			return c.Item, true
		}
	}
	return "", false
}

// RollPartition draws once against a weighted partition. Probability mass left
// over after the listed entries means no drop.
func RollPartition(table []config.DropChance, rng core.RNG) (string, bool) {
	r := rng.Float64()
	acc := 0.0
	for _, c := range table {
		acc += c.Chance
		if r < acc {
			return c.Item, true
		}
	}
	return "", false
}

// spawnDrop places an item on the floor.
func (g *Game) spawnDrop(item string, pos core.Vec2) {
	if _, ok := g.cfg.Drops.Items[item]; !ok {
		g.logger.Debug("unknown drop", "item", item)
		return
	}
	size := g.tile() * 0.5
	d := &Drop{}
	d.Actor = entity.Actor{
		ID:   g.ids.Next(),
		Kind: entity.KindPickup,
		Tag:  item,
		Pos:  pos,
		Size: core.V(size, size),
	}
	d.life.Set(g.cfg.Drops.LifetimeMs)
	g.drops = append(g.drops, d)
	g.emit(entity.DropSpawned{Drop: d.ID, Item: item, Pos: pos})
}

// rollObjectDrop rolls the drop table of a destroyed interactable.
func (g *Game) rollObjectDrop(tag string, pos core.Vec2) {
	if item, ok := RollTable(g.cfg.Drops.Tables[tag], g.rng); ok {
		g.spawnDrop(item, pos)
	}
}

// collectDrops picks up every drop within reach and expires old ones.
func (g *Game) collectDrops(dt float64) {
	reach := g.cfg.Drops.CollectRadius * g.tile()
	for _, d := range g.drops {
		if d.Dead {
			continue
		}
		if d.life.Tick(dt) {
			d.Dead = true
			continue
		}
		if g.player.Pos.Dist(d.Pos) <= reach {
			d.Dead = true
			g.collect(d.Tag)
		}
	}
}

// collect applies a drop or chest item to the player.
func (g *Game) collect(item string) {
	eff, ok := g.cfg.Drops.Items[item]
	if !ok {
		return
	}
	p, inv := g.player, g.inv
	switch eff.Effect {
	case "health":
		p.Health = min(p.Health+eff.Value, p.MaxHealth)
	case "rupees":
		inv.Rupees += eff.Value
	case "bombs":
		inv.Bombs.Add(eff.Value)
	case "arrows":
		inv.Arrows.Add(eff.Value)
	case "magic":
		inv.Magic.Add(eff.Value)
	case "key":
		inv.AddKeys(eff.Value)
	case "boss_key":
		inv.BossKeys[g.dungeonID()] = true
	case "map":
		inv.Maps[g.dungeonID()] = true
	case "compass":
		inv.Compasses[g.dungeonID()] = true
	case "fairy":
		p.Health = p.MaxHealth
	case "heart_piece":
		inv.HeartPieces += eff.Value
		need := g.cfg.Mechanics.HeartPieces
		for need > 0 && inv.HeartPieces >= need {
			inv.HeartPieces -= need
			if p.MaxHealth+2 <= g.cfg.Player.HealthCap {
				p.MaxHealth += 2
				g.notices = append(g.notices, "Heart container!")
			}
			p.Health = p.MaxHealth
		}
	}
	g.emit(entity.PickedUp{Actor: p.ID, Item: item, Amount: eff.Value})
}

// dungeonID names the dungeon key items belong to. Overworld pickups count
// toward the only dungeon.
func (g *Game) dungeonID() string {
	if r := g.nav.Room(); r != nil && r.Dungeon != "" {
		return r.Dungeon
	}
	return DungeonID
}
