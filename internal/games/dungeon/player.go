package dungeon

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/physics"
)

// pressed reports whether an action went down this tick.
func (g *Game) pressed(in core.InputFrame, a core.Action) bool {
	return in.Has(a) && !g.lastIn.Has(a)
}

// updatePlayer turns input into intent, swings, item use and movement.
func (g *Game) updatePlayer(in core.InputFrame, dt float64, prev map[entity.ID]core.Vec2) {
	p := g.player
	p.Status.Tick(dt)
	g.swordWait.Tick(dt)
	g.itemWait.Tick(dt)
	if g.swingLeft.Tick(dt) {
		g.swing.End()
	}

	carrying := p.Held != entity.None
	stunned := p.Status.Stunned.Active()
	g.wantInteract = false

	if !stunned {
		switch {
		case carrying && (g.pressed(in, core.ActionAttack) || g.pressed(in, core.ActionInteract)):
			g.throwObject()
			g.charge.Cancel()
		case carrying:
			g.charge.Cancel()
		default:
			g.attack(in, dt)
			g.wantInteract = g.pressed(in, core.ActionInteract)
			if g.pressed(in, core.ActionUseItem) {
				g.useItem()
			}
		}
	} else {
		g.charge.Cancel()
	}
	carrying = p.Held != entity.None

	intent := physics.WalkIntent{
		Move:  in.Direction(),
		Dash:  in.Has(core.ActionDash) && g.inv.Has(ItemBoots) && !carrying,
		Block: in.Has(core.ActionBlock) && g.inv.Has(ItemShield) && !carrying && !g.swing.Active(),
	}
	prev[p.ID] = p.Pos
	if physics.IntegrateWalker(p, intent, g.walk, dt) {
		g.emit(entity.ItemUsed{Actor: p.ID, Item: ItemBoots.String()})
	}
	tun := g.arbiter.Tuning()
	combat.DecayKnockback(p, tun.KnockbackDamping, tun.KnockbackEpsilon)
}

// attack feeds the sword charge and starts a swing on release.
func (g *Game) attack(in core.InputFrame, dt float64) {
	if !g.inv.Has(ItemSword) {
		return
	}
	v := g.charge.Update(in.Has(core.ActionAttack), dt)
	if v == combat.VariantNone || g.swordWait.Active() {
		return
	}
	c := g.cfg.Combat
	g.swing.Begin()
	g.swingLeft.Set(c.SwingMs)
	g.swingSpin = v == combat.VariantEnhanced
	if g.swingSpin {
		g.swordWait.Set(c.SwordCooldownMs * c.SpinCooldownFactor)
		g.notices = append(g.notices, "Spin attack!")
	} else {
		g.swordWait.Set(c.SwordCooldownMs)
	}
}

// front returns the point one tile ahead of the player.
func (g *Game) front(dist float64) core.Vec2 {
	return g.player.Pos.Add(g.player.Facing.Vector().Scale(dist))
}

// SwingArea returns the sword hitbox of the active swing.
func (g *Game) SwingArea() (core.Rect, bool) {
	if !g.swing.Active() {
		return core.Rect{}, false
	}
	t := g.tile()
	if g.swingSpin {
		s := g.cfg.Combat.SpinHitbox * t
		return core.RectAround(g.player.Pos, s, s), true
	}
	return core.RectAround(g.front(t*0.75), t, t), true
}

// applySwing hits everything inside the sword hitbox once per swing.
func (g *Game) applySwing() {
	area, ok := g.SwingArea()
	if !ok {
		return
	}
	c := g.cfg.Combat
	dmg := c.SwordDamage
	if g.swingSpin {
		dmg = c.SpinDamage
	}
	for _, id := range physics.Overlapping(area, g.enemyBodies()) {
		e := g.enemy(id)
		if e == nil || !e.Alive() || !g.swing.Mark(id) {
			continue
		}
		g.enemyHit(e, combat.Hit{Source: g.player.ID, From: g.player.Pos, Amount: dmg, StunMs: c.EnemyStunMs})
		if e.Electric() {
			g.playerHit(combat.Hit{Source: e.ID, From: e.Pos, Amount: e.Stats.Damage, Unblockable: true})
		}
	}
	for _, id := range physics.Overlapping(area, g.objectBodies()) {
		o := g.object(id)
		if o == nil || !g.swing.Mark(id) {
			continue
		}
		switch {
		case o.Cuttable():
			g.breakObject(o)
		case o.Tag == ObjSwitch:
			g.toggleSwitch(o)
		}
	}
}

// useItem activates the equipped item. Missing resources make it a no-op.
func (g *Game) useItem() {
	if g.itemWait.Active() {
		return
	}
	inv, p := g.inv, g.player
	item := inv.Equipped
	if !inv.Has(item) {
		return
	}
	cost := g.cfg.Items.MagicCost[item.String()]
	if !inv.Magic.Has(cost) {
		return
	}
	t := g.tile()
	dir := p.Facing.Vector()

	switch item {
	case ItemBombs:
		if !inv.Bombs.Spend(1) {
			return
		}
		g.fire(p.ID, ProjBomb, g.front(t*0.75), core.Vec2{})
	case ItemBow:
		if !inv.Arrows.Spend(1) {
			return
		}
		g.fire(p.ID, ProjArrow, p.Pos, dir)
	case ItemBoomerang:
		if g.boomerangOut() {
			return
		}
		g.fire(p.ID, ProjBoomerang, p.Pos, dir)
	case ItemHookshot:
		g.fire(p.ID, ProjHookshot, p.Pos, dir)
	case ItemFireRod:
		g.fire(p.ID, ProjFire, p.Pos, dir)
	case ItemIceRod:
		g.fire(p.ID, ProjIce, p.Pos, dir)
	case ItemLamp:
		l := Light{Pos: g.front(t), Radius: g.cfg.Items.LampRadius}
		l.life.Set(g.cfg.Items.LampMs)
		g.lights = append(g.lights, l)
		for _, o := range g.objects {
			if o.Touchable() && o.Cuttable() && o.Pos.Dist(l.Pos) <= t {
				g.breakObject(o)
			}
		}
	case ItemHammer:
		g.hammer()
	default:
		return
	}
	inv.Magic.Spend(cost)
	g.itemWait.Set(g.cfg.Player.ItemCooldownMs)
	g.emit(entity.ItemUsed{Actor: p.ID, Item: item.String()})
}

// hammer pounds the area in front of the player.
func (g *Game) hammer() {
	c := g.cfg.Combat
	reach := c.HammerReach * g.tile()
	area := core.RectAround(g.front(reach/2), reach, reach)
	for _, id := range physics.Overlapping(area, g.enemyBodies()) {
		if e := g.enemy(id); e != nil && e.Alive() {
			g.enemyHit(e, combat.Hit{Source: g.player.ID, From: g.player.Pos, Amount: c.HammerDamage, StunMs: c.EnemyStunMs})
		}
	}
	for _, id := range physics.Overlapping(area, g.objectBodies()) {
		o := g.object(id)
		switch {
		case o == nil:
		case o.Tag == ObjSwitch:
			g.toggleSwitch(o)
		case o.Tag == ObjPot || o.Tag == ObjRock:
			g.breakObject(o)
		}
	}
}

// interact acts on the nearest object in reach.
func (g *Game) interact(candidates []entity.ID) {
	p := g.player
	var best *Object
	for _, id := range candidates {
		o := g.object(id)
		if o == nil || !o.Touchable() {
			continue
		}
		if best == nil || o.Pos.Dist(p.Pos) < best.Pos.Dist(p.Pos) {
			best = o
		}
	}
	if best == nil {
		return
	}

	switch best.Tag {
	case ObjPot, ObjBush, ObjRock:
		if !best.Liftable(g.inv.Glove()) {
			g.notices = append(g.notices, "It's too heavy.")
			return
		}
		best.Carried = true
		p.Held = best.ID
	case ObjChest:
		g.openChest(best)
	case ObjSign:
		g.notices = append(g.notices, best.Content)
	case ObjSwitch:
		g.toggleSwitch(best)
	}
}

// openChest opens a chest once and grants its contents.
func (g *Game) openChest(o *Object) {
	if o.On {
		return
	}
	o.On = true
	if o.Name != "" {
		g.inv.MarkOpened(openedKey(g.room.ID, o.Name))
	}
	g.emit(entity.ObjectBroken{Object: o.ID, Tag: o.Tag})

	item := o.Content
	if _, ok := g.cfg.Drops.Items[item]; ok {
		g.collect(item)
	} else if it, ok := ParseItem(item); ok {
		g.inv.Grant(it)
		g.emit(entity.PickedUp{Actor: g.player.ID, Item: item, Amount: 1})
	} else {
		g.logger.Warn("chest holds unknown item", "room", g.room.ID, "item", item)
		return
	}
	g.notices = append(g.notices, fmt.Sprintf("You got the %s!", strings.ReplaceAll(item, "_", " ")))
	g.logger.Info("chest opened", "room", g.room.ID, "item", item)
}

// carryFollow keeps a lifted object above the player's head.
func (g *Game) carryFollow() {
	if o := g.object(g.player.Held); o != nil {
		o.Pos = g.player.Pos.Add(core.V(0, -g.tile()*0.6))
	}
}

// dropCarried discards a lifted object without throwing it.
func (g *Game) dropCarried() {
	if o := g.object(g.player.Held); o != nil {
		o.Dead = true
	}
	g.player.Held = entity.None
}

// playerHit applies a hit to the player.
func (g *Game) playerHit(h combat.Hit) combat.Result {
	res, events := g.arbiter.Apply(g.player, h)
	g.emit(events...)
	if res == combat.ResultKilled {
		g.dropCarried()
	}
	return res
}
