package dungeon

import (
	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/progress"
)

// breakObject destroys a cuttable or shatterable object and rolls its drops.
func (g *Game) breakObject(o *Object) {
	if o.Dead {
		return
	}
	o.Dead = true
	g.emit(entity.ObjectBroken{Object: o.ID, Tag: o.Tag})
	g.rollObjectDrop(o.Tag, o.Pos)
}

// toggleSwitch flips a switch and fires its links.
func (g *Game) toggleSwitch(o *Object) {
	o.On = !o.On
	g.emit(entity.Toggled{Object: o.ID, Tag: o.Tag, On: o.On})
	g.fireLinks(o.Name)
}

// fireLinks applies every link whose source is the named switch or plate.
func (g *Game) fireLinks(source string) {
	if source == "" || g.room == nil {
		return
	}
	for _, l := range g.room.Links {
		if l.Source != source {
			continue
		}
		key := linkKey(g.room.ID, l)
		if l.Once && g.inv.Opened(key) {
			continue
		}
		if l.Once {
			g.inv.MarkOpened(key)
		}
		g.applyEffect(l)
	}
}

func linkKey(room string, l progress.Link) string {
	return openedKey(room, l.Source+">"+l.Target)
}

func (g *Game) applyEffect(l progress.Link) {
	for _, o := range g.objects {
		if o.Dead || o.Name != l.Target {
			continue
		}
		switch l.Effect {
		case EffectOpenDoor:
			if !o.On {
				o.On = true
				g.notices = append(g.notices, "A door opened.")
			}
		case EffectToggleBlocks:
			o.On = !o.On
		case EffectRevealChest:
			if o.Hidden {
				o.Hidden = false
				g.notices = append(g.notices, "A chest appeared!")
			}
		case EffectExtendBridge:
			o.Hidden = false
		default:
			g.logger.Debug("unknown link effect", "effect", l.Effect)
		}
	}
}

// restoreRoom replays what was opened or fired for good on an earlier visit.
func (g *Game) restoreRoom() {
	for _, o := range g.objects {
		if o.Name == "" {
			continue
		}
		switch o.Tag {
		case ObjChest, ObjLockedDoor, ObjBossDoor:
			if g.inv.Opened(openedKey(g.room.ID, o.Name)) {
				o.On = true
				o.Hidden = false
			}
		}
	}
	for _, l := range g.room.Links {
		if l.Once && l.Effect != EffectToggleBlocks && g.inv.Opened(linkKey(g.room.ID, l)) {
			g.applyEffect(l)
		}
	}
}

// updatePlates presses or releases plates under the player. Links fire only
// when a plate goes down.
func (g *Game) updatePlates() {
	reach := g.cfg.Mechanics.PlateRadius * g.tile()
	for _, o := range g.objects {
		if o.Dead || o.Tag != ObjPlate {
			continue
		}
		pressed := g.player.Pos.Dist(o.Pos) <= reach
		if pressed == o.On {
			continue
		}
		o.On = pressed
		g.emit(entity.Toggled{Object: o.ID, Tag: o.Tag, On: pressed})
		if pressed {
			g.fireLinks(o.Name)
		}
	}
}

// checkPits drops the player into a pit under their center. Dashing and
// an extended bridge carry the player across.
func (g *Game) checkPits() {
	p := g.player
	if p.Status.Dashing.Active() || len(g.room.Pits) == 0 {
		return
	}
	for _, o := range g.objects {
		if o.Tag == ObjBridge && !o.Hidden && !o.Dead && o.Bounds().Contains(p.Pos) {
			return
		}
	}
	reach := g.cfg.Mechanics.PitRadius * g.tile()
	for _, pit := range g.room.Pits {
		if pit.Center().Dist(p.Pos) > reach {
			continue
		}
		m := g.cfg.Mechanics
		g.dropCarried()
		fell := entity.Fell{Actor: p.ID}
		if g.playerHit(combat.Hit{Source: entity.None, From: p.Pos, Amount: m.PitDamage, Unblockable: true}).Landed() {
			fell.Damage = m.PitDamage
		}
		g.emit(fell)
		p.Pos = core.V((m.FallRespawnX+0.5)*g.tile(), (m.FallRespawnY+0.5)*g.tile())
		p.Knockback = core.Vec2{}
		g.notices = append(g.notices, "You fell!")
		return
	}
}

// tickLights expires temporary lights.
func (g *Game) tickLights(dt float64) {
	kept := g.lights[:0]
	for _, l := range g.lights {
		if !l.life.Tick(dt) {
			kept = append(kept, l)
		}
	}
	g.lights = kept
}

// Lit reports whether a point is visible. Bright rooms are lit everywhere;
// dark rooms only around the player and active lights.
func (g *Game) Lit(p core.Vec2) bool {
	if g.room == nil || !g.room.Dark {
		return true
	}
	if g.player.Pos.Dist(p) <= g.cfg.Mechanics.PlayerLight {
		return true
	}
	for _, l := range g.lights {
		if l.Lit(p) {
			return true
		}
	}
	return false
}
