package dungeon

import (
	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/physics"
)

// Projectile tags with special handling.
const (
	ProjArrow     = "arrow"
	ProjBomb      = "bomb"
	ProjBoomerang = "boomerang"
	ProjHookshot  = "hookshot"
	ProjFire      = "fire"
	ProjIce       = "ice"
	ProjRock      = "rock"
	ProjThrown    = "thrown"
)

// Projectile is anything in flight: shots, bombs, boomerangs and thrown objects.
type Projectile struct {
	entity.Actor
	Owner     entity.ID
	Damage    int
	Object    string // Tag of the thrown object, for its drop roll
	speed     float64
	span      float64
	life      core.Countdown
	returning bool
	struck    map[entity.ID]bool
}

// fire spawns a projectile of the given type travelling along dir.
func (g *Game) fire(owner entity.ID, tag string, pos, dir core.Vec2) *Projectile {
	stats, ok := g.cfg.Projectiles[tag]
	if !ok {
		g.logger.Debug("unknown projectile", "tag", tag)
		return nil
	}
	return g.launch(owner, tag, pos, dir, stats.Speed, stats.Lifetime, stats.Damage)
}

func (g *Game) launch(owner entity.ID, tag string, pos, dir core.Vec2, speed, lifeMs float64, damage int) *Projectile {
	size := g.tile() * 0.4
	if tag == ProjBomb || tag == ProjThrown {
		size = g.tile() * 0.6
	}
	p := &Projectile{Owner: owner, Damage: damage, speed: speed, span: lifeMs}
	p.Actor = entity.Actor{
		ID:     g.ids.Next(),
		Kind:   entity.KindProjectile,
		Tag:    tag,
		Pos:    pos,
		Vel:    dir.Normalize().Scale(speed),
		Facing: dirOf(dir),
		Size:   core.V(size, size),
	}
	p.life.Set(lifeMs)
	g.projectiles = append(g.projectiles, p)
	g.emit(entity.Fired{Owner: owner, Projectile: p.ID, Tag: tag})
	return p
}

// throwObject turns the carried object into a projectile along the player's facing.
func (g *Game) throwObject() {
	o := g.object(g.player.Held)
	g.player.Held = entity.None
	if o == nil {
		return
	}
	o.Dead = true
	it := g.cfg.Items
	life := 0.0
	if it.ThrowSpeed > 0 {
		life = it.ThrowDist * g.tile() / it.ThrowSpeed * 1000
	}
	p := g.launch(g.player.ID, ProjThrown, g.player.Pos, g.player.Facing.Vector(), it.ThrowSpeed, life, it.ThrowDamage)
	p.Object = o.Tag
}

// playerProjectile reports whether the projectile belongs to the player.
func (g *Game) playerProjectile(p *Projectile) bool {
	return p.Owner == g.player.ID
}

// moveProjectiles advances flight, boomerang returns and lifetimes.
func (g *Game) moveProjectiles(dt float64) {
	for _, p := range g.projectiles {
		if p.Dead {
			continue
		}
		if p.life.Tick(dt) {
			g.endProjectile(p)
			continue
		}
		if p.Tag == ProjBoomerang {
			if !p.returning && p.life.Remaining() <= p.span/2 {
				p.returning = true
			}
			if p.returning {
				owner := g.player
				if p.Pos.Dist(owner.Pos) < g.tile()/2 {
					p.Dead = true
					continue
				}
				p.Vel = owner.Pos.Sub(p.Pos).Normalize().Scale(p.speed)
			}
		}
		physics.MoveLinear(&p.Actor, dt)
		if !g.room.Bounds.Contains(p.Pos) {
			g.endProjectile(p)
		}
	}
}

// endProjectile retires a projectile, running its landing effect.
func (g *Game) endProjectile(p *Projectile) {
	if p.Dead {
		return
	}
	p.Dead = true
	switch p.Tag {
	case ProjBomb:
		g.explode(p)
	case ProjThrown:
		g.emit(entity.ObjectBroken{Object: p.ID, Tag: p.Object})
		g.rollObjectDrop(p.Object, p.Pos)
	}
}

// explode damages everything inside the blast. Enemies take the full hit,
// the player half of it when close, and breakable objects shatter.
func (g *Game) explode(p *Projectile) {
	radius := g.cfg.Combat.BombRadius * g.tile()
	for _, e := range g.enemies {
		if e.Alive() && e.Pos.Dist(p.Pos) <= radius {
			g.enemyHit(e, combat.Hit{Source: p.Owner, From: p.Pos, Amount: p.Damage, Unblockable: true})
		}
	}
	for _, o := range g.objects {
		if o.Touchable() && o.Shatterable() && o.Pos.Dist(p.Pos) <= radius {
			g.breakObject(o)
		}
	}
	if p.Damage > 0 && g.player.Pos.Dist(p.Pos) <= radius*0.75 {
		g.playerHit(combat.Hit{Source: p.Owner, From: p.Pos, Amount: max(1, p.Damage/2), Unblockable: true})
	}
	g.notices = append(g.notices, "Boom!")
}

// projectileWall handles a projectile touching solid geometry.
func (g *Game) projectileWall(p *Projectile) {
	switch p.Tag {
	case ProjBomb:
	case ProjBoomerang:
		p.returning = true
	default:
		g.endProjectile(p)
	}
}

// projectileHit handles a projectile overlapping an actor or object.
func (g *Game) projectileHit(p *Projectile, target entity.ID) {
	if p.Dead || p.Tag == ProjBomb {
		return
	}
	if !g.playerProjectile(p) {
		if target == g.player.ID {
			g.playerHit(combat.Hit{Source: p.Owner, From: p.Pos, Amount: p.Damage})
			p.Dead = true
		}
		return
	}

	if e := g.enemy(target); e != nil && e.Alive() {
		g.projectileHitsEnemy(p, e)
		return
	}
	if o := g.object(target); o != nil && o.Touchable() {
		switch {
		case o.Tag == ObjSwitch:
			if p.struck == nil {
				p.struck = make(map[entity.ID]bool)
			}
			if !p.struck[o.ID] {
				p.struck[o.ID] = true
				g.toggleSwitch(o)
			}
			if p.Tag == ProjBoomerang {
				p.returning = true
			} else {
				g.endProjectile(p)
			}
		case p.Tag == ProjFire && o.Cuttable():
			g.breakObject(o)
			g.endProjectile(p)
		}
	}
}

func (g *Game) projectileHitsEnemy(p *Projectile, e *Enemy) {
	c := g.cfg.Combat
	switch p.Tag {
	case ProjBoomerang:
		if p.struck == nil {
			p.struck = make(map[entity.ID]bool)
		}
		if p.struck[e.ID] {
			return
		}
		p.struck[e.ID] = true
		p.returning = true
		if p.Damage > 0 {
			g.enemyHit(e, combat.Hit{Source: p.Owner, From: p.Pos, Amount: p.Damage, StunMs: c.BoomerangStunMs})
			return
		}
		g.emit(g.enemyArbiter.Stun(&e.Actor, c.BoomerangStunMs)...)
	case ProjIce:
		g.enemyHit(e, combat.Hit{Source: p.Owner, From: p.Pos, Amount: p.Damage, StunMs: c.BoomerangStunMs})
		g.endProjectile(p)
	default:
		g.enemyHit(e, combat.Hit{Source: p.Owner, From: p.Pos, Amount: p.Damage, StunMs: c.EnemyStunMs})
		g.endProjectile(p)
	}
}

func (g *Game) projectile(id entity.ID) *Projectile {
	for _, p := range g.projectiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// boomerangOut reports whether the player already has a boomerang in flight.
func (g *Game) boomerangOut() bool {
	for _, p := range g.projectiles {
		if !p.Dead && p.Tag == ProjBoomerang && g.playerProjectile(p) {
			return true
		}
	}
	return false
}
