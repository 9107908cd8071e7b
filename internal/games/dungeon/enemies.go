package dungeon

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/ai"
	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/physics"
	"github.com/vovakirdan/arcade-sim/internal/progress"
)

// Enemy is a hostile actor driven by a behavior.
type Enemy struct {
	entity.Actor
	Stats config.EnemyStats
	mind  *ai.Mind
}

// Electric reports whether touching the enemy shocks.
func (e *Enemy) Electric() bool {
	return e.mind.Behavior == ai.BehaviorElectric
}

func (g *Game) spawnEnemy(s progress.Spawn) {
	stats, ok := g.cfg.Enemies[s.Tag]
	if !ok {
		g.logger.Warn("unknown enemy type", "tag", s.Tag)
		return
	}
	size := g.tile() * 0.8
	e := &Enemy{Stats: stats, mind: ai.NewMind(stats.Behavior)}
	e.Actor = entity.Actor{
		ID:        g.ids.Next(),
		Kind:      entity.KindEnemy,
		Tag:       s.Tag,
		Pos:       s.Pos,
		Facing:    core.DirDown,
		Size:      core.V(size, size),
		Health:    stats.Health,
		MaxHealth: stats.Health,
	}
	g.enemies = append(g.enemies, e)
}

func aiRadii(c config.DungeonAI, tile float64) ai.Radii {
	return ai.Radii{
		Alert:     c.AlertRadius * tile,
		Disengage: c.DisengageRadius * tile,
		Attack:    c.AttackRadius * tile,
		Shoot:     c.ShootRadius * tile,
		Fly:       c.FlyRadius * tile,
		Charge:    c.ChargeRadius * tile,
		Awaken:    c.AwakenRadius * tile,
		AlignSlop: c.AlignSlop * tile,
	}
}

func aiTiming(c config.DungeonAI) ai.Timing {
	return ai.Timing{
		WanderMinMs:  c.WanderMinMs,
		WanderMaxMs:  c.WanderMaxMs,
		JumpMinMs:    c.JumpMinMs,
		JumpMaxMs:    c.JumpMaxMs,
		FireCooldown: c.FireCooldownMs,
		FlyJitter:    c.FlyJitter,
		ChargeBoost:  c.ChargeBoost,
	}
}

// updateEnemies runs every enemy's behavior and moves it. Previous positions
// are recorded for wall resolution.
func (g *Game) updateEnemies(dt float64, prev map[entity.ID]core.Vec2) {
	tun := g.enemyArbiter.Tuning()
	for _, e := range g.enemies {
		if e.Dead {
			continue
		}
		e.Status.Tick(dt)
		s := ai.Senses{
			ToPlayer:    g.player.Pos.Sub(e.Pos),
			LineOfSight: g.lineOfSight(e.Pos, g.player.Pos),
			Stunned:     e.Status.Stunned.Active(),
		}
		d := e.mind.Decide(s, g.radii, g.timing, g.rng, dt)
		e.Vel = d.Move.Scale(e.Stats.Speed)
		if dir := dirOf(d.Face); dir != core.DirNone {
			e.Facing = dir
		}
		if d.Fire && e.Stats.Projectile != "" {
			g.fire(e.ID, e.Stats.Projectile, e.Pos, s.ToPlayer.Normalize())
		}
		prev[e.ID] = e.Pos
		physics.MoveLinear(&e.Actor, dt)
		combat.DecayKnockback(&e.Actor, tun.KnockbackDamping, tun.KnockbackEpsilon)
	}
}

// lineOfSight samples the segment between two points against solid geometry.
func (g *Game) lineOfSight(from, to core.Vec2) bool {
	step := g.tile() / 2
	dist := from.Dist(to)
	if dist == 0 {
		return true
	}
	dir := to.Sub(from).Normalize()
	solids := g.solids()
	for t := step; t < dist; t += step {
		p := from.Add(dir.Scale(t))
		for _, s := range solids {
			if s.Contains(p) {
				return false
			}
		}
	}
	return true
}

// enemyHit applies a hit to an enemy and rolls its drop on death.
func (g *Game) enemyHit(e *Enemy, h combat.Hit) combat.Result {
	res, events := g.enemyArbiter.Apply(&e.Actor, h)
	g.emit(events...)
	if res == combat.ResultKilled {
		g.logger.Debug("enemy defeated", "tag", e.Tag, "id", e.ID)
		if item, ok := RollPartition(g.cfg.Drops.Enemy, g.rng); ok {
			g.spawnDrop(item, e.Pos)
		}
	}
	return res
}

func (g *Game) enemy(id entity.ID) *Enemy {
	for _, e := range g.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// dirOf returns the dominant cardinal direction of v.
func dirOf(v core.Vec2) core.Direction {
	switch {
	case v.IsZero():
		return core.DirNone
	case math.Abs(v.X) > math.Abs(v.Y):
		if v.X > 0 {
			return core.DirRight
		}
		return core.DirLeft
	case v.Y > 0:
		return core.DirDown
	default:
		return core.DirUp
	}
}
