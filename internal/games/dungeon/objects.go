package dungeon

import (
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/progress"
)

// Interactable tags.
const (
	ObjGrass      = "grass"
	ObjBush       = "bush"
	ObjPot        = "pot"
	ObjRock       = "rock"
	ObjChest      = "chest"
	ObjSign       = "sign"
	ObjSwitch     = "switch"
	ObjPlate      = "plate"
	ObjLockedDoor = "locked_door"
	ObjBossDoor   = "boss_door"
	ObjShutter    = "shutter"
	ObjBlock      = "block"
	ObjBridge     = "bridge"
)

// Link effects.
const (
	EffectOpenDoor     = "open_door"
	EffectToggleBlocks = "toggle_blocks"
	EffectRevealChest  = "reveal_chest"
	EffectExtendBridge = "extend_bridge"
)

// Object is a world interactable.
// On means opened for chests and doors, pressed for switches and plates,
// and lowered for blocks.
type Object struct {
	entity.Actor
	Name    string
	Content string
	Hidden  bool
	On      bool
	Carried bool
}

func newObject(id entity.ID, s progress.Spawn, tile float64) *Object {
	o := &Object{Name: s.Name, Content: s.Content, Hidden: s.Hidden}
	size := core.V(tile*0.8, tile*0.8)
	switch s.Tag {
	case ObjLockedDoor, ObjBossDoor, ObjShutter:
		size = core.V(tile*2, tile)
	case ObjPlate, ObjBridge, ObjBlock:
		size = core.V(tile, tile)
	}
	o.Actor = entity.Actor{
		ID:        id,
		Kind:      entity.KindObject,
		Tag:       s.Tag,
		Pos:       s.Pos,
		Size:      size,
		Health:    1,
		MaxHealth: 1,
	}
	return o
}

// Solid reports whether the object blocks movement.
func (o *Object) Solid() bool {
	if o.Dead || o.Hidden || o.Carried {
		return false
	}
	switch o.Tag {
	case ObjBush, ObjPot, ObjRock, ObjChest, ObjSign:
		return true
	case ObjLockedDoor, ObjBossDoor, ObjShutter, ObjBlock:
		return !o.On
	}
	return false
}

// Touchable reports whether the object takes part in interaction and hits.
func (o *Object) Touchable() bool {
	if o.Dead || o.Hidden || o.Carried {
		return false
	}
	switch o.Tag {
	case ObjPlate, ObjBridge:
		return false
	case ObjLockedDoor, ObjBossDoor, ObjShutter, ObjBlock:
		return !o.On
	}
	return true
}

// Cuttable reports whether a sword or flame destroys the object.
func (o *Object) Cuttable() bool {
	return o.Tag == ObjGrass || o.Tag == ObjBush
}

// Shatterable reports whether an explosion or hammer destroys the object.
func (o *Object) Shatterable() bool {
	switch o.Tag {
	case ObjGrass, ObjBush, ObjPot, ObjRock:
		return true
	}
	return false
}

// Liftable reports whether the object can be lifted with the given glove tier.
// Pots and bushes need no glove.
func (o *Object) Liftable(g Glove) bool {
	switch o.Tag {
	case ObjPot, ObjBush:
		return true
	case ObjRock:
		return g >= GlovePower
	}
	return false
}

// Light is a temporary light source in a dark room.
type Light struct {
	Pos    core.Vec2
	Radius float64
	life   core.Countdown
}

// Lit reports whether p lies inside the light.
func (l Light) Lit(p core.Vec2) bool {
	return l.Pos.Dist(p) <= l.Radius
}
