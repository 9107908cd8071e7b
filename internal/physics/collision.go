package physics

import (
	"sort"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// ContactKind classifies a reported contact.
type ContactKind int

const (
	ContactStatic   ContactKind = iota // Body overlaps solid geometry
	ContactOverlap                     // Two actors overlap; no push is applied
	ContactInteract                    // Actor is within interaction range of an object
	ContactHit                         // Projectile overlaps an actor or object
)

// String returns a human-readable name for the contact kind.
func (k ContactKind) String() string {
	switch k {
	case ContactStatic:
		return "static"
	case ContactOverlap:
		return "overlap"
	case ContactInteract:
		return "interact"
	case ContactHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Body is the collision view of an entity for one resolve pass.
type Body struct {
	ID    entity.ID
	Kind  entity.Kind
	Box   core.Rect
	Owner entity.ID // Projectiles never hit their owner
}

// BodyOf builds a Body from an actor's current bounds.
func BodyOf(a *entity.Actor) Body {
	return Body{ID: a.ID, Kind: a.Kind, Box: a.Bounds()}
}

// Scene is everything the resolver looks at in one pass.
type Scene struct {
	Actors        []Body
	Interactables []Body
	Projectiles   []Body
	Static        []core.Rect // Solid geometry only
}

// Contact reports one overlap. For same-category pairs A < B;
// for cross-category pairs A is the actor or projectile.
type Contact struct {
	Kind ContactKind
	A, B entity.ID
	Wall int // Index into Scene.Static for static contacts, -1 otherwise
}

// Resolver reports contacts. It never moves anything.
type Resolver struct {
	InteractRadius float64 // Center distance for ContactInteract
}

// Resolve returns every contact in the scene in a canonical order, so the
// result depends only on the set of bodies and not on slice order.
func (r Resolver) Resolve(s Scene) []Contact {
	var out []Contact

	movers := make([]Body, 0, len(s.Actors)+len(s.Projectiles))
	movers = append(movers, s.Actors...)
	movers = append(movers, s.Projectiles...)
	for _, b := range movers {
		for i, wall := range s.Static {
			if b.Box.Intersects(wall) {
				out = append(out, Contact{Kind: ContactStatic, A: b.ID, Wall: i})
			}
		}
	}

	for i := 0; i < len(s.Actors); i++ {
		for j := i + 1; j < len(s.Actors); j++ {
			a, b := s.Actors[i], s.Actors[j]
			if a.Box.Intersects(b.Box) {
				out = append(out, pair(ContactOverlap, a.ID, b.ID))
			}
		}
	}

	if r.InteractRadius > 0 {
		for _, a := range s.Actors {
			for _, o := range s.Interactables {
				if a.Box.Center().Dist(o.Box.Center()) <= r.InteractRadius {
					out = append(out, Contact{Kind: ContactInteract, A: a.ID, B: o.ID, Wall: -1})
				}
			}
		}
	}

	for _, p := range s.Projectiles {
		for _, t := range s.Actors {
			if t.ID != p.Owner && p.Box.Intersects(t.Box) {
				out = append(out, Contact{Kind: ContactHit, A: p.ID, B: t.ID, Wall: -1})
			}
		}
		for _, t := range s.Interactables {
			if p.Box.Intersects(t.Box) {
				out = append(out, Contact{Kind: ContactHit, A: p.ID, B: t.ID, Wall: -1})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.A != b.A {
			return a.A < b.A
		}
		if a.B != b.B {
			return a.B < b.B
		}
		return a.Wall < b.Wall
	})
	return out
}

func pair(kind ContactKind, a, b entity.ID) Contact {
	if b < a {
		a, b = b, a
	}
	return Contact{Kind: kind, A: a, B: b, Wall: -1}
}

// Overlapping returns the IDs of bodies whose boxes intersect area, in ID order.
// Used for melee hitboxes and explosions.
func Overlapping(area core.Rect, bodies []Body) []entity.ID {
	var ids []entity.ID
	for _, b := range bodies {
		if area.Intersects(b.Box) {
			ids = append(ids, b.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SlideOut undoes the part of a move from prev that ends inside solid geometry,
// one axis at a time, so an actor slides along walls instead of sticking.
// Returns true if either axis was blocked.
func SlideOut(a *entity.Actor, prev core.Vec2, solids []core.Rect) bool {
	target := a.Pos
	blocked := false

	a.Pos = core.V(target.X, prev.Y)
	if hitsAny(a.Bounds(), solids) {
		a.Pos.X = prev.X
		blocked = true
	}
	a.Pos.Y = target.Y
	if hitsAny(a.Bounds(), solids) {
		a.Pos.Y = prev.Y
		blocked = true
	}
	return blocked
}

func hitsAny(box core.Rect, solids []core.Rect) bool {
	for _, s := range solids {
		if box.Intersects(s) {
			return true
		}
	}
	return false
}
