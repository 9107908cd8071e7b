package core

// Tint is a presentation hint attached to a sprite.
// The platform layer maps tints to terminal colors.
type Tint int

const (
	TintDefault Tint = iota
	TintPlayer
	TintAlly
	TintEnemy
	TintHazard
	TintPickup
	TintWall
	TintMuted
)

// Sprite is a single presentational handle keyed by simulation entity.
type Sprite struct {
	Pos   Vec2 // World position
	Glyph rune // Character used by text renderers
	Tint  Tint
}

// Frame is a read-only, game-agnostic projection of a simulation snapshot.
// Renderers scale Bounds onto their surface; they never feed back into the simulation.
type Frame struct {
	Bounds  Rect     // World area covered by the frame
	Walls   []Rect   // Static geometry
	Sprites []Sprite // Actors, objects and pickups in draw order
	HUD     []string // Status lines
}
