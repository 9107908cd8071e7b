package kart

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/ai"
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
)

// wallBlock is the edge length of the square blocks that line the curves.
const wallBlock = 2.5

// Pose is a position with a racer heading.
type Pose struct {
	Pos      core.Vec2
	Rotation float64
}

// Track is the static geometry of one race.
type Track struct {
	Waypoints   []core.Vec2
	Checkpoints []core.Vec2
	Walls       []core.Rect
	Grid        []Pose
	Boxes       []core.Vec2
	Bounds      core.Rect
	Radius      float64 // Checkpoint trigger radius
}

// oval is a stadium-shaped centerline: two straights of length L at x = ±R
// joined by semicircles of radius R. Arc length 0 is the bottom of the right
// straight, and the loop runs up that straight, counterclockwise on screen.
type oval struct {
	L, R float64
}

func (o oval) perimeter() float64 {
	return 2*o.L + 2*math.Pi*o.R
}

// at returns the centerline point and heading at arc length s.
func (o oval) at(s float64) Pose {
	p := o.perimeter()
	s = math.Mod(s, p)
	if s < 0 {
		s += p
	}
	half := o.L / 2
	switch {
	case s < o.L: // right straight, heading up
		return Pose{Pos: core.V(o.R, half-s), Rotation: 0}
	case s < o.L+math.Pi*o.R: // top curve
		th := (s - o.L) / o.R
		pos := core.V(o.R*math.Cos(th), -half-o.R*math.Sin(th))
		return Pose{Pos: pos, Rotation: heading(core.V(-math.Sin(th), -math.Cos(th)))}
	case s < 2*o.L+math.Pi*o.R: // left straight, heading down
		d := s - o.L - math.Pi*o.R
		return Pose{Pos: core.V(-o.R, -half+d), Rotation: math.Pi}
	default: // bottom curve
		th := (s - 2*o.L - math.Pi*o.R) / o.R
		pos := core.V(-o.R*math.Cos(th), half+o.R*math.Sin(th))
		return Pose{Pos: pos, Rotation: heading(core.V(math.Sin(th), math.Cos(th)))}
	}
}

// heading converts a direction into a racer rotation.
func heading(d core.Vec2) float64 {
	return core.WrapAngle(math.Atan2(-d.X, -d.Y))
}

// BuildTrack lays out the oval. Checkpoint k sits on the waypoint the AI aims
// for while its last checkpoint is k-1, so AI targets and checkpoints coincide.
// Checkpoint 0 is the finish line, FinishOffset up the right straight, and the
// grid fills the straight behind it.
func BuildTrack(cfg config.KartTrack, race config.KartRace, stride, karts int) Track {
	o := oval{L: cfg.StraightLength, R: cfg.CurveRadius}
	n := cfg.Waypoints
	step := o.perimeter() / float64(n)

	finishWp := ai.WaypointIndex(-1, stride, n)
	s0 := cfg.FinishOffset - float64(finishWp)*step

	t := Track{Radius: cfg.Width}
	for i := 0; i < n; i++ {
		t.Waypoints = append(t.Waypoints, o.at(s0+float64(i)*step).Pos)
	}
	for k := 0; k < race.Checkpoints; k++ {
		t.Checkpoints = append(t.Checkpoints, t.Waypoints[ai.WaypointIndex(k-1, stride, n)])
	}

	hw := cfg.Width / 2
	half := o.L / 2
	// Straights: outer and inner wall on each side
	for _, side := range []float64{1, -1} {
		outer := side * (o.R + hw + 0.5)
		inner := side * (o.R - hw - 0.5)
		t.Walls = append(t.Walls,
			core.RectAround(core.V(outer, 0), 1, o.L),
			core.RectAround(core.V(inner, 0), 1, o.L),
		)
	}
	// Curves: blocks along the outer and inner edge
	for _, c := range []struct{ cy, dir float64 }{{-half, -1}, {half, 1}} {
		for _, r := range []float64{o.R + hw + wallBlock/2, o.R - hw - wallBlock/2} {
			count := int(math.Ceil(math.Pi * r / (wallBlock * 0.8)))
			for i := 0; i <= count; i++ {
				th := math.Pi * float64(i) / float64(count)
				p := core.V(r*math.Cos(th), c.cy+c.dir*r*math.Sin(th))
				t.Walls = append(t.Walls, core.RectAround(p, wallBlock, wallBlock))
			}
		}
	}

	finishY := half - cfg.FinishOffset
	for i := 0; i < karts; i++ {
		row, col := i/2, i%2
		x := o.R - hw/2
		if col == 1 {
			x = o.R + hw/2
		}
		y := finishY + cfg.GridSpacing*float64(row+1)
		t.Grid = append(t.Grid, Pose{Pos: core.V(x, y)})
	}

	// Item box rows halfway between checkpoints 1-2 and 5-6
	for _, wp := range []int{ai.WaypointIndex(1, stride, n) - 1, ai.WaypointIndex(5, stride, n) - 1} {
		if wp < 0 {
			wp += n
		}
		pose := o.at(s0 + float64(wp)*step)
		left := core.V(-math.Cos(pose.Rotation), math.Sin(pose.Rotation))
		for _, off := range []float64{-hw / 2, 0, hw / 2} {
			t.Boxes = append(t.Boxes, pose.Pos.Add(left.Scale(off)))
		}
	}

	ext := o.R + hw + wallBlock + 2
	t.Bounds = core.NewRect(-ext, -half-ext, 2*ext, o.L+2*ext)
	return t
}
