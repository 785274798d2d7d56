package main

import (
	"fmt"
	"math"
)

// Color is an RGB triple for the renderer
type Color struct {
	R, G, B uint8
}

// Ship is the base movable entity: a polygon of local points placed at a
// position with a heading. The bounding rect is derived lazily from the
// transformed polygon and recomputed at most once between mutations.
type Ship struct {
	Color Color
	Speed float64 // current max speed, subject to upgrades

	pos   Vec
	traj  float64 // heading in [0, 2*PI)
	shape []Vec   // local line-art points, roughly unit scale
	size  float64 // scale multiplier applied to shape

	rect  Rect
	stale bool
}

// NewShip creates a ship from its local polygon
func NewShip(color Color, shape []Vec, pos Vec, traj, size float64) Ship {
	return Ship{
		Color: color,
		Speed: 2,
		pos:   pos,
		traj:  NormalizeAngle(traj),
		shape: shape,
		size:  size,
		stale: true,
	}
}

// Pos returns the ship's position
func (s *Ship) Pos() Vec { return s.pos }

// Heading returns the ship's heading in [0, 2*PI)
func (s *Ship) Heading() float64 { return s.traj }

// SetPos teleports the ship
func (s *Ship) SetPos(p Vec) {
	s.stale = true
	s.pos = p
}

// SetHeading points the ship in a new direction
func (s *Ship) SetHeading(traj float64) {
	s.stale = true
	s.traj = NormalizeAngle(traj)
}

// Move translates the ship by (dx, dy)
func (s *Ship) Move(dx, dy float64) {
	s.stale = true
	s.pos.X += dx
	s.pos.Y += dy
}

// MoveForward displaces the ship along its heading by Speed*amt.
// amt is a throttle fraction and must be in [0, 1].
func (s *Ship) MoveForward(amt float64) error {
	if amt < 0 || amt > 1 {
		return fmt.Errorf("move fraction out of range: %f", amt)
	}
	s.stale = true
	speed := s.Speed * amt
	s.pos.X += math.Cos(s.traj) * speed
	s.pos.Y += math.Sin(s.traj) * speed
	return nil
}

// Rotate turns the ship by delta radians, wrapping into [0, 2*PI)
func (s *Ship) Rotate(delta float64) {
	s.stale = true
	s.traj = NormalizeAngle(s.traj + delta)
}

// GlobalShape returns the shape points transformed by heading, size and
// position, for the renderer and for bounding-rect computation.
func (s *Ship) GlobalShape() []Vec {
	st := math.Sin(s.traj) * s.size
	ct := math.Cos(s.traj) * s.size
	out := make([]Vec, len(s.shape))
	for i, p := range s.shape {
		out[i] = Vec{
			X: s.pos.X + p.X*ct - p.Y*st,
			Y: s.pos.Y + p.Y*ct + p.X*st,
		}
	}
	return out
}

// BoundingRect returns the cached bounding rect, recomputing it only if a
// mutation occurred since the last query.
func (s *Ship) BoundingRect() Rect {
	if s.stale {
		s.rect = boundPoints(s.GlobalShape())
		s.stale = false
	}
	return s.rect
}

// Center returns the center of the bounding rect
func (s *Ship) Center() Vec {
	return s.BoundingRect().Center()
}
