package main

import "math"

// Vec is a 2D point or direction
type Vec struct {
	X, Y float64
}

// Rect is an axis-aligned bounding rectangle
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectAround returns a w-by-h rect centered on (x, y)
func RectAround(x, y, w, h float64) Rect {
	return Rect{Left: x - w/2, Top: y - h/2, Right: x + w/2, Bottom: y + h/2}
}

// Width returns the horizontal extent of the rect
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rect
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rect
func (r Rect) Center() Vec {
	return Vec{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Intersects checks if two rects overlap (touching edges count)
func (r Rect) Intersects(o Rect) bool {
	return r.Left <= o.Right && o.Left <= r.Right &&
		r.Top <= o.Bottom && o.Top <= r.Bottom
}

// Contains checks if the point (x, y) lies inside the rect
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// boundPoints returns the smallest rect covering all the given points.
// Each point is widened to a 1x1 square so a degenerate polygon still
// yields a hittable box.
func boundPoints(ps []Vec) Rect {
	r := Rect{Left: ps[0].X, Top: ps[0].Y, Right: ps[0].X + 1, Bottom: ps[0].Y + 1}
	for _, p := range ps[1:] {
		r.Left = math.Min(r.Left, p.X)
		r.Top = math.Min(r.Top, p.Y)
		r.Right = math.Max(r.Right, p.X+1)
		r.Bottom = math.Max(r.Bottom, p.Y+1)
	}
	return r
}
