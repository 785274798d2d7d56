package main

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	b := Rect{Left: 5, Top: 5, Right: 15, Bottom: 15}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("overlapping rects should intersect")
	}

	c := Rect{Left: 10, Top: 0, Right: 20, Bottom: 10}
	if !a.Intersects(c) {
		t.Error("touching edges should count as intersecting")
	}

	d := Rect{Left: 11, Top: 11, Right: 20, Bottom: 20}
	if a.Intersects(d) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	if !r.Contains(5, 5) {
		t.Error("interior point should be contained")
	}
	if !r.Contains(10, 10) {
		t.Error("boundary point should be contained")
	}
	if r.Contains(10.1, 5) {
		t.Error("exterior point should not be contained")
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(100, 50, 20, 10)
	if r.Left != 90 || r.Right != 110 || r.Top != 45 || r.Bottom != 55 {
		t.Errorf("unexpected rect: %+v", r)
	}
	if r.Width() != 20 || r.Height() != 10 {
		t.Errorf("unexpected extents: %f x %f", r.Width(), r.Height())
	}
	c := r.Center()
	if c.X != 100 || c.Y != 50 {
		t.Errorf("unexpected center: %+v", c)
	}
}

func TestBoundPoints(t *testing.T) {
	r := boundPoints([]Vec{{0, 0}, {10, 5}, {-3, 8}})
	if r.Left != -3 || r.Top != 0 || r.Right != 11 || r.Bottom != 9 {
		t.Errorf("unexpected bound rect: %+v", r)
	}

	// A single point still yields a 1x1 box
	r = boundPoints([]Vec{{4, 4}})
	if r.Width() != 1 || r.Height() != 1 {
		t.Errorf("degenerate polygon should bound to 1x1, got %f x %f", r.Width(), r.Height())
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("in-range value should pass through")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("low value should clamp to min")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("high value should clamp to max")
	}
}

func TestRound1(t *testing.T) {
	if round1(1.26) != 1.3 {
		t.Errorf("round1(1.26) = %f", round1(1.26))
	}
	if round1(-1.24) != -1.2 {
		t.Errorf("round1(-1.24) = %f", round1(-1.24))
	}
}
