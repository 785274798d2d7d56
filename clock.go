package main

import "time"

// Clock supplies monotonic milliseconds and a smoothed frames-per-second
// estimate. Fire cooldowns and wave timing run off this, so those timers
// are framerate-independent.
type Clock interface {
	NowMillis() int64
	FPS() float64
}

const fpsWindow = 10 // frames averaged for the FPS estimate

// SystemClock is the production clock: wall time since construction, with
// an FPS estimate fed by the session loop calling Frame once per frame.
type SystemClock struct {
	start  time.Time
	frames [fpsWindow]time.Time
	head   int
	count  int
}

// NewSystemClock creates a clock starting at zero milliseconds
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis returns monotonic milliseconds since the clock was created
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// Frame records one rendered frame for the FPS estimate
func (c *SystemClock) Frame() {
	c.frames[c.head] = time.Now()
	c.head = (c.head + 1) % fpsWindow
	if c.count < fpsWindow {
		c.count++
	}
}

// FPS returns the frame rate averaged over the last few frames. Before a
// full window has been observed it returns 0.
func (c *SystemClock) FPS() float64 {
	if c.count < fpsWindow {
		return 0
	}
	oldest := c.frames[c.head] // next to be overwritten = oldest recorded
	newest := c.frames[(c.head+fpsWindow-1)%fpsWindow]
	span := newest.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(fpsWindow-1) / span
}
