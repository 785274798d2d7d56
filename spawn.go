package main

import (
	"math"
	"math/rand"
)

// SpawnChance is the %-per-tick chance a non-empty queue releases one order
const SpawnChance = 20

// SpawnPoint drip-feeds queued baddie orders into the collision space from
// a fixed position, facing the arena center.
type SpawnPoint struct {
	pos    Vec
	traj   float64 // initial heading handed to spawned baddies
	space  *CollisionSpace
	queue  []BaddieType
	paused bool
	rng    *rand.Rand
}

// NewSpawnPoint creates a spawn point at (x, y) in a width-by-height arena
func NewSpawnPoint(width, height, x, y float64, space *CollisionSpace, rng *rand.Rand) *SpawnPoint {
	return &SpawnPoint{
		pos:   Vec{X: x, Y: y},
		traj:  math.Atan2(height/2-y, width/2-x),
		space: space,
		rng:   rng,
	}
}

// Pos returns the spawn point's position
func (sp *SpawnPoint) Pos() Vec { return sp.pos }

// Pause stops releasing queued orders
func (sp *SpawnPoint) Pause() { sp.paused = true }

// Resume lets queued orders flow again
func (sp *SpawnPoint) Resume() { sp.paused = false }

// Paused reports whether the spawn point is paused
func (sp *SpawnPoint) Paused() bool { return sp.paused }

// QueueLen returns the number of pending orders
func (sp *SpawnPoint) QueueLen() int { return len(sp.queue) }

// Clear drops all pending orders (player death / reset)
func (sp *SpawnPoint) Clear() { sp.queue = nil }

// QueueSpawn appends one order to the FIFO queue
func (sp *SpawnPoint) QueueSpawn(t BaddieType) {
	sp.queue = append(sp.queue, t)
}

// Spawn releases a baddie of the given type immediately
func (sp *SpawnPoint) Spawn(t BaddieType) {
	sp.space.AddBaddie(NewBaddie(t, sp.pos, sp.traj))
}

// Tick gives a non-empty queue a SpawnChance% shot at releasing exactly
// one order, staggering waves into a drip instead of a burst.
func (sp *SpawnPoint) Tick() {
	if sp.paused || len(sp.queue) == 0 {
		return
	}
	if sp.rng.Intn(100) < SpawnChance {
		sp.Spawn(sp.queue[0])
		sp.queue = sp.queue[1:]
	}
}
