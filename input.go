package main

import "sync"

// Deadzone below which an input axis pair is treated as centered
const Deadzone = 0.1

// InputState is one tick's worth of already-resolved intents: a movement
// vector and a fire-direction vector, each axis in [-1, 1].
type InputState struct {
	MoveX, MoveY float64
	FireX, FireY float64
}

// InputProvider supplies the player's intents once per tick
type InputProvider interface {
	Sample() InputState
}

// NullInput is an input provider that never moves or fires
type NullInput struct{}

// Sample returns centered sticks
func (NullInput) Sample() InputState { return InputState{} }

// RemoteInput relays the latest intents from a WebSocket client into the
// game loop. Writers overwrite, the loop samples whatever is current.
type RemoteInput struct {
	mu    sync.Mutex
	state InputState
}

// Set replaces the current intents
func (ri *RemoteInput) Set(st InputState) {
	ri.mu.Lock()
	ri.state = st
	ri.mu.Unlock()
}

// Sample returns the most recently set intents
func (ri *RemoteInput) Sample() InputState {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	return ri.state
}
