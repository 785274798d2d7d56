package main

// WaveEntry is one instruction in a level's progression: after Delay ms
// (relative to the previous entry), queue Count baddies of Type at spawn
// point Spawn.
type WaveEntry struct {
	Delay int64
	Spawn int
	Type  BaddieType
	Count int
}

// Level sequences wave entries across a set of spawn points on a monotonic
// millisecond clock. Index -1 means not started; len(entries) means done.
type Level struct {
	Greeting string

	entries []WaveEntry
	cum     []int64 // cumulative trigger offsets since start
	idx     int
	spawns  []*SpawnPoint

	startMS  int64
	paused   bool
	pausedAt int64
}

// NewLevel creates a level over the given spawn points
func NewLevel(greeting string, spawns []*SpawnPoint, entries []WaveEntry) *Level {
	cum := make([]int64, len(entries))
	var total int64
	for i, e := range entries {
		total += e.Delay
		cum[i] = total
	}
	return &Level{
		Greeting: greeting,
		entries:  entries,
		cum:      cum,
		idx:      -1,
		spawns:   spawns,
	}
}

// Started reports whether Start has been called
func (l *Level) Started() bool { return l.idx >= 0 }

// Done reports whether every entry has been consumed
func (l *Level) Done() bool { return l.idx >= len(l.entries) }

// Paused reports whether the level clock is held
func (l *Level) Paused() bool { return l.paused }

// Start (re)starts the level from its first entry
func (l *Level) Start(now int64) {
	l.paused = false
	l.idx = 0
	l.startMS = now
}

// Pause holds the level clock and its spawn points
func (l *Level) Pause(now int64) {
	if l.paused {
		return
	}
	l.paused = true
	l.pausedAt = now
	for _, sp := range l.spawns {
		sp.Pause()
	}
}

// Resume releases the spawn points and shifts the start timestamp forward
// by the pause duration, so elapsed-time comparisons are unaffected.
func (l *Level) Resume(now int64) {
	if !l.paused {
		return
	}
	for _, sp := range l.spawns {
		sp.Resume()
	}
	l.startMS += now - l.pausedAt
	l.paused = false
}

// Tick consumes every entry whose trigger offset has elapsed, queueing its
// orders. Several entries can resolve in one call when their offsets are
// all already satisfied.
func (l *Level) Tick(now int64) {
	if l.paused || !l.Started() {
		return
	}
	for l.idx < len(l.entries) && l.cum[l.idx] <= now-l.startMS {
		e := l.entries[l.idx]
		for i := 0; i < e.Count; i++ {
			l.spawns[e.Spawn].QueueSpawn(e.Type)
		}
		l.idx++
	}
}

// JumpToNextWave rewinds the start timestamp so the current entry's delay
// is immediately satisfied, then ticks once. While still waiting on the
// first entry its delay is honored as-is.
func (l *Level) JumpToNextWave(now int64) {
	if l.idx > 0 && l.idx < len(l.entries) {
		l.startMS = now - l.cum[l.idx]
	}
	l.Tick(now)
}

// StandardLevels builds the game's six-level campaign over four corner
// spawn points.
func StandardLevels(spawns []*SpawnPoint) []*Level {
	return []*Level{
		NewLevel("Level 1", spawns, []WaveEntry{
			{2000, 0, BaddieWiggler, 20},
			{2000, 1, BaddieWiggler, 20},
			{2000, 2, BaddieWiggler, 20},
			{2000, 3, BaddieWiggler, 20},
		}),
		NewLevel("Level 2", spawns, []WaveEntry{
			{2000, 0, BaddieFastWiggler, 20},
			{2000, 1, BaddieFastWiggler, 20},
			{2000, 2, BaddieFastWiggler, 20},
			{2000, 3, BaddieFastWiggler, 20},
		}),
		NewLevel("Level 3", spawns, []WaveEntry{
			{2000, 0, BaddieHomer, 20},
			{2000, 1, BaddieHomer, 20},
			{2000, 2, BaddieHomer, 20},
			{2000, 3, BaddieHomer, 20},
		}),
		NewLevel("Level 4", spawns, []WaveEntry{
			{2000, 0, BaddieShooter, 20},
			{2000, 1, BaddieShooter, 20},
			{2000, 2, BaddieShooter, 20},
			{2000, 3, BaddieShooter, 20},
		}),
		NewLevel("Level 5", spawns, []WaveEntry{
			{2000, 0, BaddieWiggler, 20},
			{2000, 1, BaddieHomer, 20},
			{2000, 2, BaddieWiggler, 20},
			{2000, 3, BaddieHomer, 20},
			{10000, 1, BaddieHomer, 20},
			{10000, 2, BaddieWiggler, 20},
			{10000, 1, BaddieHomer, 20},
			{10000, 2, BaddieWiggler, 20},
		}),
		NewLevel("Level 6", spawns, []WaveEntry{
			{2000, 0, BaddieWiggler, 100},
			{2000, 1, BaddieWiggler, 100},
			{2000, 2, BaddieWiggler, 100},
			{2000, 3, BaddieWiggler, 100},
			{20000, 2, BaddieShooter, 100},
			{20000, 2, BaddieShooter, 100},
			{20000, 2, BaddieHomer, 100},
			{40000, 3, BaddieHomer, 100},
			{20000, 2, BaddieFastWiggler, 100},
			{40000, 3, BaddieFastWiggler, 100},
		}),
	}
}
