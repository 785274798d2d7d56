package main

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultFPS    = 30
	DefaultMinFPS = 25
)

// RunSummary describes one finished run, for the run log
type RunSummary struct {
	Score      int
	Level      int // 1-based level reached
	Winner     bool
	DurationMS int64
}

// Game orchestrates one arena: the player, the collision space, four
// corner spawn points and the level campaign. One Tick advances
// everything exactly once; all state is guarded by mu so the session's
// input goroutine and the tick loop never race.
type Game struct {
	ID string

	mu       sync.Mutex
	width    float64
	height   float64
	player   *Player
	space    *CollisionSpace
	spawns   []*SpawnPoint
	levels   []*Level
	levelIdx int
	winner   bool
	tick     uint64

	clock  Clock
	minFPS float64
	input  InputProvider
	rng    *rand.Rand
	stats  *Stats

	runStart int64
	onRunEnd func(RunSummary)

	tickRate int
	running  bool
	stop     chan struct{}
}

// NewGame builds a game over a width-by-height arena. stats may be nil.
func NewGame(width, height float64, clock Clock, input InputProvider, stats *Stats) *Game {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	player := NewPlayer(Vec{X: width / 2, Y: height / 2})
	space := NewCollisionSpace(width, height, player, rng, stats)

	spawns := []*SpawnPoint{
		NewSpawnPoint(width, height, 0, 0, space, rng),
		NewSpawnPoint(width, height, 0, height, space, rng),
		NewSpawnPoint(width, height, width, 0, space, rng),
		NewSpawnPoint(width, height, width, height, space, rng),
	}

	return &Game{
		ID:       GenerateID(4),
		width:    width,
		height:   height,
		player:   player,
		space:    space,
		spawns:   spawns,
		levels:   StandardLevels(spawns),
		clock:    clock,
		minFPS:   DefaultMinFPS,
		input:    input,
		rng:      rng,
		stats:    stats,
		tickRate: DefaultFPS,
	}
}

// SetRNG swaps in a deterministic source (tests)
func (g *Game) SetRNG(rng *rand.Rand) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng = rng
	g.space.rng = rng
	for _, sp := range g.spawns {
		sp.rng = rng
	}
}

// SetInput swaps the input provider (controller attach/detach)
func (g *Game) SetInput(in InputProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if in == nil {
		in = NullInput{}
	}
	g.input = in
}

// SetTickRate changes the simulation rate. Takes effect on the next Run.
func (g *Game) SetTickRate(fps int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if fps > 0 {
		g.tickRate = fps
	}
}

// SetMinFPS changes the backpressure floor
func (g *Game) SetMinFPS(minFPS float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.minFPS = minFPS
}

// SetOnRunEnd installs the run-log hook, called with every finished run
func (g *Game) SetOnRunEnd(fn func(RunSummary)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRunEnd = fn
}

// Start kicks off the campaign at level 1
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock.NowMillis()
	g.runStart = now
	g.levels[g.levelIdx].Start(now)
	g.stats.Track("run_start", g.ID, "")
}

// Run drives the tick loop at the configured frame rate until Stop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.stop = make(chan struct{})
	g.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if sc, ok := g.clock.(*SystemClock); ok {
				sc.Frame()
			}
			g.Tick()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the tick loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// Tick advances the whole simulation one frame
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	now := g.clock.NowMillis()

	// Backpressure: a slow host pauses the wave system so the entity count
	// stops growing until the frame rate recovers. An FPS of 0 means the
	// clock has no estimate yet and is treated as healthy.
	if fps := g.clock.FPS(); fps > 0 && g.levelIdx < len(g.levels) {
		lev := g.levels[g.levelIdx]
		if lev.Paused() {
			if fps >= g.minFPS {
				lev.Resume(now)
			}
		} else if fps < g.minFPS {
			lev.Pause(now)
		}
	}

	if g.player.Exploding {
		g.player.ExplProg += ExplosionStep
		if g.player.ExplProg >= ExplosionDone {
			g.resetRun(now)
		}
	} else {
		g.applyInput(now)
	}

	// Level progression: once the field and the queues are clear, a
	// finished level hands over to the next; an unfinished one skips its
	// idle wait.
	if g.levelIdx < len(g.levels) && g.noMoreBaddies() {
		lev := g.levels[g.levelIdx]
		if lev.Done() {
			g.levelIdx++
			if g.levelIdx < len(g.levels) {
				g.levels[g.levelIdx].Start(now)
				g.stats.Track("level_start", g.ID, g.levels[g.levelIdx].Greeting)
			} else if !g.winner {
				g.winner = true
				g.endRun(now)
				g.stats.Track("winner", g.ID, "")
				log.Printf("game %s: campaign complete, score %d", g.ID, g.player.Score)
			}
		} else {
			lev.JumpToNextWave(now)
		}
	} else if !g.winner {
		g.levels[g.levelIdx].Tick(now)
	}

	g.space.Tick(now)
	for _, sp := range g.spawns {
		sp.Tick()
	}
}

// applyInput turns this tick's intents into movement and fire
func (g *Game) applyInput(now int64) {
	in := g.input.Sample()

	if math.Abs(in.MoveX) > Deadzone || math.Abs(in.MoveY) > Deadzone {
		g.player.SetHeading(math.Atan2(in.MoveY, in.MoveX))
		amt := math.Sqrt(in.MoveX*in.MoveX + in.MoveY*in.MoveY)
		g.player.MoveForward(Clamp(amt, 0, 1))
	}

	if math.Abs(in.FireX) > Deadzone || math.Abs(in.FireY) > Deadzone {
		for _, b := range g.player.Fire(math.Atan2(in.FireY, in.FireX), now) {
			g.space.AddBullet(b)
		}
	}
}

// noMoreBaddies reports whether the field and every spawn queue are empty
func (g *Game) noMoreBaddies() bool {
	for _, sp := range g.spawns {
		if sp.QueueLen() != 0 {
			return false
		}
	}
	return g.space.HostileCount() == 0
}

// endRun reports the finished run to the run log
func (g *Game) endRun(now int64) {
	if g.onRunEnd == nil {
		return
	}
	g.onRunEnd(RunSummary{
		Score:      g.player.Score,
		Level:      g.levelIdx + 1,
		Winner:     g.winner,
		DurationMS: now - g.runStart,
	})
}

// resetRun clears all transient pools and queues after the explosion
// finishes, then restarts the campaign.
func (g *Game) resetRun(now int64) {
	g.endRun(now)
	g.stats.Track("player_death", g.ID, "")

	for _, sp := range g.spawns {
		sp.Clear()
		sp.Resume()
	}
	g.player.Reset()
	g.player.SetPos(Vec{X: g.width / 2, Y: g.height / 2})
	g.space.Empty()
	g.levelIdx = 0
	g.winner = false
	g.runStart = now
	g.levels[0].Start(now)
}

// Winner reports whether the campaign has been beaten
func (g *Game) Winner() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

// Score returns the player's current score
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.player.Score
}

// Snapshot renders the full state for the broadcaster
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	gs := GameState{
		Tick:   g.tick,
		Winner: g.winner,
		Player: playerState(g.player),
	}

	if g.levelIdx < len(g.levels) {
		lev := g.levels[g.levelIdx]
		gs.Level = LevelState{
			Index:    g.levelIdx,
			Greeting: lev.Greeting,
			Paused:   lev.Paused(),
		}
	} else {
		gs.Level = LevelState{Index: g.levelIdx}
	}

	for i := range g.space.pool {
		e := &g.space.pool[i]
		if e.dead {
			continue
		}
		switch e.Kind {
		case KindBaddie:
			gs.Baddies = append(gs.Baddies, baddieState(e.Baddie))
		case KindBullet:
			gs.Bullets = append(gs.Bullets, bulletState(e.Bullet))
		case KindUpgrade:
			gs.Upgrades = append(gs.Upgrades, upgradeState(e.Upgrade))
		}
	}
	for _, b := range g.space.bullets {
		if b != nil {
			gs.Bullets = append(gs.Bullets, bulletState(b))
		}
	}
	for _, sp := range g.spawns {
		gs.Spawns = append(gs.Spawns, SpawnState{
			X: round1(sp.Pos().X), Y: round1(sp.Pos().Y), Queued: sp.QueueLen(),
		})
	}
	return gs
}
