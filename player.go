package main

const (
	PlayerSize      = 5.0
	PlayerSpeed     = 4.0
	PlayerFireDelay = 100  // ms between shots
	ExplosionStep   = 0.5  // explosion progress per tick
	ExplosionDone   = 30.0 // progress at which the run is over
)

// playerShape is the player's line-art polygon
var playerShape = []Vec{
	{0, -1}, {2, -1}, {0, -2}, {-2, -1},
	{-2, 1}, {0, 2}, {2, 1}, {0, 1},
}

// Player is the singleton controllable ship. It is never pooled in the
// collision space; the space scans its bins against the player instead.
type Player struct {
	Ship
	Gun     *Gun
	Score   int
	Shields int

	Exploding bool
	ExplProg  float64

	lastFire  int64
	fireDelay int64
}

// NewPlayer creates a player at the given position
func NewPlayer(pos Vec) *Player {
	p := &Player{
		Ship: NewShip(Color{R: 200, G: 200, B: 255}, playerShape, pos, 0, PlayerSize),
	}
	p.Reset()
	return p
}

// Reset restores the player's run state: base gun, base speed, zero score.
// Shields carry over from run to run.
func (p *Player) Reset() {
	p.lastFire = 0
	p.fireDelay = PlayerFireDelay
	p.Exploding = false
	p.ExplProg = 0
	p.Gun = NewGun(0, SidePlayer)
	p.Speed = PlayerSpeed
	p.Score = 0
}

// okayToFire checks the cooldown against the monotonic clock and, on
// success, stamps the shot.
func (p *Player) okayToFire(now int64) bool {
	if p.lastFire+p.fireDelay <= now {
		p.lastFire = now
		return true
	}
	return false
}

// Fire shoots the gun toward traj. Returns no bullets while cooling down.
func (p *Player) Fire(traj float64, now int64) []*Bullet {
	if !p.okayToFire(now) {
		return nil
	}
	return p.Gun.Fire(p.Pos(), traj)
}

// Hit applies one incoming hit: shields absorb it if any remain,
// otherwise the player starts exploding.
func (p *Player) Hit() {
	if p.Shields <= 0 {
		p.Exploding = true
		return
	}
	p.Shields--
}
