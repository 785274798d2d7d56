package main

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	BinSize   = 50.0 // 1-D size of each bin in px
	BinMargin = 0.2  // fractional cell overlap queried against neighbors
)

// EntityKind tags entries in the hostile pool
type EntityKind byte

const (
	KindBaddie  EntityKind = 'b'
	KindBullet  EntityKind = 'r'
	KindUpgrade EntityKind = 'u'
)

// poolEntry is one slot of the hostile pool. Exactly one pointer matching
// Kind is set; resolution logic switches on Kind exhaustively.
type poolEntry struct {
	Kind    EntityKind
	Baddie  *Baddie
	Bullet  *Bullet
	Upgrade *Upgrade

	dead bool // marked during a tick, compacted after the scan
}

// mover is anything the wall containment logic can steer and push around
type mover interface {
	Move(dx, dy float64)
	BoundingRect() Rect
	Heading() float64
	SetHeading(traj float64)
}

// CollisionSpace is the grid-binned broad phase plus resolution for one
// arena: the hostile pool (baddies, hostile bullets and upgrades
// co-mingled), the player's bullets, and the player itself. All of its
// mutation happens synchronously inside Tick.
type CollisionSpace struct {
	width, height float64
	cols, rows    int

	player  *Player
	pool    []poolEntry // insertion order preserved
	bullets []*Bullet   // player-owned

	bins  [][]int // bin -> pool indices, rebuilt every tick
	rng   *rand.Rand
	stats *Stats
}

// NewCollisionSpace creates the space for a width-by-height arena
func NewCollisionSpace(width, height float64, player *Player, rng *rand.Rand, stats *Stats) *CollisionSpace {
	return &CollisionSpace{
		width:  width,
		height: height,
		cols:   int(width / BinSize),
		rows:   int(height / BinSize),
		player: player,
		rng:    rng,
		stats:  stats,
	}
}

// AddBaddie appends a baddie to the hostile pool
func (cs *CollisionSpace) AddBaddie(b *Baddie) {
	cs.pool = append(cs.pool, poolEntry{Kind: KindBaddie, Baddie: b})
}

// AddUpgrade appends an upgrade to the hostile pool
func (cs *CollisionSpace) AddUpgrade(u *Upgrade) {
	cs.pool = append(cs.pool, poolEntry{Kind: KindUpgrade, Upgrade: u})
}

// AddBullet routes a bullet to the pool its side belongs in
func (cs *CollisionSpace) AddBullet(b *Bullet) {
	switch b.Side {
	case SidePlayer:
		cs.bullets = append(cs.bullets, b)
	case SideHostile:
		cs.pool = append(cs.pool, poolEntry{Kind: KindBullet, Bullet: b})
	default:
		panic(fmt.Sprintf("unknown bullet side: %d", int(b.Side)))
	}
}

// Empty drops everything from both pools (player death / reset)
func (cs *CollisionSpace) Empty() {
	cs.pool = nil
	cs.bullets = nil
}

// HostileCount returns the number of live baddies and hostile bullets.
// Upgrades are excluded: a drifting pickup must not hold up level
// progression.
func (cs *CollisionSpace) HostileCount() int {
	n := 0
	for i := range cs.pool {
		if !cs.pool[i].dead && cs.pool[i].Kind != KindUpgrade {
			n++
		}
	}
	return n
}

// Counts returns live baddie, hostile bullet and upgrade totals
func (cs *CollisionSpace) Counts() (baddies, bullets, upgrades int) {
	for i := range cs.pool {
		if cs.pool[i].dead {
			continue
		}
		switch cs.pool[i].Kind {
		case KindBaddie:
			baddies++
		case KindBullet:
			bullets++
		case KindUpgrade:
			upgrades++
		}
	}
	return
}

// PlayerBulletCount returns the number of live player bullets
func (cs *CollisionSpace) PlayerBulletCount() int {
	n := 0
	for _, b := range cs.bullets {
		if b != nil {
			n++
		}
	}
	return n
}

// Tick advances every pooled entity, rebuilds the bins, and resolves all
// collisions for this frame.
func (cs *CollisionSpace) Tick(now int64) {
	cs.bins = make([][]int, cs.cols*cs.rows)
	playerPos := cs.player.Pos()

	// Tick hostiles and bin them. Entities appended mid-loop (shooter fire,
	// drop rolls) join the pool after index n and sit out this tick.
	n := len(cs.pool)
	for i := 0; i < n; i++ {
		switch cs.pool[i].Kind {
		case KindBaddie:
			for _, b := range cs.pool[i].Baddie.Tick(playerPos, now, cs.rng) {
				cs.AddBullet(b)
			}
			cs.bounce(cs.pool[i].Baddie)
			cs.insert(i, cs.pool[i].Baddie.Pos())
		case KindUpgrade:
			cs.pool[i].Upgrade.Tick()
			cs.bounce(cs.pool[i].Upgrade)
			cs.insert(i, cs.pool[i].Upgrade.Pos())
		case KindBullet:
			cs.pool[i].Bullet.Tick()
			if cs.outOfBounds(cs.pool[i].Bullet.Pos()) {
				cs.pool[i].dead = true
			} else {
				cs.insert(i, cs.pool[i].Bullet.Pos())
			}
		default:
			panic(fmt.Sprintf("unknown entity kind: %q", cs.pool[i].Kind))
		}
	}

	cs.containPlayer()
	cs.scanPlayer()
	cs.scanBullets()
	cs.compact()
}

// scanPlayer checks the player against every hostile in its overlapping
// bins. A baddie or hostile bullet hit ends the scan once the player is
// exploding; upgrades apply immediately and the scan continues.
func (cs *CollisionSpace) scanPlayer() {
	// An exploding player is already hit: nothing touches the wreck
	// until the run resets.
	if cs.player.Exploding {
		return
	}
	pRect := cs.player.BoundingRect()

	for _, bi := range cs.binsFor(cs.player.Pos()) {
		for _, pi := range cs.bins[bi] {
			if cs.pool[pi].dead {
				continue
			}
			hit := false
			switch cs.pool[pi].Kind {
			case KindBaddie:
				hit = cs.pool[pi].Baddie.BoundingRect().Intersects(pRect)
			case KindBullet:
				p := cs.pool[pi].Bullet.Pos()
				hit = pRect.Contains(p.X, p.Y)
			case KindUpgrade:
				if cs.pool[pi].Upgrade.BoundingRect().Intersects(pRect) {
					cs.pool[pi].Upgrade.Apply(cs.player)
					cs.pool[pi].dead = true
					cs.stats.Inc("pickups")
				}
				continue
			default:
				panic(fmt.Sprintf("unknown entity kind: %q", cs.pool[pi].Kind))
			}
			if hit {
				cs.player.Hit()
				cs.pool[pi].dead = true
				// A shield-absorbed hit keeps scanning; only an
				// explosion ends the sweep.
				if cs.player.Exploding {
					break
				}
			}
		}
		if cs.player.Exploding {
			break
		}
	}
}

// scanBullets advances player bullets and resolves at most one kill per
// bullet. Upgrades are never bullet targets, and bullet streaks pass
// through each other.
func (cs *CollisionSpace) scanBullets() {
	for i, b := range cs.bullets {
		if b == nil {
			continue
		}
		b.Tick()
		if cs.outOfBounds(b.Pos()) {
			cs.bullets[i] = nil
			continue
		}

		hit := false
		for _, bi := range cs.binsFor(b.Pos()) {
			for _, pi := range cs.bins[bi] {
				if cs.pool[pi].dead {
					continue
				}
				switch cs.pool[pi].Kind {
				case KindUpgrade, KindBullet:
					continue
				case KindBaddie:
					cs.stats.Inc("comparisons")
					bd := cs.pool[pi].Baddie
					p := b.Pos()
					if bd.BoundingRect().Contains(p.X, p.Y) {
						cs.player.Score += bd.Value
						for _, u := range bd.RollDrops(cs.rng) {
							cs.AddUpgrade(u)
							cs.stats.Inc("drops")
						}
						cs.pool[pi].dead = true
						cs.bullets[i] = nil
						cs.stats.Inc("kills")
						hit = true
					}
				default:
					panic(fmt.Sprintf("unknown entity kind: %q", cs.pool[pi].Kind))
				}
				if hit {
					break
				}
			}
			if hit {
				break
			}
		}
	}
}

// compact applies all deferred removals, preserving insertion order.
// Bin contents go stale here; they are rebuilt at the top of every tick.
func (cs *CollisionSpace) compact() {
	live := cs.pool[:0]
	for _, e := range cs.pool {
		if !e.dead {
			live = append(live, e)
		}
	}
	cs.pool = live

	liveB := cs.bullets[:0]
	for _, b := range cs.bullets {
		if b != nil {
			liveB = append(liveB, b)
		}
	}
	cs.bullets = liveB
}

// bounce reflects the heading off any violated wall and nudges one unit at
// a time until back in bounds, robust to arbitrary overshoot.
func (cs *CollisionSpace) bounce(m mover) {
	r := m.BoundingRect()
	if r.Left <= 0 || r.Right >= cs.width {
		m.SetHeading(math.Pi - m.Heading())
		for m.BoundingRect().Left <= 0 {
			m.Move(1, 0)
		}
		for m.BoundingRect().Right >= cs.width {
			m.Move(-1, 0)
		}
	}
	if r.Top <= 0 || r.Bottom >= cs.height {
		m.SetHeading(-m.Heading())
		for m.BoundingRect().Top <= 0 {
			m.Move(0, 1)
		}
		for m.BoundingRect().Bottom >= cs.height {
			m.Move(0, -1)
		}
	}
}

// containPlayer pushes the player back in bounds without reflecting its
// heading; the input provider decides where it goes next.
func (cs *CollisionSpace) containPlayer() {
	for cs.player.BoundingRect().Left <= 0 {
		cs.player.Move(1, 0)
	}
	for cs.player.BoundingRect().Right >= cs.width {
		cs.player.Move(-1, 0)
	}
	for cs.player.BoundingRect().Top <= 0 {
		cs.player.Move(0, 1)
	}
	for cs.player.BoundingRect().Bottom >= cs.height {
		cs.player.Move(0, -1)
	}
}

func (cs *CollisionSpace) outOfBounds(p Vec) bool {
	return p.X < 0 || p.Y < 0 || p.X > cs.width || p.Y > cs.height
}

// primaryBin returns the clamped cell coordinates for a position, plus
// whether each axis was clamped (clamped axes skip margin expansion).
func (cs *CollisionSpace) primaryBin(pos Vec) (i, j int, skipCol, skipRow bool) {
	fx := pos.X / cs.width * float64(cs.cols)
	fy := pos.Y / cs.height * float64(cs.rows)
	i, j = int(fx), int(fy)
	// Compare the floats, not the truncated ints: int() rounds toward
	// zero, so a position just left of the arena still truncates to 0.
	if fx < 0 {
		i, skipCol = 0, true
	} else if i >= cs.cols {
		i, skipCol = cs.cols-1, true
	}
	if fy < 0 {
		j, skipRow = 0, true
	} else if j >= cs.rows {
		j, skipRow = cs.rows-1, true
	}
	return
}

// insert places a pool index into its primary bin
func (cs *CollisionSpace) insert(poolIdx int, pos Vec) {
	i, j, _, _ := cs.primaryBin(pos)
	cs.bins[j*cs.cols+i] = append(cs.bins[j*cs.cols+i], poolIdx)
}

// binsFor returns the bins a query position overlaps, in fixed scan order:
// primary, column neighbor, row neighbor, diagonal. Within the margin of a
// cell edge the neighboring cell on that axis is included; the diagonal is
// added only next to whichever column neighbor was already picked, so a
// corner query covers at most four bins and never the opposite diagonal.
func (cs *CollisionSpace) binsFor(pos Vec) []int {
	fx := pos.X / cs.width * float64(cs.cols)
	fy := pos.Y / cs.height * float64(cs.rows)
	i, j, skipCol, skipRow := cs.primaryBin(pos)
	iFrac := fx - float64(i)
	jFrac := fy - float64(j)

	left, right := false, false
	bins := []int{j*cs.cols + i}

	if !skipCol {
		if iFrac < BinMargin {
			if i > 0 {
				left = true
				bins = append(bins, j*cs.cols+i-1)
			}
		} else if iFrac > 1-BinMargin {
			if i < cs.cols-1 {
				right = true
				bins = append(bins, j*cs.cols+i+1)
			}
		}
	}

	if !skipRow {
		if jFrac < BinMargin {
			if j > 0 {
				bins = append(bins, (j-1)*cs.cols+i)
				if left {
					bins = append(bins, (j-1)*cs.cols+i-1)
				} else if right {
					bins = append(bins, (j-1)*cs.cols+i+1)
				}
			}
		} else if jFrac > 1-BinMargin {
			if j < cs.rows-1 {
				bins = append(bins, (j+1)*cs.cols+i)
				if left {
					bins = append(bins, (j+1)*cs.cols+i-1)
				} else if right {
					bins = append(bins, (j+1)*cs.cols+i+1)
				}
			}
		}
	}

	return bins
}
