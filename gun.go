package main

import "math"

const (
	BulletSpeed   = 8.0
	BulletTrail   = 10.0 // rendered tail length
	BulletFanStep = 0.04 // radians between adjacent bullets in a fan
)

// Side tags a bullet with its owner's allegiance, which decides what pool
// it joins and what it may damage.
type Side int

const (
	SidePlayer Side = iota
	SideHostile
)

// Bullet is a straight-flying projectile
type Bullet struct {
	Side  Side
	Color Color

	pos  Vec
	traj float64
}

// NewBullet creates a bullet at pos heading along traj
func NewBullet(pos Vec, traj float64, side Side) *Bullet {
	return &Bullet{
		Side:  side,
		Color: Color{R: 255},
		pos:   pos,
		traj:  NormalizeAngle(traj),
	}
}

// Pos returns the bullet's position
func (b *Bullet) Pos() Vec { return b.pos }

// Heading returns the bullet's heading
func (b *Bullet) Heading() float64 { return b.traj }

// Tick advances the bullet one step along its heading
func (b *Bullet) Tick() {
	b.pos.X += BulletSpeed * math.Cos(b.traj)
	b.pos.Y += BulletSpeed * math.Sin(b.traj)
}

// TailPos returns the trailing end of the bullet's rendered streak
func (b *Bullet) TailPos() Vec {
	return Vec{
		X: b.pos.X - BulletTrail*math.Cos(b.traj),
		Y: b.pos.Y - BulletTrail*math.Sin(b.traj),
	}
}

// Gun fires fans of bullets. Power N produces 2N+1 bullets per shot.
// Rate limiting is the owner's concern; the gun itself is stateless.
type Gun struct {
	Power int
	Side  Side
}

// NewGun creates a gun of the given power
func NewGun(power int, side Side) *Gun {
	return &Gun{Power: power, Side: side}
}

// Fire produces one fan of bullets centered on traj
func (g *Gun) Fire(pos Vec, traj float64) []*Bullet {
	bullets := make([]*Bullet, 0, 2*g.Power+1)
	for i := -g.Power; i <= g.Power; i++ {
		bullets = append(bullets, NewBullet(pos, traj+float64(i)*BulletFanStep, g.Side))
	}
	return bullets
}
