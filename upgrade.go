package main

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	UpgradeExtent = 20.0 // bounding box side
	UpgradeDrift  = 1.0  // drift per tick
)

// UpgradeKind is what an upgrade does when picked up
type UpgradeKind int

const (
	UpgradeWeapon UpgradeKind = iota // gun power +1
	UpgradeSpeed                     // max speed +1
	UpgradeShield                    // shields +1
)

// String names the kind for logs and state broadcasts
func (k UpgradeKind) String() string {
	switch k {
	case UpgradeWeapon:
		return "weapon"
	case UpgradeSpeed:
		return "speed"
	case UpgradeShield:
		return "shield"
	}
	return fmt.Sprintf("upgrade(%d)", int(k))
}

// Upgrade is a pickup dropped by a dying baddie. It drifts on a random
// heading, bounces off walls and never expires.
type Upgrade struct {
	Kind  UpgradeKind
	Color Color

	pos   Vec
	traj  float64
	rect  Rect
	stale bool
}

// NewUpgrade creates an upgrade at pos with a random drift heading and color
func NewUpgrade(kind UpgradeKind, pos Vec, rng *rand.Rand) *Upgrade {
	return &Upgrade{
		Kind: kind,
		Color: Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		},
		pos:   pos,
		traj:  float64(rng.Intn(200)) * math.Pi / 100,
		stale: true,
	}
}

// Pos returns the upgrade's position
func (u *Upgrade) Pos() Vec { return u.pos }

// Heading returns the drift heading
func (u *Upgrade) Heading() float64 { return u.traj }

// SetHeading changes the drift heading (wall bounces use this)
func (u *Upgrade) SetHeading(traj float64) {
	u.stale = true
	u.traj = NormalizeAngle(traj)
}

// Move translates the upgrade by (dx, dy)
func (u *Upgrade) Move(dx, dy float64) {
	u.stale = true
	u.pos.X += dx
	u.pos.Y += dy
}

// Tick drifts the upgrade one step along its heading
func (u *Upgrade) Tick() {
	u.stale = true
	u.pos.X += UpgradeDrift * math.Cos(u.traj)
	u.pos.Y += UpgradeDrift * math.Sin(u.traj)
}

// BoundingRect returns the cached fixed-size box around the position
func (u *Upgrade) BoundingRect() Rect {
	if u.stale {
		u.rect = RectAround(u.pos.X, u.pos.Y, UpgradeExtent, UpgradeExtent)
		u.stale = false
	}
	return u.rect
}

// Apply grants the upgrade's effect to the player
func (u *Upgrade) Apply(p *Player) {
	switch u.Kind {
	case UpgradeWeapon:
		p.Gun.Power++
	case UpgradeSpeed:
		p.Speed++
	case UpgradeShield:
		p.Shields++
	default:
		panic(fmt.Sprintf("unknown upgrade kind: %d", int(u.Kind)))
	}
}
