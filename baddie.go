package main

import (
	"fmt"
	"math"
	"math/rand"
)

// BaddieType is the closed set of hostile ship variants
type BaddieType int

const (
	BaddieWiggler BaddieType = iota
	BaddieFastWiggler
	BaddieHomer
	BaddieShooter
)

const (
	BaddieSize      = 5.0
	WigglerJitter   = 0.1  // max heading delta per tick, radians
	ShooterFireRate = 4000 // ms between shots
	ShooterTurnPct  = 1    // %-per-tick chance of picking a new heading
)

// dropEntry gives one upgrade kind a 1-in-Denom chance on death
type dropEntry struct {
	Kind  UpgradeKind
	Denom int
}

// baddieDef fixes the per-variant stats
type baddieDef struct {
	Color Color
	Shape []Vec
	Speed float64
	Score int
	Drops []dropEntry
}

var baddieDefs = map[BaddieType]baddieDef{
	BaddieWiggler: {
		Color: Color{G: 255},
		Shape: []Vec{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}},
		Speed: 1,
		Score: 200,
		Drops: []dropEntry{
			{UpgradeWeapon, 200}, {UpgradeSpeed, 200}, {UpgradeShield, 200},
		},
	},
	BaddieFastWiggler: {
		Color: Color{R: 255, G: 127, B: 127},
		Shape: []Vec{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}},
		Speed: 2,
		Score: 400,
		Drops: []dropEntry{
			{UpgradeWeapon, 200}, {UpgradeSpeed, 200}, {UpgradeShield, 200},
		},
	},
	BaddieHomer: {
		Color: Color{R: 255, B: 255},
		Shape: []Vec{{2, 0}, {0, -1}, {-2, 0}, {0, 1}},
		Speed: 2,
		Score: 100,
		Drops: []dropEntry{
			{UpgradeWeapon, 300}, {UpgradeSpeed, 100}, {UpgradeShield, 200},
		},
	},
	BaddieShooter: {
		Color: Color{R: 255, B: 127},
		Shape: []Vec{{1, 0}, {-1, -1}, {-1, 1}},
		Speed: 2,
		Score: 200,
		Drops: []dropEntry{
			{UpgradeWeapon, 100}, {UpgradeSpeed, 400}, {UpgradeShield, 200},
		},
	},
}

// String names the variant for logs and state broadcasts
func (t BaddieType) String() string {
	switch t {
	case BaddieWiggler:
		return "wiggler"
	case BaddieFastWiggler:
		return "fastwiggler"
	case BaddieHomer:
		return "homer"
	case BaddieShooter:
		return "shooter"
	}
	return fmt.Sprintf("baddie(%d)", int(t))
}

// Baddie is a hostile ship. Behavior dispatches on Type; there is no
// default behavior to fall back on.
type Baddie struct {
	Ship
	Type  BaddieType
	Value int // score awarded on kill

	drops []dropEntry

	// shooter state
	gun       *Gun
	lastFired int64
}

// NewBaddie creates a baddie of the given variant. Unknown variants are a
// programmer error.
func NewBaddie(t BaddieType, pos Vec, traj float64) *Baddie {
	def, ok := baddieDefs[t]
	if !ok {
		panic(fmt.Sprintf("unknown baddie type: %d", int(t)))
	}
	b := &Baddie{
		Ship:  NewShip(def.Color, def.Shape, pos, traj, BaddieSize),
		Type:  t,
		Value: def.Score,
		drops: def.Drops,
	}
	b.Speed = def.Speed
	if t == BaddieShooter {
		b.gun = NewGun(0, SideHostile)
	}
	return b
}

// Tick runs one frame of variant behavior. playerPos is the player's
// current position, passed in so pursuit variants need no global lookup.
// Returns any bullets fired this tick.
func (b *Baddie) Tick(playerPos Vec, now int64, rng *rand.Rand) []*Bullet {
	switch b.Type {
	case BaddieWiggler, BaddieFastWiggler:
		b.Rotate(rng.Float64()*2*WigglerJitter - WigglerJitter)
		b.MoveForward(1)
		return nil

	case BaddieHomer:
		dx := playerPos.X - b.Pos().X
		dy := playerPos.Y - b.Pos().Y
		b.SetHeading(math.Atan2(dy, dx))
		b.MoveForward(1)
		return nil

	case BaddieShooter:
		if rng.Intn(100) < ShooterTurnPct {
			b.SetHeading(float64(rng.Intn(200)) * math.Pi / 100)
		}
		b.MoveForward(1)
		if b.lastFired+ShooterFireRate <= now {
			b.lastFired = now
			return b.gun.Fire(b.Pos(), b.Heading())
		}
		return nil
	}
	panic(fmt.Sprintf("unknown baddie type: %d", int(b.Type)))
}

// RollDrops samples the variant's drop table. Each entry succeeds
// independently, so one death may yield several upgrades (or none).
func (b *Baddie) RollDrops(rng *rand.Rand) []*Upgrade {
	var ups []*Upgrade
	for _, d := range b.drops {
		if rng.Intn(d.Denom) < 1 {
			ups = append(ups, NewUpgrade(d.Kind, b.Pos(), rng))
		}
	}
	return ups
}
