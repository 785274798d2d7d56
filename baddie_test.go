package main

import (
	"math"
	"math/rand"
	"testing"
)

func TestHomerTracksPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBaddie(BaddieHomer, Vec{X: 100, Y: 100}, 0)

	b.Tick(Vec{X: 200, Y: 200}, 0, rng)
	if math.Abs(b.Heading()-math.Pi/4) > 1e-9 {
		t.Errorf("homer should head straight for the player: got %f", b.Heading())
	}

	want := 100 + 2*math.Cos(math.Pi/4)
	if math.Abs(b.Pos().X-want) > 1e-9 || math.Abs(b.Pos().Y-want) > 1e-9 {
		t.Errorf("homer should close at full speed: got %+v", b.Pos())
	}
}

func TestWigglerJitterBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := NewBaddie(BaddieWiggler, Vec{X: 400, Y: 300}, math.Pi)

	for i := 0; i < 1000; i++ {
		before := b.Heading()
		b.Tick(Vec{X: 0, Y: 0}, 0, rng)
		delta := math.Abs(b.Heading() - before)
		if delta > math.Pi {
			delta = 2*math.Pi - delta
		}
		if delta > WigglerJitter+1e-9 {
			t.Fatalf("tick %d: heading jumped by %f, limit %f", i, delta, WigglerJitter)
		}
	}
}

func TestShooterFireRate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := NewBaddie(BaddieShooter, Vec{X: 400, Y: 300}, 0)

	if got := b.Tick(Vec{}, ShooterFireRate-1, rng); got != nil {
		t.Error("should not fire before the rate interval elapses")
	}
	if got := b.Tick(Vec{}, ShooterFireRate, rng); len(got) != 1 {
		t.Errorf("expected 1 bullet at the interval, got %d", len(got))
	}
	if got := b.Tick(Vec{}, ShooterFireRate+100, rng); got != nil {
		t.Error("should not fire again immediately after shooting")
	}
	if got := b.Tick(Vec{}, 2*ShooterFireRate, rng); len(got) != 1 {
		t.Error("should fire once the interval elapses again")
	}
}

func TestShooterBulletsAreHostile(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	b := NewBaddie(BaddieShooter, Vec{X: 400, Y: 300}, 0)
	bullets := b.Tick(Vec{}, ShooterFireRate, rng)
	if len(bullets) != 1 || bullets[0].Side != SideHostile {
		t.Fatalf("shooter bullets must be hostile: %+v", bullets)
	}
}

func TestBaddieValues(t *testing.T) {
	cases := []struct {
		typ   BaddieType
		value int
		speed float64
	}{
		{BaddieWiggler, 200, 1},
		{BaddieFastWiggler, 400, 2},
		{BaddieHomer, 100, 2},
		{BaddieShooter, 200, 2},
	}
	for _, c := range cases {
		b := NewBaddie(c.typ, Vec{X: 100, Y: 100}, 0)
		if b.Value != c.value {
			t.Errorf("%v: value %d, want %d", c.typ, b.Value, c.value)
		}
		if b.Speed != c.speed {
			t.Errorf("%v: speed %f, want %f", c.typ, b.Speed, c.speed)
		}
	}
}

func TestUnknownBaddieTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown baddie type")
		}
	}()
	NewBaddie(BaddieType(99), Vec{}, 0)
}

func TestDropRates(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := NewBaddie(BaddieWiggler, Vec{X: 100, Y: 100}, 0)

	// Three independent 1-in-200 rolls per death. Over 20k deaths the
	// total drop count concentrates hard around 300; the bounds sit
	// over eight standard deviations out.
	total := 0
	kinds := make(map[UpgradeKind]int)
	for i := 0; i < 20000; i++ {
		for _, u := range b.RollDrops(rng) {
			total++
			kinds[u.Kind]++
		}
	}
	if total < 150 || total > 450 {
		t.Errorf("drop total %d far outside expected 300", total)
	}
	for _, k := range []UpgradeKind{UpgradeWeapon, UpgradeSpeed, UpgradeShield} {
		if kinds[k] == 0 {
			t.Errorf("kind %v never dropped in 20k deaths", k)
		}
	}
}

func TestUpgradeApply(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	p := NewPlayer(Vec{X: 400, Y: 300})

	NewUpgrade(UpgradeWeapon, Vec{}, rng).Apply(p)
	NewUpgrade(UpgradeSpeed, Vec{}, rng).Apply(p)
	NewUpgrade(UpgradeShield, Vec{}, rng).Apply(p)

	if p.Gun.Power != 1 {
		t.Errorf("weapon upgrade should raise power to 1, got %d", p.Gun.Power)
	}
	if p.Speed != PlayerSpeed+1 {
		t.Errorf("speed upgrade should raise speed to %f, got %f", PlayerSpeed+1, p.Speed)
	}
	if p.Shields != 1 {
		t.Errorf("shield upgrade should raise shields to 1, got %d", p.Shields)
	}
}
