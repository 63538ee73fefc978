package obj

import (
	"testing"

	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
)

func TestResolveStrikesPunchHitsOnce(t *testing.T) {
	w := newTestWorld()
	p := newTestPlayer(w)
	ball := NewTestball(w, physics.Ball, testBallSpec())
	ball.X, ball.Y = 60, 5

	pu := NewPunch(p, testPunchSpec(), 10)
	targets := []Entity{p, ball}

	if hits := ResolveStrikes([]Striker{pu}, targets); hits != 1 {
		t.Fatalf("expected one hit, got %d", hits)
	}
	if ball.XA != 9 {
		t.Fatalf("expected knockback 9, got %v", ball.XA)
	}
	if hits := ResolveStrikes([]Striker{pu}, targets); hits != 0 {
		t.Fatalf("expected punch to hit only once, got %d", hits)
	}
}

func TestResolveStrikesFirebeamPushesEachTick(t *testing.T) {
	w := newTestWorld()
	p := newTestPlayer(w)
	b := NewFirebeam(p, testFirebeamSpec())
	ball := NewTestball(w, physics.Ball, testBallSpec())
	ball.X, ball.Y = b.X+4, b.Y

	for i := 0; i < 3; i++ {
		ResolveStrikes([]Striker{b}, []Entity{ball})
	}
	if want := 3 * 1.2; ball.XA < want-1e-9 || ball.XA > want+1e-9 {
		t.Fatalf("expected xa %v, got %v", want, ball.XA)
	}
}

func TestResolveStrikesMissesInvisible(t *testing.T) {
	w := newTestWorld()
	p := newTestPlayer(w)
	ball := NewTestball(w, physics.Ball, testBallSpec())
	ball.X, ball.Y = 60, 5
	ball.Visible = false

	pu := NewPunch(p, testPunchSpec(), 10)
	if hits := ResolveStrikes([]Striker{pu}, []Entity{ball}); hits != 0 {
		t.Fatalf("expected no hit on invisible sprite, got %d", hits)
	}
}

func TestResolveStrikesBreaksProp(t *testing.T) {
	w := newTestWorld()
	p := newTestPlayer(w)
	spec := testPropSpec("bouncer.tengo")
	spec.Health = 2
	spec.HitFrames = 0
	spec.Audio = append(spec.Audio, prefabs.AudioSpec{Name: "defeat", File: "get_coin"})

	prop, err := NewScripted(w, physics.Normal, spec, 60, 5)
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}

	ResolveStrikes([]Striker{NewPunch(p, testPunchSpec(), 10)}, []Entity{prop})
	if prop.Health().Current != 1 || prop.Dead {
		t.Fatalf("expected 1 hp left, got %v dead=%v", prop.Health().Current, prop.Dead)
	}

	ResolveStrikes([]Striker{NewPunch(p, testPunchSpec(), 10)}, []Entity{prop})
	if !prop.Dead || prop.Visible {
		t.Fatalf("expected prop to break, dead=%v visible=%v", prop.Dead, prop.Visible)
	}
	if w.sound.count("get_coin") != 1 {
		t.Fatalf("expected defeat sample, played %v", w.sound.played)
	}
}

func TestResolveStrikesRespectsHitFrames(t *testing.T) {
	w := newTestWorld()
	p := newTestPlayer(w)
	spec := testPropSpec("bouncer.tengo")
	spec.Health = 3
	spec.HitFrames = 12

	prop, err := NewScripted(w, physics.Normal, spec, 60, 5)
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}
	for i := 0; i < 3; i++ {
		ResolveStrikes([]Striker{NewPunch(p, testPunchSpec(), 10)}, []Entity{prop})
	}
	if prop.Health().Current != 2 {
		t.Fatalf("expected one hit through the hit window, hp=%v", prop.Health().Current)
	}
	if prop.Health().IFrames != 12 {
		t.Fatalf("expected 12 hit frames, got %d", prop.Health().IFrames)
	}
}

func TestUnbreakablePropIgnoresDamage(t *testing.T) {
	w := newTestWorld()
	p := newTestPlayer(w)
	prop, err := NewScripted(w, physics.Normal, testPropSpec("bouncer.tengo"), 60, 5)
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}
	if hits := ResolveStrikes([]Striker{NewPunch(p, testPunchSpec(), 10)}, []Entity{prop}); hits != 1 {
		t.Fatalf("expected a knockback hit, got %d", hits)
	}
	if prop.Health() != nil || prop.Dead {
		t.Fatalf("expected unbreakable prop to survive")
	}
}
