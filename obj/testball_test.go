package obj

import (
	"math"
	"testing"

	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
)

func testBallSpec() *prefabs.BallSpec {
	return &prefabs.BallSpec{
		Name:          "testball",
		Sheet:         "testball",
		Transform:     prefabs.TransformSpec{X: 700, Y: 5},
		GroundSpeed:   6,
		AirSpeed:      2.5,
		SpeedLimit:    50,
		UpwaySpeed:    5,
		JumpWatershed: 10,
		MaxJumps:      19,
		AnimInterval:  4,
	}
}

func TestTestballBouncesWithFewerJumps(t *testing.T) {
	w := newTestWorld()
	b := NewTestball(w, physics.Ball, testBallSpec())
	b.OnGround = true
	b.Tick()

	if b.Jumps() != 18 {
		t.Fatalf("expected 18 jumps left, got %d", b.Jumps())
	}
	if !b.Jumping || b.OnGround {
		t.Fatalf("expected ball in the air")
	}
	if b.jumpTime != 17 {
		t.Fatalf("expected jump time 17, got %d", b.jumpTime)
	}
	if w.sound.count("shell_bump") != 1 {
		t.Fatalf("expected bump sample, played %v", w.sound.played)
	}
}

func TestTestballReset(t *testing.T) {
	w := newTestWorld()
	b := NewTestball(w, physics.Ball, testBallSpec())
	b.jumps = 2
	b.XA, b.YA = 10, -4
	hold(w, b, 1, input.Attack3)

	if b.Jumps() != 19 {
		t.Fatalf("expected jumps reset to 19, got %d", b.Jumps())
	}
	// Reset puts the ball at the top, then one integration step runs.
	if want := float64(640 - testFrameH); b.Y >= want || b.Y < want-6 {
		t.Fatalf("expected ball just below %v, got %v", want, b.Y)
	}
	if b.XA != 0 {
		t.Fatalf("expected xa reset, got %v", b.XA)
	}
}

func TestTestballSpeedLimit(t *testing.T) {
	w := newTestWorld()
	b := NewTestball(w, physics.Ball, testBallSpec())
	b.OnGround = true
	b.jumps = 0
	b.XA = 48
	hold(w, b, 1, input.Right)

	if want := 50 * physics.Ball.GroundInertia; math.Abs(b.XA-want) > 1e-9 {
		t.Fatalf("expected xa %v after clamp and inertia, got %v", want, b.XA)
	}
}
