package timing

import (
	"math"
	"testing"
)

func TestPacerConstantDelta(t *testing.T) {
	tests := []struct {
		name  string
		tps   int
		delta float64
		count int
	}{
		{name: "60hz frames", tps: 24, delta: 1.0 / 60, count: 600},
		{name: "slow frames", tps: 24, delta: 0.1, count: 100},
		{name: "fast ticks", tps: 100, delta: 0.003, count: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacer(tt.tps, 0)
			steps := 0
			wall := 5.0
			for i := 0; i < tt.count; i++ {
				p.Frame(wall, func() { steps++ })
				if a := p.Alpha(); a < 0 || a >= 1 {
					t.Fatalf("alpha out of range: %v", a)
				}
				wall += tt.delta
			}
			elapsed := tt.delta * float64(tt.count-1)
			want := int(math.Floor(elapsed * float64(tt.tps)))
			if steps < want-1 || steps > want+1 {
				t.Fatalf("expected about %d ticks, got %d", want, steps)
			}
			if int64(steps) != p.Ticks() {
				t.Fatalf("Ticks() = %d, counted %d", p.Ticks(), steps)
			}
		})
	}
}

func TestPacerFirstFrameSeedsWithoutCatchUp(t *testing.T) {
	p := NewPacer(24, 0)
	steps := 0
	p.Frame(1000, func() { steps++ })
	if steps != 0 {
		t.Fatalf("expected no catch-up on the first frame, got %d", steps)
	}
}

func TestPacerClockRollback(t *testing.T) {
	p := NewPacer(24, 0)
	steps := 0
	wall := 0.0
	history := []int{}
	for i := 0; i < 50; i++ {
		p.Frame(wall, func() { steps++ })
		history = append(history, steps)
		wall += 0.02
	}

	wall -= 0.5
	p.Frame(wall, func() { steps++ })
	history = append(history, steps)
	if !p.NaiveTimingBroken() {
		t.Fatalf("expected rollback to be detected")
	}

	for i := 0; i < 200; i++ {
		wall += 0.02
		p.Frame(wall, func() { steps++ })
		history = append(history, steps)
	}

	for i := 1; i < len(history); i++ {
		if history[i] < history[i-1] {
			t.Fatalf("tick count decreased at frame %d: %d -> %d", i, history[i-1], history[i])
		}
	}
	if history[len(history)-1] <= history[51] {
		t.Fatalf("expected ticks to keep advancing after rollback, stuck at %d", history[51])
	}
}

func TestPacerCatchUpCap(t *testing.T) {
	p := NewPacer(24, 10)
	var dropped int64
	p.OnDrop(func(n int64) { dropped += n })

	steps := 0
	p.Frame(0, func() { steps++ })
	ran := p.Frame(60, func() { steps++ })
	if ran != 10 {
		t.Fatalf("expected capped frame to run 10 ticks, got %d", ran)
	}
	if dropped != 24*60-10 || p.Dropped() != dropped {
		t.Fatalf("unexpected dropped count %d (pacer %d)", dropped, p.Dropped())
	}

	ran = p.Frame(60.05, func() { steps++ })
	if ran != 1 {
		t.Fatalf("expected a single tick after the cap, got %d", ran)
	}
}

func TestPacerFPS(t *testing.T) {
	p := NewPacer(10, 0)
	wall := 0.0
	for i := 0; i < 100; i++ {
		p.Frame(wall, func() {})
		p.FrameRendered()
		wall += 0.05
	}
	if fps := p.FPS(); fps < 19 || fps > 21 {
		t.Fatalf("expected about 20 fps, got %d", fps)
	}
}
