// Package timing converts wall-clock readings into a fixed-rate tick stream.
package timing

import (
	"math"
	"time"
)

const (
	previousWeight = 0.9
	currentWeight  = 0.1
)

// Clock reports wall time in seconds.
type Clock interface {
	Now() float64
}

// SystemClock measures seconds elapsed since it was created.
type SystemClock struct {
	origin time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.origin).Seconds()
}

// Pacer turns per-frame wall time samples into whole simulation ticks plus a
// render interpolation factor. Once a wall delta goes negative the pacer stops
// trusting the clock and advances on the smoothed average delta instead.
type Pacer struct {
	tps        int
	maxCatchUp int

	started     bool
	naiveBroken bool
	lastWall    float64
	avgDelta    float64
	simTime     float64
	lastTick    int64
	alpha       float64
	dropped     int64
	ticks       int64
	frames      int
	fps         int
	onDrop      func(n int64)
}

// NewPacer creates a pacer running at tps ticks per second. maxCatchUp bounds
// how many ticks a single frame may run; surplus ticks are skipped. Zero
// means unbounded.
func NewPacer(tps, maxCatchUp int) *Pacer {
	if tps <= 0 {
		tps = 24
	}
	if maxCatchUp < 0 {
		maxCatchUp = 0
	}
	return &Pacer{tps: tps, maxCatchUp: maxCatchUp}
}

// OnDrop registers a callback invoked with the number of ticks skipped by the
// catch-up cap.
func (p *Pacer) OnDrop(fn func(n int64)) {
	p.onDrop = fn
}

// Frame advances the pacer to wall time and runs step once per elapsed tick.
// It returns the number of steps run.
func (p *Pacer) Frame(wall float64, step func()) int {
	first := !p.started
	if first {
		p.started = true
		p.lastWall = wall
	}

	delta := wall - p.lastWall
	p.lastWall = wall
	if delta < 0 {
		p.naiveBroken = true
	}
	p.avgDelta = p.avgDelta*previousWeight + delta*currentWeight
	if p.naiveBroken {
		p.simTime += p.avgDelta
	} else {
		p.simTime = wall
	}

	scaled := p.simTime * float64(p.tps)
	tick := int64(math.Floor(scaled))
	if first {
		p.lastTick = tick
	}

	if p.maxCatchUp > 0 && tick-p.lastTick > int64(p.maxCatchUp) {
		skip := tick - p.lastTick - int64(p.maxCatchUp)
		p.lastTick += skip
		p.dropped += skip
		if p.onDrop != nil {
			p.onDrop(skip)
		}
	}

	ran := 0
	for p.lastTick < tick {
		step()
		p.lastTick++
		p.ticks++
		ran++
		if p.lastTick%int64(p.tps) == 0 {
			p.fps = p.frames
			p.frames = 0
		}
	}

	p.alpha = scaled - float64(tick)
	if p.alpha < 0 {
		p.alpha = 0
	}
	if p.alpha >= 1 {
		p.alpha = math.Nextafter(1, 0)
	}
	return ran
}

// FrameRendered counts a rendered frame for the FPS readout.
func (p *Pacer) FrameRendered() {
	p.frames++
}

// Alpha is the fractional progress into the next tick.
func (p *Pacer) Alpha() float64 { return p.alpha }

// Ticks is the total number of steps run.
func (p *Pacer) Ticks() int64 { return p.ticks }

// Dropped is the number of ticks skipped by the catch-up cap.
func (p *Pacer) Dropped() int64 { return p.dropped }

// FPS is the number of frames rendered during the last simulated second.
func (p *Pacer) FPS() int { return p.fps }

// NaiveTimingBroken reports whether a backward clock jump was ever observed.
func (p *Pacer) NaiveTimingBroken() bool { return p.naiveBroken }

func (p *Pacer) TPS() int { return p.tps }
