package physics

import "math"

const (
	Gravity      = 1.4
	AirDrag      = 0.85
	InertiaLimit = 0.5
	GroundHeight = 5
)

// Event reports what a single Affect call changed.
type Event uint8

const (
	// EventTerminalFall fires when vertical speed is clamped to the form's
	// downway speed.
	EventTerminalFall Event = 1 << iota
	// EventStopped fires when inertia brings horizontal speed to rest.
	EventStopped
)

func (e Event) Has(flag Event) bool { return e&flag != 0 }

// Body is the kinematic state the integrator works on.
type Body struct {
	X, Y     float64
	XA, YA   float64
	Jumping  bool
	OnGround bool
	Standing bool
	Form     *Form
}

// Engine applies per-tick velocity decay. The multipliers are per tick and
// not scaled by elapsed time, so callers must run it at a fixed rate.
type Engine struct {
	Gravity      float64
	AirDrag      float64
	InertiaLimit float64
	GroundHeight float64
}

func NewEngine() *Engine {
	return &Engine{
		Gravity:      Gravity,
		AirDrag:      AirDrag,
		InertiaLimit: InertiaLimit,
		GroundHeight: GroundHeight,
	}
}

// Affect updates b's velocity: gravity, then inertia, then air drag.
func (e *Engine) Affect(b *Body) Event {
	if b == nil || b.Form.Skips() {
		return 0
	}
	var ev Event
	f := b.Form

	if !b.Jumping && b.Y > e.GroundHeight {
		if b.YA > f.DownwaySpeed {
			b.YA = f.DownwaySpeed
			ev |= EventTerminalFall
		} else if b.YA < 0 && b.YA > f.FallingSpeedLimit {
			b.YA = math.Max(b.YA*e.Gravity, f.FallingSpeedLimit)
		}
	}

	if b.OnGround {
		b.XA *= f.GroundInertia
	} else {
		b.XA *= f.AirInertia
	}
	if math.Abs(b.XA) < e.InertiaLimit {
		if b.XA != 0 || !b.Standing {
			ev |= EventStopped
		}
		b.XA = 0
		b.Standing = true
	}

	if b.Jumping && b.YA > 0 {
		b.YA *= e.AirDrag
	}
	return ev
}

// Integrate moves b by its velocity.
func (e *Engine) Integrate(b *Body) {
	b.X += b.XA
	b.Y += b.YA
}

// Step runs Affect then Integrate.
func (e *Engine) Step(b *Body) Event {
	ev := e.Affect(b)
	e.Integrate(b)
	return ev
}
