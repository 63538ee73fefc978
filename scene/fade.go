package scene

import (
	"image/color"

	"github.com/milk9111/jumpscroller/render"
)

// Fade is a full screen black overlay that ramps over Duration ticks.
// A fade out holds at black until a fade in starts.
type Fade struct {
	Duration int

	frames int
	out    bool
	active bool
}

func NewFade(duration int) *Fade {
	return &Fade{Duration: max(duration, 1)}
}

// Out starts ramping to black.
func (f *Fade) Out() {
	f.active = true
	f.out = true
	f.frames = 0
}

// In starts ramping from black back to the scene.
func (f *Fade) In() {
	f.active = true
	f.out = false
	f.frames = 0
}

func (f *Fade) Active() bool { return f.active }

func (f *Fade) Tick() {
	if !f.active {
		return
	}
	if f.frames < f.Duration {
		f.frames++
	}
	if !f.out && f.frames >= f.Duration {
		f.active = false
	}
}

// Alpha is the overlay opacity in [0, 1].
func (f *Fade) Alpha() float64 {
	if !f.active {
		return 0
	}
	p := float64(f.frames) / float64(f.Duration)
	if f.out {
		return min(p, 1)
	}
	return max(1-p, 0)
}

func (f *Fade) Render(s render.Surface) {
	a := f.Alpha()
	if a <= 0 {
		return
	}
	w, h := s.Size()
	s.FillRect(0, 0, float64(w), float64(h), color.NRGBA{A: uint8(a * 0xff)})
}
