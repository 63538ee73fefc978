// Package render describes the drawing target the simulation renders into.
package render

import (
	"image/color"

	"github.com/milk9111/jumpscroller/component"
)

// Surface accepts draw calls in screen pixels, origin top left.
type Surface interface {
	// DrawFrame blits a sheet frame. flip mirrors it horizontally.
	DrawFrame(f component.Frame, x, y float64, flip bool)
	FillRect(x, y, w, h float64, c color.Color)
	DrawText(s string, x, y int)
	Size() (w, h int)
}

// Call is one recorded draw call.
type Call struct {
	Kind  string
	Frame component.Frame
	X, Y  float64
	W, H  float64
	Flip  bool
	Text  string
	Color color.Color
}

// Recorder is a Surface that remembers what was drawn.
type Recorder struct {
	W, H  int
	Calls []Call
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) DrawFrame(f component.Frame, x, y float64, flip bool) {
	r.Calls = append(r.Calls, Call{Kind: "frame", Frame: f, X: x, Y: y, Flip: flip})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Calls = append(r.Calls, Call{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawText(s string, x, y int) {
	r.Calls = append(r.Calls, Call{Kind: "text", Text: s, X: float64(x), Y: float64(y)})
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

// Reset forgets recorded calls.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns all recorded text draws.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Kind == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}
