// Package obj holds the entities that live in a level: the player, the ball,
// projectiles and scripted props. Positions are in level pixels with y
// pointing up from the bottom of the screen.
package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumpscroller/common"
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/render"
	"github.com/milk9111/jumpscroller/sound"
)

// Assets resolves named sheets and samples.
type Assets interface {
	Sheet(name string) *component.Sheet
	Sample(name string) *sound.Sample
}

// World is the owning scene as seen by its entities.
type World interface {
	Keys() *input.Keys
	Physics() *physics.Engine
	Sound() sound.Engine
	Assets() Assets
	// ScreenHeight is the height y is measured up from.
	ScreenHeight() int
	TPS() int
	// Focus is the sprite the camera tracks, usually the player.
	Focus() *Sprite
}

// Entity is the per-tick contract every level object implements.
type Entity interface {
	Tick()
	Move()
	Animate()
	Render(s render.Surface, camX, camY, alpha float64)
	Base() *Sprite
}

// Sprite is the state shared by every entity.
type Sprite struct {
	physics.Body

	XOld, YOld   float64
	AnimX, AnimY float64
	W, H         int
	Dir          int
	Visible      bool
	Dead         bool

	sheet *component.Sheet
	anim  *component.Animation
	world World
}

func newSprite(w World, form *physics.Form, x, y float64) Sprite {
	return Sprite{
		Body:    physics.Body{X: x, Y: y, Form: form, Standing: true},
		XOld:    x,
		YOld:    y,
		AnimX:   x,
		AnimY:   y,
		Dir:     1,
		Visible: true,
		world:   w,
	}
}

func (s *Sprite) Base() *Sprite { return s }

func (s *Sprite) World() World { return s.world }

func (s *Sprite) Sheet() *component.Sheet { return s.sheet }

func (s *Sprite) Anim() *component.Animation { return s.anim }

// SetAnim swaps the current sheet and animation.
func (s *Sprite) SetAnim(sheet *component.Sheet, a *component.Animation) {
	s.sheet = sheet
	s.anim = a
}

// fitToFrame sizes the sprite to its current frame.
func (s *Sprite) fitToFrame() {
	if s.anim == nil {
		return
	}
	s.W = s.anim.Width()
	s.H = s.anim.Height()
}

// SetDir stores the sign of d.
func (s *Sprite) SetDir(d int) {
	switch {
	case d < 0:
		s.Dir = -1
	case d > 0:
		s.Dir = 1
	default:
		s.Dir = 0
	}
}

// Die hides the sprite and marks it for removal.
func (s *Sprite) Die() {
	s.Visible = false
	s.Dead = true
}

// SaveOld records the position at the start of a tick.
func (s *Sprite) SaveOld() {
	s.XOld = s.X
	s.YOld = s.Y
}

// UpdateCoords runs the physics pass and moves the sprite by its velocity.
func (s *Sprite) UpdateCoords() physics.Event {
	if s.world == nil {
		return 0
	}
	return s.world.Physics().Step(&s.Body)
}

// Interpolate places the render position between the previous and current
// tick.
func (s *Sprite) Interpolate(alpha float64) {
	s.AnimX = common.Lerp(s.XOld, s.X, alpha)
	s.AnimY = common.Lerp(s.YOld, s.Y, alpha)
}

// Position is the sprite centre, used as a sound source.
func (s *Sprite) Position() (float64, float64) {
	return s.X + float64(s.W)/2, s.Y + float64(s.H)/2
}

// Bounds is the hitbox in level coordinates.
func (s *Sprite) Bounds() cp.BB {
	return cp.BB{L: s.X, B: s.Y, R: s.X + float64(s.W), T: s.Y + float64(s.H)}
}

// Overlaps reports whether two visible sprites intersect.
func (s *Sprite) Overlaps(o *Sprite) bool {
	if s == nil || o == nil || !s.Visible || !o.Visible {
		return false
	}
	return s.Bounds().Intersects(o.Bounds())
}

// screenTop converts a y-up position of height h into a top-down screen row.
func (s *Sprite) screenTop(y float64, h int) float64 {
	height := 0
	if s.world != nil {
		height = s.world.ScreenHeight()
	}
	return float64(height) - float64(h) - y
}

// play starts a sample at the sprite position.
func (s *Sprite) play(name string) {
	if s.world == nil || name == "" {
		return
	}
	sample := s.world.Assets().Sample(name)
	if sample == nil {
		return
	}
	s.world.Sound().Play(sample, s, 1, 1)
}

// drawFrame renders the current frame with its top left at (x, screenY).
func (s *Sprite) drawFrame(r render.Surface, x, screenY float64, flip bool) {
	if !s.Visible || s.anim == nil {
		return
	}
	f := s.anim.Frame()
	if f == nil {
		return
	}
	r.DrawFrame(f, x, screenY, flip)
}
