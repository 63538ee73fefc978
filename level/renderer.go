package level

import (
	"image/color"

	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/render"
)

const (
	animatedFrames   = 4
	animatedInterval = 6
	markerSize       = 4
)

var (
	blockColor   = color.NRGBA{R: 0xff, A: 0xff}
	specialColor = color.NRGBA{R: 0xff, G: 0xaf, B: 0xaf, A: 0xff}
	bumpColor    = color.NRGBA{B: 0xff, A: 0xff}
	breakColor   = color.NRGBA{G: 0xff, A: 0xff}
	pickupColor  = color.NRGBA{R: 0xff, G: 0xff, A: 0xff}
)

// Renderer draws the visible part of a level from a tile sheet whose frames
// are laid out row by row, tile index = row*columns + column.
type Renderer struct {
	level *Level
	sheet *component.Sheet
	tile  int
	tick  int

	// ShowBehaviors overlays collision markers on every tile.
	ShowBehaviors bool
}

func NewRenderer(l *Level, sheet *component.Sheet, tile int) *Renderer {
	return &Renderer{level: l, sheet: sheet, tile: tile}
}

// SetLevel swaps the level being drawn.
func (r *Renderer) SetLevel(l *Level) { r.level = l }

// Tick advances animated tiles.
func (r *Renderer) Tick() { r.tick++ }

func (r *Renderer) frameFor(b byte) component.Frame {
	cols := len(r.sheet.Row(0))
	if cols == 0 {
		return nil
	}
	row, col := int(b)/cols, int(b)%cols
	if r.level.behaviors.Has(b, Animated) {
		col += (r.tick / animatedInterval) % animatedFrames
		if col >= cols {
			col %= cols
		}
	}
	return r.sheet.Frame(row, col)
}

// Render draws the tiles visible through a viewport whose top left corner is
// camX, camY in level pixels.
func (r *Renderer) Render(s render.Surface, camX, camY int) {
	w, h := s.Size()
	t := r.tile
	for x := camX / t; x <= (camX+w)/t; x++ {
		for y := camY / t; y <= (camY+h)/t; y++ {
			if x >= r.level.width || y >= r.level.height {
				continue
			}
			b := r.level.Block(x, y)
			sx := float64(x*t - camX)
			sy := float64(y*t - camY)
			if b != 0 {
				if f := r.frameFor(b); f != nil {
					s.DrawFrame(f, sx, sy, false)
				}
			}
			if r.ShowBehaviors {
				r.renderBehavior(s, r.level.behaviors.Get(b), sx, sy)
			}
		}
	}
}

func (r *Renderer) renderBehavior(s render.Surface, b Behavior, x, y float64) {
	t := float64(r.tile)
	m := float64(markerSize)
	if b&BlockUpper != 0 || b&BlockAll != 0 {
		s.FillRect(x, y, t, m, blockColor)
	}
	if b&BlockAll != 0 {
		s.FillRect(x, y+t-m, t, m, blockColor)
		s.FillRect(x, y, m, t, blockColor)
		s.FillRect(x+t-m, y, m, t, blockColor)
	}
	if b&BlockLower != 0 {
		s.FillRect(x, y+t-m, t, m, blockColor)
	}
	if b&Special != 0 {
		s.FillRect(x+2*m+2, y+3*m, 2*m, 2*m, specialColor)
	}
	if b&Bumpable != 0 {
		s.FillRect(x+m, y+m, 2*m, 2*m, bumpColor)
	}
	if b&Breakable != 0 {
		s.FillRect(x+3*m, y+m, 2*m, 2*m, breakColor)
	}
	if b&Pickupable != 0 {
		s.FillRect(x+m, y+3*m, 2*m, 2*m, pickupColor)
	}
}
