package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jumpscroller/component"
	"golang.org/x/image/font/basicfont"
)

var (
	textColor        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	placeholderColor = color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
)

// screenSurface draws scene output onto the ebiten screen.
type screenSurface struct {
	screen *ebiten.Image
	art    *artCache
	face   text.Face
}

func newScreenSurface(art *artCache) *screenSurface {
	return &screenSurface{
		art:  art,
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

func (s *screenSurface) DrawFrame(f component.Frame, x, y float64, flip bool) {
	if f == nil {
		return
	}
	img := s.art.image(f)
	if img == nil {
		w, h := f.Size()
		s.FillRect(x, y, float64(w), float64(h), placeholderColor)
		return
	}
	op := &ebiten.DrawImageOptions{}
	if flip {
		w, _ := f.Size()
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(w), 0)
	}
	op.GeoM.Translate(x, y)
	s.screen.DrawImage(img, op)
}

func (s *screenSurface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *screenSurface) DrawText(str string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(s.screen, str, s.face, op)
}

func (s *screenSurface) Size() (int, int) {
	b := s.screen.Bounds()
	return b.Dx(), b.Dy()
}
