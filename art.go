package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpscroller/assets"
	"github.com/milk9111/jumpscroller/component"
)

// artCache uploads each decoded sheet image once and hands out sub-images
// for its frames.
type artCache struct {
	images map[image.Image]*ebiten.Image
}

func newArtCache() *artCache {
	return &artCache{images: map[image.Image]*ebiten.Image{}}
}

// image returns the ebiten image for a sheet frame, or nil for frames that
// carry no pixels such as placeholders.
func (a *artCache) image(f component.Frame) *ebiten.Image {
	af, ok := f.(assets.Frame)
	if !ok || af.Image == nil {
		return nil
	}
	src, ok := a.images[af.Image]
	if !ok {
		src = ebiten.NewImageFromImage(af.Image)
		a.images[af.Image] = src
	}
	return src.SubImage(af.Bounds).(*ebiten.Image)
}
