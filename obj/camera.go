package obj

// Camera is a viewport over a level. X and Y are the top left corner of the
// view in level pixels, top down.
type Camera struct {
	X, Y float64

	viewW, viewH   int
	worldW, worldH int
}

// NewCamera creates a camera with the given viewport size.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{viewW: viewW, viewH: viewH}
}

// SetWorldBounds sets the level size in pixels used for clamping.
func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = w
	c.worldH = h
}

// ViewSize returns the viewport size.
func (c *Camera) ViewSize() (int, int) { return c.viewW, c.viewH }

// Follow centers the view on (x, y) and clamps each axis so the view never
// leaves the level. A level smaller than the view pins that axis to 0.
func (c *Camera) Follow(x, y float64) {
	c.X = clampAxis(x-float64(c.viewW)/2, c.worldW, c.viewW)
	c.Y = clampAxis(y-float64(c.viewH)/2, c.worldH, c.viewH)
}

// FollowSprite follows the centre of s, converting its y-up position into
// top down level pixels.
func (c *Camera) FollowSprite(s *Sprite, screenH int) {
	if s == nil {
		return
	}
	x := s.X + float64(s.W)/2
	y := float64(screenH) - s.Y - float64(s.H)/2
	c.Follow(x, y)
}

// ViewTopLeft returns the view origin rounded to whole pixels.
func (c *Camera) ViewTopLeft() (int, int) {
	return int(c.X), int(c.Y)
}

func clampAxis(v float64, world, view int) float64 {
	max := float64(world - view)
	if max < 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
