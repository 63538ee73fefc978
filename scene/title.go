package scene

import (
	"image/color"

	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/render"
)

const (
	titleSong       = "title"
	titleSheet      = "title"
	titleLogoSheet  = "title_logo"
	titleLogoY      = 100
	titleBlink      = 16
	titleTextOffset = 100
	titleScrollWait = 3
	titleScrollStep = 2
	titleStartSound = "get_coin"
	titlePrompt     = "Press Space"
	promptCharWidth = 7
)

var titleClear = color.NRGBA{A: 0xff}

// Title scrolls the title picture up and waits for jump to start the level.
type Title struct {
	ctx *Context

	// Next builds the scene started from the title.
	Next func() Scene

	pic  component.Frame
	logo component.Frame
	fade *Fade

	tick      int
	camY      int
	scrolling bool
	starting  bool
	startTick int
}

func NewTitle(ctx *Context, next func() Scene) *Title {
	return &Title{ctx: ctx, Next: next, fade: NewFade(ctx.TPS)}
}

func (t *Title) Init() error {
	t.pic = t.ctx.Assets.Sheet(titleSheet).Frame(0, 0)
	t.logo = t.ctx.Assets.Sheet(titleLogoSheet).Frame(0, 0)
	if t.pic != nil {
		_, h := t.pic.Size()
		t.camY = max(h-t.ctx.Height, 0)
	}
	t.ctx.Sound.SetListener(t.ctx.center())
	t.ctx.startMusic(titleSong)
	return nil
}

// Scrolling reports whether the picture has started moving.
func (t *Title) Scrolling() bool { return t.scrolling }

// Starting reports whether jump was pressed and the level is about to start.
func (t *Title) Starting() bool { return t.starting }

func (t *Title) CamY() int { return t.camY }

func (t *Title) Tick() {
	t.tick++
	t.fade.Tick()
	if t.starting {
		if t.tick >= t.startTick && t.Next != nil {
			t.ctx.Switch(t.Next())
			t.Next = nil
		}
		return
	}

	if t.scrolling && t.ctx.Keys.Pressed(input.Jump) {
		t.ctx.playAt(titleStartSound, t.ctx.center())
		t.starting = true
		t.startTick = t.tick + t.ctx.TPS
		t.fade.Out()
	}
	if !t.scrolling && t.tick/t.ctx.TPS >= titleScrollWait {
		t.scrolling = true
	}
	if t.scrolling && t.camY > titleScrollStep {
		t.camY -= titleScrollStep
	}
}

func (t *Title) Render(s render.Surface, alpha float64) {
	w, h := s.Size()
	mid := w / 2
	s.FillRect(0, 0, float64(w), float64(h), titleClear)
	if t.pic != nil {
		pw, _ := t.pic.Size()
		s.DrawFrame(t.pic, float64(mid-pw/2), float64(-t.camY), false)
	}
	if t.logo != nil {
		lw, _ := t.logo.Size()
		s.DrawFrame(t.logo, float64(mid-lw/2), titleLogoY, false)
	}
	if t.scrolling && (t.tick/titleBlink)%2 == 0 {
		x := mid - len(titlePrompt)*promptCharWidth/2
		s.DrawText(titlePrompt, x, h/2+titleTextOffset)
	}
	t.fade.Render(s)
}
