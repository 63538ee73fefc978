package scene

import (
	"fmt"
	"image/color"

	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/render"
	"github.com/milk9111/jumpscroller/sound"
)

// MenuOption is a menu entry.
type MenuOption int

const (
	OptionBack MenuOption = iota
	OptionVolume

	optionCount
)

func (o MenuOption) String() string {
	switch o {
	case OptionBack:
		return "Back"
	case OptionVolume:
		return "Volume"
	default:
		return fmt.Sprintf("option(%d)", int(o))
	}
}

// MenuLayer is the page the menu shows.
type MenuLayer int

const (
	LayerMenu MenuLayer = iota
	LayerVolume
)

const (
	menuWidth   = 350
	menuHeight  = 250
	menuArmTick = 12
	volumeStep  = 0.01
	volumeBarW  = 200
	volumeBarH  = 40
)

var (
	menuColor    = color.NRGBA{A: 0xff}
	barEdgeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	barColor     = color.NRGBA{G: 0x40, A: 0xff}
)

// Menu is the keyboard driven in-game menu. It ignores input for a few
// ticks after opening so the key that opened it cannot close it again.
type Menu struct {
	keys     *input.Keys
	sound    sound.Engine
	onVolume func(music, sound float64)

	open   bool
	tick   int
	option MenuOption
	layer  MenuLayer
}

func NewMenu(keys *input.Keys, snd sound.Engine, onVolume func(music, sound float64)) *Menu {
	return &Menu{keys: keys, sound: snd, onVolume: onVolume, option: OptionVolume}
}

func (m *Menu) Open() {
	m.open = true
	m.tick = 0
	m.layer = LayerMenu
}

func (m *Menu) Close() {
	m.open = false
	m.tick = 0
}

func (m *Menu) IsOpen() bool { return m.open }

func (m *Menu) Option() MenuOption { return m.option }

func (m *Menu) Layer() MenuLayer { return m.layer }

func (m *Menu) Tick() {
	if !m.open {
		return
	}
	m.tick++
	if m.tick <= menuArmTick {
		return
	}

	switch {
	case m.keys.Pressed(input.Down):
		m.option = (m.option + optionCount - 1) % optionCount
	case m.keys.Pressed(input.Up):
		m.option = (m.option + 1) % optionCount
	case m.keys.Pressed(input.Enter):
		if m.layer == LayerMenu && m.option == OptionBack {
			m.Close()
			return
		}
		m.layer = MenuLayer(m.option)
	case m.keys.Pressed(input.Menu):
		if m.layer == LayerMenu {
			m.Close()
			return
		}
		m.layer--
	}

	if m.layer != LayerVolume {
		return
	}
	switch {
	case m.keys.Down(input.Right):
		m.AdjustVolume(volumeStep)
	case m.keys.Down(input.Left):
		m.AdjustVolume(-volumeStep)
	}
}

// AdjustVolume moves music and sound volume together.
func (m *Menu) AdjustVolume(d float64) {
	m.sound.SetMusicVolume(m.sound.MusicVolume() + d)
	m.sound.SetSoundVolume(m.sound.SoundVolume() + d)
	if m.onVolume != nil {
		m.onVolume(m.sound.MusicVolume(), m.sound.SoundVolume())
	}
}

func (m *Menu) Render(s render.Surface) {
	if !m.open {
		return
	}
	w, h := s.Size()
	x := float64(w/2 - menuWidth/2)
	y := float64(h/2 - menuHeight/2)
	s.FillRect(x, y, menuWidth, menuHeight, menuColor)

	for i := MenuOption(0); i < optionCount; i++ {
		marker := "  "
		if i == m.option {
			marker = "> "
		}
		s.DrawText(marker+i.String(), int(x)+10, int(y)+10+int(i)*16)
	}
	if m.layer != LayerVolume {
		return
	}

	bars := []struct {
		label string
		value float64
		top   float64
	}{
		{"Music", m.sound.MusicVolume(), y + 100},
		{"Sound", m.sound.SoundVolume(), y + 180},
	}
	for _, b := range bars {
		s.FillRect(x+19, b.top-1, volumeBarW+2, volumeBarH+2, barEdgeColor)
		s.FillRect(x+20, b.top, volumeBarW, volumeBarH, menuColor)
		s.FillRect(x+20, b.top, float64(int(b.value*volumeBarW)), volumeBarH, barColor)
		s.DrawText(b.label, int(x)+80, int(b.top)+15)
	}
}
