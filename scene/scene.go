// Package scene holds the title and level scenes and the in-game menu.
// A scene owns its entities and orders their per-tick updates.
package scene

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/level"
	"github.com/milk9111/jumpscroller/obj"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
	"github.com/milk9111/jumpscroller/sound"
)

// Scene is one state of the game.
type Scene interface {
	Init() error
	Tick()
	Render(s render.Surface, alpha float64)
}

// Assets adds songs to what entities need.
type Assets interface {
	obj.Assets
	Sequence(name string) *sound.Sequence
}

// Context is shared by every scene.
type Context struct {
	Keys      *input.Keys
	Sound     sound.Engine
	Physics   *physics.Engine
	Assets    Assets
	Behaviors *level.Behaviors
	Prefabs   *prefabs.Set
	Logger    *log.Logger

	// LoadLevel resolves a level file name against the shared behavior
	// table.
	LoadLevel func(name string) (*level.Level, error)
	// Switch replaces the running scene. The new scene is initialized by
	// the caller of Switch before its first tick.
	Switch func(next Scene)
	// OnVolume is told about volume changes made through the menu.
	OnVolume func(music, sound float64)

	Width, Height int
	TPS           int
	Tile          int
	Debug         bool
}

func (c *Context) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// center is the middle of the screen, used as a fixed sound source.
func (c *Context) center() sound.FixedSource {
	return sound.FixedSource{X: float64(c.Width) / 2, Y: float64(c.Height) / 2}
}

func (c *Context) playAt(name string, src sound.Source) {
	if s := c.Assets.Sample(name); s != nil {
		c.Sound.Play(s, src, 1, 1)
	}
}

func (c *Context) startMusic(name string) {
	seq := c.Assets.Sequence(name)
	if seq == nil {
		c.logger().Warn("missing song", "name", name)
		return
	}
	c.Sound.StartMusic(seq)
}
