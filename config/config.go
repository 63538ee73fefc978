// Package config loads the game configuration and the persisted player
// settings.
package config

import (
	"fmt"

	"github.com/milk9111/jumpscroller/input"
)

// Config is the startup configuration.
type Config struct {
	Window Window `yaml:"window"`
	Timing Timing `yaml:"timing"`
	Audio  Audio  `yaml:"audio"`
	// Level is the level prefab played after the title.
	Level string `yaml:"level"`
	Tile  int    `yaml:"tile"`
	Debug bool   `yaml:"debug"`
	// Keys maps action names to key names understood by the window layer.
	Keys map[string][]string `yaml:"keys"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
}

type Timing struct {
	TPS        int `yaml:"tps"`
	MaxCatchUp int `yaml:"max_catch_up"`
}

type Audio struct {
	Backend      string `yaml:"backend"`
	SampleRate   int    `yaml:"sample_rate"`
	Channels     int    `yaml:"channels"`
	BufferFrames int    `yaml:"buffer_frames"`
}

// Bindings resolves Keys into actions. Unknown action names are an error so
// a typo in the file does not silently unbind a key.
func (c Config) Bindings() (map[input.Action][]string, error) {
	out := make(map[input.Action][]string, len(c.Keys))
	for name, keys := range c.Keys {
		a, err := input.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("config: keys: %w", err)
		}
		out[a] = append(out[a], keys...)
	}
	return out, nil
}

// withDefaults fills zero values from the built-in defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = d.Window.Scale
	}
	if c.Timing.TPS <= 0 {
		c.Timing.TPS = d.Timing.TPS
	}
	if c.Timing.MaxCatchUp <= 0 {
		c.Timing.MaxCatchUp = d.Timing.MaxCatchUp
	}
	if c.Audio.Backend == "" {
		c.Audio.Backend = d.Audio.Backend
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}
	if c.Audio.Channels <= 0 {
		c.Audio.Channels = d.Audio.Channels
	}
	if c.Audio.BufferFrames <= 0 {
		c.Audio.BufferFrames = c.Audio.SampleRate / 100
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.Tile <= 0 {
		c.Tile = d.Tile
	}
	if len(c.Keys) == 0 {
		c.Keys = d.Keys
	}
	return c
}
