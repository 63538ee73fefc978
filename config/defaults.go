package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Window: Window{Title: "jumpscroller", Width: 800, Height: 640, Scale: 1},
		Timing: Timing{TPS: 24, MaxCatchUp: 10},
		Audio:  Audio{Backend: "ebiten", SampleRate: 44100, Channels: 64, BufferFrames: 441},
		Level:  "level1.yaml",
		Tile:   32,
		Keys: map[string][]string{
			"left":    {"A", "ArrowLeft"},
			"right":   {"D", "ArrowRight"},
			"down":    {"S", "ArrowDown"},
			"up":      {"W", "ArrowUp"},
			"jump":    {"Space"},
			"attack1": {"J"},
			"attack2": {"K"},
			"attack3": {"L"},
			"evolve":  {"E"},
			"menu":    {"Escape"},
			"enter":   {"Enter"},
		},
	}
}

// DefaultSettings returns full volume for music and sound.
func DefaultSettings() Settings {
	return Settings{MusicVolume: 1, SoundVolume: 1}
}
