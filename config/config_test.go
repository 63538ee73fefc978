package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/input"
)

func TestLoadCustomFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "timing:\n  tps: 30\naudio:\n  backend: beep\n  sample_rate: 22050\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timing.TPS != 30 || cfg.Timing.MaxCatchUp != 10 {
		t.Fatalf("unexpected timing %+v", cfg.Timing)
	}
	if cfg.Audio.Backend != "beep" || cfg.Audio.BufferFrames != 220 {
		t.Fatalf("unexpected audio %+v", cfg.Audio)
	}
	if cfg.Window.Width != 800 || cfg.Tile != 32 || cfg.Level != "level1.yaml" {
		t.Fatalf("expected defaults for unset fields, got %+v", cfg)
	}
}

func TestLoadCustomMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for a missing custom config")
	}
}

func TestEmbeddedDefaultMatchesBuiltIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := DefaultConfig()
	if cfg.Window != d.Window || cfg.Timing != d.Timing || cfg.Audio != d.Audio {
		t.Fatalf("embedded default differs from DefaultConfig: %+v", cfg)
	}
	if len(cfg.Keys) != int(input.ActionCount) {
		t.Fatalf("expected a binding per action, got %d", len(cfg.Keys))
	}
}

func TestBindings(t *testing.T) {
	tests := []struct {
		name    string
		keys    map[string][]string
		wantErr bool
	}{
		{name: "valid", keys: map[string][]string{"jump": {"Space"}, "Left": {"A"}}},
		{name: "unknown action", keys: map[string][]string{"fly": {"F"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Config{Keys: tt.keys}.Bindings()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Bindings: %v", err)
			}
			if b[input.Jump][0] != "Space" || b[input.Left][0] != "A" {
				t.Fatalf("unexpected bindings %v", b)
			}
		})
	}
}

func TestSettingsCreatedAndSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.yaml")
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file to be created: %v", err)
	}

	if err := SaveSettings(path, Settings{MusicVolume: 0.25, SoundVolume: 3}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	s, err = LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.MusicVolume != 0.25 || s.SoundVolume != 1 {
		t.Fatalf("expected clamped round trip, got %+v", s)
	}
}

func TestSettingsWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if _, err := LoadSettings(path); err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	w, err := WatchSettings(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("WatchSettings: %v", err)
	}
	defer w.Close()

	if err := SaveSettings(path, Settings{MusicVolume: 0.5, SoundVolume: 0.5}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-w.Updates:
			if s.MusicVolume == 0.5 {
				return
			}
		case <-timeout:
			t.Fatalf("no settings update with the new volume")
		}
	}
}
