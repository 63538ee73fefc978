package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Settings are the values the player changes in game.
type Settings struct {
	MusicVolume float64 `yaml:"music_volume"`
	SoundVolume float64 `yaml:"sound_volume"`
}

func (s Settings) clamped() Settings {
	s.MusicVolume = clampVolume(s.MusicVolume)
	s.SoundVolume = clampVolume(s.SoundVolume)
	return s
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

// SettingsPath is ~/.jumpscroller/settings.yaml, or settings.yaml in the
// working directory when home is unavailable.
func SettingsPath() string {
	if p := userConfigPath("settings.yaml"); p != "" {
		return p
	}
	return "settings.yaml"
}

// LoadSettings reads the settings file, creating it with defaults when it
// does not exist yet.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := DefaultSettings()
		return s, SaveSettings(path, s)
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s.clamped(), nil
}

// SaveSettings writes s to path, creating the directory if needed.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s.clamped())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

const settingsDebounce = 100 * time.Millisecond

// SettingsWatcher reloads the settings file when it changes on disk.
type SettingsWatcher struct {
	path    string
	logger  *log.Logger
	watcher *fsnotify.Watcher
	Updates chan Settings
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchSettings watches the directory holding path, since editors often
// replace files rather than write them in place.
func WatchSettings(path string, logger *log.Logger) (*SettingsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	sw := &SettingsWatcher{
		path:    filepath.Clean(path),
		logger:  logger,
		watcher: w,
		Updates: make(chan Settings, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

func (w *SettingsWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
	})
	return err
}

func (w *SettingsWatcher) run() {
	defer close(w.done)
	// Reload once writes have settled.
	var settle <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle = time.After(settingsDebounce)
		case <-settle:
			settle = nil
			s, err := LoadSettings(w.path)
			if err != nil {
				w.logger.Warn("settings reload failed", "path", w.path, "err", err)
				continue
			}
			select {
			case <-w.Updates:
			default:
			}
			select {
			case w.Updates <- s:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher", "err", err)
		case <-w.closeCh:
			return
		}
	}
}
