// Package levels holds the shipped level maps and tile behavior tables.
// Files on disk under levels/ win over the embedded copies so maps edited
// with the level tool are picked up without a rebuild.
package levels

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/jumpscroller/level"
)

//go:embed *.lvl *.dat
var LevelsFS embed.FS

// Dir is the on-disk level directory relative to the working directory.
func Dir() string { return "levels" }

// Load reads a level file by name.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir(), filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

// LoadBehaviors reads a 256 byte tile behavior table.
func LoadBehaviors(name string) (*level.Behaviors, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("read behaviors %s: %w", name, err)
	}
	b := level.NewBehaviors()
	if _, err := b.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("behaviors %s: %w", name, err)
	}
	return b, nil
}

// LoadLevel decodes a level map against the shared behavior table.
func LoadLevel(name string, behaviors *level.Behaviors) (*level.Level, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	l, err := level.Load(bytes.NewReader(data), behaviors)
	if err != nil {
		return nil, fmt.Errorf("decode level %s: %w", name, err)
	}
	return l, nil
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}
