// Package assets embeds the sprite sheets, sound samples and songs and
// resolves them by name through a Registry.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../cmd/songgen --out songs

//go:embed sheets.yaml sheets/*.png samples/*.wav songs/*.mid
var assetsFS embed.FS

// SheetSpec describes how an image is cut into frames.
type SheetSpec struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	FrameW int    `yaml:"frame_w"`
	FrameH int    `yaml:"frame_h"`
}

type manifest struct {
	Sheets []SheetSpec `yaml:"sheets"`
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadImage decodes an embedded image.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// LoadSheetSpecs reads the sheet manifest.
func LoadSheetSpecs() ([]SheetSpec, error) {
	b, err := LoadFile("sheets.yaml")
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse sheets.yaml: %w", err)
	}
	return m.Sheets, nil
}

// names lists the embedded files under dir with the given extension,
// returned without directory or extension.
func names(dir, ext string) ([]string, error) {
	entries, err := assetsFS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	return out, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
