package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var files embed.FS

const scriptDir = "scripts"

// Dir is where prefab overrides live on disk, relative to the working
// directory. Files found there shadow the embedded set.
func Dir() string { return "prefabs" }

// Load returns a prefab definition by file name.
func Load(name string) ([]byte, error) {
	return read(assetPath(name, ""))
}

// LoadScript returns a tengo source by name. A bare name resolves under
// the scripts directory.
func LoadScript(name string) ([]byte, error) {
	return read(assetPath(name, scriptDir))
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir(), filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}

// assetPath maps a user supplied name to a slash path relative to the
// prefab root, placing it under sub when sub is set.
func assetPath(name, sub string) string {
	if name == "" {
		return ""
	}
	rel := strings.TrimPrefix(filepath.ToSlash(name), Dir()+"/")
	if sub == "" {
		return rel
	}
	return path.Join(sub, strings.TrimPrefix(rel, sub+"/"))
}
