package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed scenes/*.yaml
var ScenesFS embed.FS

// LoadScript reads a motion script, preferring prefabs/scripts on disk so
// edits are picked up without a rebuild.
func LoadScript(name string) ([]byte, error) {
	clean := cleanPath(name, "scripts")
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Load reads a scene or preferences document. name may be a path to any
// file on disk; otherwise it is looked up in prefabs/scenes on disk and then
// in the embedded scenes.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, fs.ErrNotExist
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	clean := cleanPath(name, "scenes")
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// SceneNames lists the embedded scenes.
func SceneNames() []string {
	entries, err := ScenesFS.ReadDir("scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// cleanPath reduces name to "<dir>/<file>" relative to the prefabs root.
func cleanPath(name, dir string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, dir+"/"); ok {
		s = after
	}
	return fmt.Sprintf("%s/%s", dir, s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
