package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	diskMu   sync.RWMutex
	diskRoot = "prefabs"
)

// SetDiskRoot sets the directory checked for overrides before the embedded
// copies. An empty root disables overrides.
func SetDiskRoot(dir string) {
	diskMu.Lock()
	defer diskMu.Unlock()
	diskRoot = dir
}

// DiskRoot returns the override directory.
func DiskRoot() string {
	diskMu.RLock()
	defer diskMu.RUnlock()
	return diskRoot
}

// Load returns a prefab file, preferring the on-disk copy so edited specs
// take effect without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func readDisk(clean string) ([]byte, bool) {
	root := DiskRoot()
	if root == "" || clean == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(clean)))
	if err != nil {
		return nil, false
	}
	return data, true
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "prefabs/")
	if path.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}
