// Package stdlib resolves the short names a .include directive can use
// ("list", "map", ...) against the standard .swl fragment library's
// manifest, before falling back to a literal path on the assembler's
// include search path.
package stdlib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// entry is one manifest table; more fields (e.g. a short description) can
// be added without breaking existing manifest.toml files.
type entry struct {
	File string `toml:"file"`
}

// Manifest maps a short include name to the .swl file that implements it.
type Manifest struct {
	dir     string
	entries map[string]entry
}

// Load reads a manifest.toml from dir/manifest.toml.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "manifest.toml")
	var raw map[string]entry
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("stdlib: parse %s: %w", path, err)
	}
	return &Manifest{dir: dir, entries: raw}, nil
}

// Resolve returns the path name's manifest entry points at (the manifest
// directory joined with the entry's file, so relative if that directory
// is), or ("", false) if name isn't in the manifest or the file is missing.
func (m *Manifest) Resolve(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	e, ok := m.entries[name]
	if !ok {
		return "", false
	}
	path := filepath.Join(m.dir, e.File)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
