package stdlib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simpleworld/swvm/internal/stdlib"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.toml"),
		[]byte("[list]\nfile = \"list.swl\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "list.swl"), []byte("stop\n"), 0o644))

	m, err := stdlib.Load(dir)
	require.NoError(t, err)

	path, ok := m.Resolve("list")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "list.swl"), path)

	_, ok = m.Resolve("nonexistent")
	require.False(t, ok)
}

func TestResolveMissingFileIsNotOK(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.toml"),
		[]byte("[ghost]\nfile = \"ghost.swl\"\n"), 0o644))

	m, err := stdlib.Load(dir)
	require.NoError(t, err)

	_, ok := m.Resolve("ghost")
	require.False(t, ok)
}

func TestNilManifestResolveIsSafe(t *testing.T) {
	var m *stdlib.Manifest
	_, ok := m.Resolve("anything")
	require.False(t, ok)
}
