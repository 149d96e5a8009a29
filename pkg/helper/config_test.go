package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCfgPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "server.yaml")
	assert.Equal(t, abs, GetCfgPath(abs))
}

func TestGetCfgPathCurrentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.yaml"), []byte("port: 1\n"), 0o644))
	t.Chdir(dir)

	got := GetCfgPath("server.yaml")
	assert.Equal(t, filepath.Join(dir, "server.yaml"), got)
}

func TestGetCfgPathConfigsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "server.yaml"), []byte("port: 1\n"), 0o644))
	t.Chdir(dir)

	got := GetCfgPath("server.yaml")
	assert.Equal(t, filepath.Join(dir, "configs", "server.yaml"), got)
}

func TestGetCfgPathFallback(t *testing.T) {
	t.Chdir(t.TempDir())

	got := GetCfgPath("server.yaml")
	assert.Equal(t, "/etc/mcp-server-cloudflare/server.yaml", got)
}

func TestGetCfgPathEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { GetCfgPath("") })
}
