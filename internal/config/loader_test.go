package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ephemeris-labs/releasekit/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "ghcr.io", cfg.Registry)
	assert.Equal(t, "ephemeris-labs/ephemeris", cfg.Image)
	assert.Equal(t, "main", cfg.DefaultBranch)
	assert.Equal(t, []string{"linux/amd64", "linux/arm64/v8"}, cfg.Platforms)
	assert.Equal(t, "0.0.31", cfg.PinnedVersion())
	assert.Equal(t, "ghcr.io/ephemeris-labs/ephemeris", cfg.Repository())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
registry: registry.example.com
image: calendar/ephemeris
default_branch: trunk
platforms:
  - linux/amd64
rmapi:
  version: 0.30.0
variants:
  rmapi:
    target: with-rmapi
`)

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "registry.example.com", cfg.Registry)
	assert.Equal(t, "calendar/ephemeris", cfg.Image)
	assert.Equal(t, "trunk", cfg.DefaultBranch)
	assert.Equal(t, []string{"linux/amd64"}, cfg.Platforms)
	assert.Equal(t, "0.30.0", cfg.PinnedVersion())
	assert.Equal(t, "with-rmapi", cfg.TargetFor(matrix.VariantRmapi))
	assert.Equal(t, "plain", cfg.TargetFor(matrix.VariantPlain), "unconfigured variant falls back to its name")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RELEASEKIT_RMAPI_VERSION", "0.0.99")
	t.Setenv("RELEASEKIT_REGISTRY", "docker.io")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.99", cfg.PinnedVersion())
	assert.Equal(t, "docker.io", cfg.Registry)
}

func TestLoadInvalidVariantName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
variants:
  windows:
    target: win
`)

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variant")
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "registry: [unclosed")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	empty := &Config{}
	require.Error(t, empty.Validate())

	noPlatforms := DefaultConfig()
	noPlatforms.Platforms = nil
	require.Error(t, noPlatforms.Validate())
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	require.NoError(t, WriteDefault(path))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	assert.ErrorIs(t, WriteDefault(path), ErrConfigExists)
}
