package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaultsWithNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader().WithSearchPaths(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Versioning.TagPrefix, cfg.Versioning.TagPrefix)
	assert.Equal(t, defaults.Versioning.DefaultBranch, cfg.Versioning.DefaultBranch)
	assert.Equal(t, defaults.Versioning.PromotionChain, cfg.Versioning.PromotionChain)
}

func TestLoaderReadsConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte("versioning:\n  tag_prefix: \"r\"\n  default_branch: trunk\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ccver.yaml"), content, 0o644))

	cfg, err := NewLoader().WithSearchPaths(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "r", cfg.Versioning.TagPrefix)
	assert.Equal(t, "trunk", cfg.Versioning.DefaultBranch)
}

func TestLoaderExplicitConfigPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  log_level: debug\n"), 0o644))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Output.LogLevel)
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".ccver.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "v", cfg.Versioning.TagPrefix)
}
