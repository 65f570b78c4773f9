package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DefaultProfile)
	assert.Equal(t, "", cfg.DefaultRegion)
	assert.False(t, cfg.ExtendedProbes)
}

func TestLoadFile_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`default_profile: my-profile
default_region: eu-west-1
endpoint_url: http://localhost:4566
log_level: debug
output: json
extended_probes: true
parallel_probes: true
`), 0644)
	require.NoError(t, err)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my-profile", cfg.DefaultProfile)
	assert.Equal(t, "eu-west-1", cfg.DefaultRegion)
	assert.Equal(t, "http://localhost:4566", cfg.EndpointURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.ExtendedProbes)
	assert.True(t, cfg.ParallelProbes)
}

func TestLoad_FromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "aws-perms")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("default_region: us-west-2\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.DefaultRegion)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_region: [unterminated\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestMerge_CLIFlagsTakePrecedence(t *testing.T) {
	cfg := &Config{DefaultProfile: "config-profile", DefaultRegion: "us-east-1"}

	// CLI flags override
	p, r := cfg.Merge("cli-profile", "ap-south-1")
	assert.Equal(t, "cli-profile", p)
	assert.Equal(t, "ap-south-1", r)

	// Empty flags fall back to config
	p, r = cfg.Merge("", "")
	assert.Equal(t, "config-profile", p)
	assert.Equal(t, "us-east-1", r)

	// Partial override
	p, r = cfg.Merge("other", "")
	assert.Equal(t, "other", p)
	assert.Equal(t, "us-east-1", r)
}

func TestOr(t *testing.T) {
	assert.Equal(t, "flag", Or("flag", "file"))
	assert.Equal(t, "file", Or("", "file"))
	assert.Equal(t, "", Or("", ""))
}
