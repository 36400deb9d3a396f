package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()

	assert.Equal(t, 50.0, d.Hero.CPUThreshold)
	assert.Equal(t, 400.0, d.Hero.MemThresholdMB)
	assert.Equal(t, "user", d.Hero.DefaultScope)
	assert.Equal(t, 15, d.Hero.Limit)
	assert.Equal(t, 2.0, d.Hero.WeightCPU)
	assert.Equal(t, 0.5, d.Hero.WeightMem)
	assert.Equal(t, 400*time.Millisecond, d.Hero.SampleInterval())
	assert.Equal(t, 2*time.Second, d.Hero.GracefulTimeout())
	assert.NotEmpty(t, d.System.PackageManagerPriority)
}

func TestInitWritesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, Init(path))

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults().Hero.CPUThreshold, cfg.Hero.CPUThreshold)
	assert.Equal(t, Defaults().System.PackageManagerPriority, cfg.System.PackageManagerPriority)
}

func TestInitReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[hero]\ncpu_threshold = 75.0\nlimit = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	require.NoError(t, Init(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 75.0, cfg.Hero.CPUThreshold)
	assert.Equal(t, 3, cfg.Hero.Limit)
	// unset keys keep their defaults
	assert.Equal(t, Defaults().Hero.MemThresholdMB, cfg.Hero.MemThresholdMB)
}

func TestDirHonorsEnvOverride(t *testing.T) {
	t.Setenv("GENESIS_CONFIG_DIR", "/tmp/genesis-test")

	assert.Equal(t, "/tmp/genesis-test", Dir())
	assert.Equal(t, filepath.Join("/tmp/genesis-test", "config.toml"), Path())
}
