package selfupdate

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Raindancer118/genesis/log"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "genesis-logs")
	if err != nil {
		panic(err)
	}
	os.Setenv("GENESIS_LOG_DIR", dir)
	log.Init()
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestHasUpdates(t *testing.T) {
	assert.False(t, RepoStatus{}.HasUpdates())
	assert.False(t, RepoStatus{Ahead: 2, Dirty: true}.HasUpdates())
	assert.True(t, RepoStatus{Behind: 1}.HasUpdates())
}

func TestInstallDirEnvOverride(t *testing.T) {
	t.Setenv("GENESIS_DIR", "/tmp/genesis-install")
	assert.Equal(t, "/tmp/genesis-install", InstallDir())
}

func TestInstallDirFallsBackToWorkingDir(t *testing.T) {
	t.Setenv("GENESIS_DIR", "")
	os.Unsetenv("GENESIS_DIR")
	if _, err := os.Stat(defaultInstallDir); err == nil {
		t.Skip("default install dir exists on this machine")
	}
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.Equal(t, wd, InstallDir())
}
