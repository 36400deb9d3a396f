package pkgmgr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	set := map[string]bool{}
	for _, name := range available {
		set[name] = true
	}
	lookPath = func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectHonorsPriority(t *testing.T) {
	withLookPath(t, "pacman", "paru")

	m, err := Detect([]string{"pamac", "paru", "yay", "pacman"})
	require.NoError(t, err)
	assert.Equal(t, "paru", m.Name)
}

func TestDetectSkipsUnknownNames(t *testing.T) {
	withLookPath(t, "apt")

	m, err := Detect([]string{"nix", "apt"})
	require.NoError(t, err)
	assert.Equal(t, "apt", m.Name)
}

func TestDetectNothingAvailable(t *testing.T) {
	withLookPath(t)

	_, err := Detect([]string{"pacman", "apt"})
	assert.Error(t, err)
}

func TestInstallArgsAppendsPackages(t *testing.T) {
	m := known["paru"]
	assert.Equal(t, []string{"paru", "-S", "--needed", "htop", "ripgrep"}, m.InstallArgs("htop", "ripgrep"))
}

func TestSudoPrefixForRootOnlyManagers(t *testing.T) {
	m := known["pacman"]
	argv := m.UpdateArgs()
	// running as an ordinary user the argv starts with sudo
	if argv[0] != "sudo" && argv[0] != "pacman" {
		t.Fatalf("unexpected argv %v", argv)
	}
	m = known["pamac"]
	assert.Equal(t, "pamac", m.RemoveArgs("htop")[0])
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("pacman"))
	assert.False(t, Known("portage"))
}
