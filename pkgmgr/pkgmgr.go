// Package pkgmgr dispatches install, remove and update operations to
// whichever system package manager is present, picked by a configured
// priority order.
package pkgmgr

import (
	"fmt"
	"os"
	"os/exec"
)

// Manager describes one supported package manager and the argument
// templates for each operation. Package names are appended to the
// install and remove argv.
type Manager struct {
	Name    string
	Install []string
	Remove  []string
	Update  []string
	// Sudo marks managers that need root for mutating operations.
	Sudo bool
}

var known = map[string]Manager{
	"pamac": {
		Name:    "pamac",
		Install: []string{"pamac", "install"},
		Remove:  []string{"pamac", "remove"},
		Update:  []string{"pamac", "upgrade"},
	},
	"paru": {
		Name:    "paru",
		Install: []string{"paru", "-S", "--needed"},
		Remove:  []string{"paru", "-Rns"},
		Update:  []string{"paru", "-Syu"},
	},
	"yay": {
		Name:    "yay",
		Install: []string{"yay", "-S", "--needed"},
		Remove:  []string{"yay", "-Rns"},
		Update:  []string{"yay", "-Syu"},
	},
	"pacman": {
		Name:    "pacman",
		Install: []string{"pacman", "-S", "--needed"},
		Remove:  []string{"pacman", "-Rns"},
		Update:  []string{"pacman", "-Syu"},
		Sudo:    true,
	},
	"apt": {
		Name:    "apt",
		Install: []string{"apt", "install"},
		Remove:  []string{"apt", "remove"},
		Update:  []string{"apt", "upgrade"},
		Sudo:    true,
	},
	"dnf": {
		Name:    "dnf",
		Install: []string{"dnf", "install"},
		Remove:  []string{"dnf", "remove"},
		Update:  []string{"dnf", "upgrade"},
		Sudo:    true,
	},
	"brew": {
		Name:    "brew",
		Install: []string{"brew", "install"},
		Remove:  []string{"brew", "uninstall"},
		Update:  []string{"brew", "upgrade"},
	},
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// Detect returns the first manager from the priority list found on
// PATH.
func Detect(priority []string) (Manager, error) {
	for _, name := range priority {
		m, ok := known[name]
		if !ok {
			continue
		}
		if _, err := lookPath(name); err == nil {
			return m, nil
		}
	}
	return Manager{}, fmt.Errorf("no supported package manager found (tried %v)", priority)
}

// Known reports whether name is a supported manager.
func Known(name string) bool {
	_, ok := known[name]
	return ok
}

func (m Manager) argv(template []string, pkgs ...string) []string {
	argv := make([]string, 0, len(template)+len(pkgs)+1)
	if m.Sudo && os.Geteuid() != 0 {
		argv = append(argv, "sudo")
	}
	argv = append(argv, template...)
	argv = append(argv, pkgs...)
	return argv
}

// InstallArgs returns the full argv for installing pkgs.
func (m Manager) InstallArgs(pkgs ...string) []string { return m.argv(m.Install, pkgs...) }

// RemoveArgs returns the full argv for removing pkgs.
func (m Manager) RemoveArgs(pkgs ...string) []string { return m.argv(m.Remove, pkgs...) }

// UpdateArgs returns the full argv for a system upgrade.
func (m Manager) UpdateArgs() []string { return m.argv(m.Update) }

// Run executes argv interactively, wired to the caller's terminal so
// password prompts and progress output work.
func Run(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
