// Package selfupdate keeps the genesis checkout itself current. It
// works against the git clone the binary was installed from, found via
// GENESIS_DIR or a fallback install location.
package selfupdate

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Raindancer118/genesis/log"
)

const defaultInstallDir = "/opt/genesis"

// RepoStatus summarizes where the install checkout stands relative to
// its upstream branch.
type RepoStatus struct {
	Dirty  bool
	Behind int
	Ahead  int
}

// HasUpdates reports whether new upstream commits are waiting.
func (s RepoStatus) HasUpdates() bool { return s.Behind > 0 }

// InstallDir resolves the genesis checkout directory. GENESIS_DIR
// wins; otherwise the default install location is used when it exists,
// falling back to the current working directory.
func InstallDir() string {
	if dir := os.Getenv("GENESIS_DIR"); dir != "" {
		return dir
	}
	if info, err := os.Stat(defaultInstallDir); err == nil && info.IsDir() {
		return defaultInstallDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return defaultInstallDir
	}
	return wd
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	log.LogGitCommand(cmd)
	if err != nil {
		msg := strings.TrimSpace(errOut.String())
		if msg == "" {
			msg = err.Error()
		}
		return out.String(), fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return out.String(), nil
}

func trackingBranch(dir string) string {
	out, err := runGit(dir, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func countCommits(dir, rangeExpr string) (int, error) {
	out, err := runGit(dir, "rev-list", "--count", rangeExpr)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unknown revision") {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("parsing commit count %q: %w", out, err)
	}
	return n, nil
}

// Check fetches the upstream remote and reports the repo status.
func Check() (RepoStatus, error) {
	return checkDir(InstallDir())
}

func checkDir(dir string) (RepoStatus, error) {
	upstream := trackingBranch(dir)
	if upstream != "" && strings.Contains(upstream, "/") {
		remote := strings.SplitN(upstream, "/", 2)[0]
		if _, err := runGit(dir, "fetch", "--prune", remote); err != nil {
			return RepoStatus{}, err
		}
	} else {
		if _, err := runGit(dir, "fetch", "--prune"); err != nil {
			return RepoStatus{}, err
		}
	}

	porcelain, err := runGit(dir, "status", "--porcelain")
	if err != nil {
		return RepoStatus{}, err
	}

	target := upstream
	if target == "" {
		target = "origin/main"
	}
	behind, err := countCommits(dir, "HEAD.."+target)
	if err != nil {
		return RepoStatus{}, err
	}
	ahead, err := countCommits(dir, target+"..HEAD")
	if err != nil {
		return RepoStatus{}, err
	}

	return RepoStatus{
		Dirty:  strings.TrimSpace(porcelain) != "",
		Behind: behind,
		Ahead:  ahead,
	}, nil
}

// Apply fast-forwards the checkout onto its upstream. It refuses to
// touch a checkout with local commits or uncommitted changes, so a
// broken update can never eat anyone's work.
func Apply() error {
	dir := InstallDir()
	status, err := checkDir(dir)
	if err != nil {
		return err
	}
	if !status.HasUpdates() {
		return nil
	}
	if status.Ahead > 0 {
		return fmt.Errorf("local commits detected, push or back them up before updating")
	}
	if status.Dirty {
		return fmt.Errorf("local changes detected, commit or stash them before updating")
	}
	if _, err := runGit(dir, "pull", "--ff-only"); err != nil {
		return err
	}
	log.FileLogger.Infof("self-update applied %d commit(s)", status.Behind)
	return nil
}
