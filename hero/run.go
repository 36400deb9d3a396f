package hero

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Raindancer118/genesis/log"
)

// RunOptions bundles everything one governor pass needs. Defaults come
// from configuration, not from this package.
type RunOptions struct {
	Options
	DryRun          bool
	Verbose         bool
	GracefulTimeout time.Duration
}

// Governor wires discovery, confirmation and termination into the run
// operation. The confirmation prompt and the report renderer are
// external collaborators supplied by the caller.
type Governor struct {
	Safe    SafeSet
	Confirm func(prompt string) bool
	Render  func(targets []Target, fast bool)
	Out     io.Writer

	find func(Options, SafeSet) ([]Target, error)
	kill func(pid int32) (bool, string)
}

// NewGovernor builds a Governor around the given safe set and
// collaborators.
func NewGovernor(safe SafeSet, confirm func(string) bool, render func([]Target, bool)) *Governor {
	return &Governor{
		Safe:    safe,
		Confirm: confirm,
		Render:  render,
		Out:     os.Stdout,
	}
}

// Run executes one governor pass: discover, rank, optionally confirm,
// terminate, report. It returns an exit code; everything short of a
// failed enumeration is 0, including "nothing to do" and a declined
// confirmation.
func (g *Governor) Run(opts RunOptions) int {
	targets, err := g.findTargets(opts.Options)
	if err != nil {
		log.CombinedLogger.Errorf("process enumeration failed: %v", err)
		return 1
	}

	if len(targets) == 0 {
		if opts.Verbose {
			fmt.Fprintln(g.Out, "No processes exceed the specified thresholds.")
		}
		return 0
	}

	if opts.Verbose && g.Render != nil {
		g.Render(targets, opts.Fast)
	}

	if opts.DryRun {
		if opts.Verbose {
			fmt.Fprintf(g.Out, "Dry run: would terminate %d process(es).\n", len(targets))
		}
		return 0
	}

	if g.Confirm != nil {
		if !g.Confirm(fmt.Sprintf("Terminate %d process(es)?", len(targets))) {
			fmt.Fprintln(g.Out, "Operation cancelled.")
			return 0
		}
	}

	terminated := 0
	for _, t := range targets {
		// The builder already excluded protected processes; check again
		// right before acting anyway.
		if g.Safe.HasName(t.Name) || g.Safe.HasPID(t.PID) {
			fmt.Fprintf(g.Out, "skipped PID %d (%s): protected process\n", t.PID, t.Name)
			continue
		}
		ok, status := g.terminate(t.PID, opts.GracefulTimeout)
		if ok {
			terminated++
			fmt.Fprintf(g.Out, "PID %d (%s): %s\n", t.PID, t.Name, status)
		} else {
			fmt.Fprintf(g.Out, "failed PID %d (%s): %s\n", t.PID, t.Name, status)
		}
		log.FileLogger.Infow("termination attempt",
			"pid", t.PID, "name", t.Name, "ok", ok, "status", status)
	}
	fmt.Fprintf(g.Out, "Terminated %d of %d processes.\n", terminated, len(targets))
	return 0
}

func (g *Governor) findTargets(opts Options) ([]Target, error) {
	if g.find != nil {
		return g.find(opts, g.Safe)
	}
	return FindTargets(opts, g.Safe)
}

func (g *Governor) terminate(pid int32, graceful time.Duration) (bool, string) {
	if g.kill != nil {
		return g.kill(pid)
	}
	term := NewTerminator(g.Safe)
	if graceful > 0 {
		term.GracefulTimeout = graceful
	}
	return term.TerminateTree(pid)
}
