package hero

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runHarness struct {
	gov      *Governor
	out      *bytes.Buffer
	killed   []int32
	confirms int
}

func newRunHarness(targets []Target, confirm bool) *runHarness {
	h := &runHarness{out: &bytes.Buffer{}}
	h.gov = NewGovernor(NewSafeSet([]string{"plasmashell"}, []int32{1}), nil, nil)
	h.gov.Out = h.out
	h.gov.Confirm = func(string) bool {
		h.confirms++
		return confirm
	}
	h.gov.find = func(Options, SafeSet) ([]Target, error) {
		return targets, nil
	}
	h.gov.kill = func(pid int32) (bool, string) {
		h.killed = append(h.killed, pid)
		return true, "terminated"
	}
	return h
}

func someTargets() []Target {
	return []Target{
		{PID: 100, Name: "hog", Username: "dev", RSSMB: 800, Score: 400},
		{PID: 101, Name: "leaky", Username: "dev", RSSMB: 600, Score: 300},
	}
}

func TestRun_NothingToDo(t *testing.T) {
	h := newRunHarness(nil, true)

	code := h.gov.Run(RunOptions{Verbose: true})

	assert.Equal(t, 0, code)
	assert.Empty(t, h.killed)
	assert.Contains(t, h.out.String(), "No processes exceed")
}

func TestRun_DryRunStopsBeforeConfirmation(t *testing.T) {
	h := newRunHarness(someTargets(), true)

	code := h.gov.Run(RunOptions{DryRun: true, Verbose: true})

	assert.Equal(t, 0, code)
	assert.Zero(t, h.confirms, "dry run must not prompt")
	assert.Empty(t, h.killed, "dry run must not mutate")
	assert.Contains(t, h.out.String(), "Dry run")
}

func TestRun_DeclineIsCleanCancellation(t *testing.T) {
	h := newRunHarness(someTargets(), false)

	code := h.gov.Run(RunOptions{})

	assert.Equal(t, 0, code, "declining is not an error")
	assert.Equal(t, 1, h.confirms)
	assert.Empty(t, h.killed, "no side effects before confirmation")
	assert.Contains(t, h.out.String(), "cancelled")
}

func TestRun_TerminatesAndTallies(t *testing.T) {
	h := newRunHarness(someTargets(), true)

	code := h.gov.Run(RunOptions{})

	assert.Equal(t, 0, code)
	assert.Equal(t, []int32{100, 101}, h.killed)
	assert.Contains(t, h.out.String(), "Terminated 2 of 2 processes.")
}

func TestRun_DoubleChecksSafeSet(t *testing.T) {
	// even if a protected target somehow made it through the builder,
	// run refuses to touch it
	targets := []Target{
		{PID: 100, Name: "plasmashell"},
		{PID: 1, Name: "sneaky"},
		{PID: 102, Name: "hog"},
	}
	h := newRunHarness(targets, true)

	code := h.gov.Run(RunOptions{})

	assert.Equal(t, 0, code)
	require.Equal(t, []int32{102}, h.killed)
	assert.Contains(t, h.out.String(), "protected process")
	assert.Contains(t, h.out.String(), "Terminated 1 of 3 processes.")
}

func TestRun_RendersWhenVerbose(t *testing.T) {
	h := newRunHarness(someTargets(), true)
	rendered := 0
	h.gov.Render = func(targets []Target, fast bool) {
		rendered++
		assert.Len(t, targets, 2)
	}

	h.gov.Run(RunOptions{DryRun: true, Verbose: true})

	assert.Equal(t, 1, rendered)
}

func TestRun_ReportsPerTargetFailures(t *testing.T) {
	h := newRunHarness(someTargets(), true)
	h.gov.kill = func(pid int32) (bool, string) {
		if pid == 101 {
			return false, "signal delivery failed: operation not permitted"
		}
		return true, "terminated"
	}

	code := h.gov.Run(RunOptions{})

	assert.Equal(t, 0, code, "per-target failures do not fail the run")
	assert.Contains(t, h.out.String(), "failed PID 101")
	assert.Contains(t, h.out.String(), "Terminated 1 of 2 processes.")
}
