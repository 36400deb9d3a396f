package hero

import (
	"fmt"
	"time"
)

const (
	// DefaultGracefulTimeout bounds the wait after SIGTERM.
	DefaultGracefulTimeout = 2 * time.Second
	// DefaultForceTimeout bounds the wait after SIGKILL.
	DefaultForceTimeout = 1 * time.Second

	// livenessPoll is the step used while waiting on a process set.
	livenessPoll = 50 * time.Millisecond
)

// Terminator terminates one process and its descendants with graceful
// escalation. Every step re-checks liveness instead of trusting the
// snapshot that selected the target: the process table may have changed
// arbitrarily since then, and all of it is fine.
type Terminator struct {
	Safe            SafeSet
	GracefulTimeout time.Duration
	ForceTimeout    time.Duration

	resolve func(pid int32) (Process, bool)
}

// NewTerminator returns a Terminator with the default timeouts.
func NewTerminator(safe SafeSet) *Terminator {
	return &Terminator{
		Safe:            safe,
		GracefulTimeout: DefaultGracefulTimeout,
		ForceTimeout:    DefaultForceTimeout,
		resolve:         Resolve,
	}
}

// TerminateTree terminates pid and its descendants. It reports success
// for every outcome that leaves the tree gone or already gone; it
// reports failure only when a signal could not be delivered to a process
// that was demonstrably still alive. "Did not exit in time" is not a
// delivery failure.
func (t *Terminator) TerminateTree(pid int32) (bool, string) {
	if t.Safe.HasPID(pid) {
		return false, "protected"
	}

	proc, ok := t.resolve(pid)
	if !ok {
		return true, "already terminated"
	}
	if t.protected(proc) {
		return false, "protected"
	}

	// Descendant enumeration is best effort; a branch we cannot see is
	// a branch we leave alone.
	children, err := proc.Children()
	if err != nil {
		children = nil
	}

	// Children are signaled before their parent so the parent cannot
	// disappear first and orphan processes we still intend to stop.
	// SafeSet members are neither signaled nor waited on.
	var deliveryErr error
	tree := make([]Process, 0, len(children)+1)
	for _, child := range children {
		if t.protected(child) {
			continue
		}
		if err := t.signal(child, Process.Terminate); err != nil {
			deliveryErr = err
		}
		tree = append(tree, child)
	}
	if err := t.signal(proc, Process.Terminate); err != nil {
		deliveryErr = err
	}
	tree = append(tree, proc)

	alive := waitExit(tree, t.GracefulTimeout)

	escalated := false
	for _, p := range alive {
		escalated = true
		if err := t.signal(p, Process.Kill); err != nil {
			deliveryErr = err
		}
	}

	var stillAlive []Process
	if len(alive) > 0 {
		stillAlive = waitExit(alive, t.ForceTimeout)
	}

	switch {
	case deliveryErr != nil:
		return false, fmt.Sprintf("signal delivery failed: %v", deliveryErr)
	case len(stillAlive) > 0:
		return true, fmt.Sprintf("still alive after force kill (%d left)", len(stillAlive))
	case escalated:
		return true, "killed after timeout"
	default:
		return true, "terminated"
	}
}

func (t *Terminator) protected(p Process) bool {
	if t.Safe.HasPID(p.Pid()) {
		return true
	}
	name, err := p.Name()
	return err == nil && t.Safe.HasName(name)
}

// signal delivers send to p and decides whether an error matters. An
// error from a process that is no longer running is the enumerate-then-
// act race resolving itself, not a failure.
func (t *Terminator) signal(p Process, send func(Process) error) error {
	err := send(p)
	if err == nil {
		return nil
	}
	if running, rerr := p.Running(); rerr != nil || !running {
		return nil
	}
	return fmt.Errorf("pid %d: %w", p.Pid(), err)
}

// waitExit polls the set until every member has exited or the timeout
// elapses, and returns whoever is still alive. The wait is collective:
// one deadline covers the whole set.
func waitExit(procs []Process, timeout time.Duration) []Process {
	deadline := time.Now().Add(timeout)
	remaining := procs
	for {
		var alive []Process
		for _, p := range remaining {
			if running, err := p.Running(); err == nil && running {
				alive = append(alive, p)
			}
		}
		if len(alive) == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return alive
		}
		poll := livenessPoll
		if rest := time.Until(deadline); rest < poll {
			poll = rest
		}
		time.Sleep(poll)
		remaining = alive
	}
}
