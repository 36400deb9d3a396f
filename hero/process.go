// Package hero implements the resource-intensive process governor behind
// `genesis hero`: it enumerates live processes, filters out everything
// that must never be touched, samples CPU over one shared window, ranks
// the remainder by a weighted score and terminates the winners with
// graceful-then-forced escalation.
package hero

import (
	ps "github.com/shirou/gopsutil/v3/process"
)

// Process is the capability surface the governor needs from one live OS
// process. Handles are ephemeral: they are valid for a single governor
// pass and every accessor may fail at any time because the process table
// changes underneath us. Callers treat such failures as "process is
// gone", never as a reason to abort a batch.
type Process interface {
	Pid() int32
	Name() (string, error)
	Username() (string, error)
	// ResidentMemoryMB returns the resident set size in megabytes.
	ResidentMemoryMB() (float64, error)
	Cmdline() (string, error)
	// PrimeCPU establishes a CPU time baseline without blocking. The
	// next CPUPercent call reports utilization since this baseline.
	PrimeCPU() error
	CPUPercent() (float64, error)
	// Children returns all live descendants, depth first. Descendants
	// that cannot be enumerated are skipped.
	Children() ([]Process, error)
	// Terminate asks the process to exit (SIGTERM on unix).
	Terminate() error
	// Kill stops the process unconditionally (SIGKILL on unix).
	Kill() error
	Running() (bool, error)
}

type gopsProcess struct {
	p *ps.Process
}

func (g *gopsProcess) Pid() int32 { return g.p.Pid }

func (g *gopsProcess) Name() (string, error) { return g.p.Name() }

func (g *gopsProcess) Username() (string, error) { return g.p.Username() }

func (g *gopsProcess) ResidentMemoryMB() (float64, error) {
	info, err := g.p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(info.RSS) / (1024 * 1024), nil
}

func (g *gopsProcess) Cmdline() (string, error) { return g.p.Cmdline() }

func (g *gopsProcess) PrimeCPU() error {
	// Percent(0) is non-blocking: it records a baseline on the first
	// call and measures against the previous call afterwards.
	_, err := g.p.Percent(0)
	return err
}

func (g *gopsProcess) CPUPercent() (float64, error) {
	return g.p.Percent(0)
}

func (g *gopsProcess) Children() ([]Process, error) {
	direct, err := g.p.Children()
	if err != nil {
		return nil, err
	}
	var all []Process
	for _, child := range direct {
		wrapped := &gopsProcess{p: child}
		all = append(all, wrapped)
		// Enumeration failures below a child just prune that branch.
		grandchildren, err := wrapped.Children()
		if err == nil {
			all = append(all, grandchildren...)
		}
	}
	return all, nil
}

func (g *gopsProcess) Terminate() error { return g.p.Terminate() }

func (g *gopsProcess) Kill() error { return g.p.Kill() }

func (g *gopsProcess) Running() (bool, error) { return g.p.IsRunning() }

// Snapshot enumerates all processes visible to the caller. The returned
// handles reflect one instant of the process table; a fresh snapshot
// must be taken for every new decision.
func Snapshot() ([]Process, error) {
	list, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	procs := make([]Process, 0, len(list))
	for _, p := range list {
		procs = append(procs, &gopsProcess{p: p})
	}
	return procs, nil
}

// Resolve looks up a live handle for pid. Absence is a normal outcome,
// reported through ok, not an error.
func Resolve(pid int32) (Process, bool) {
	p, err := ps.NewProcess(pid)
	if err != nil {
		return nil, false
	}
	return &gopsProcess{p: p}, true
}
