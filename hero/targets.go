package hero

import (
	"os/user"
	"sort"
	"time"
)

// maxCmdline caps how much of a command line a Target carries.
const maxCmdline = 300

// DefaultLimit is the maximum number of targets returned when no limit
// is configured.
const DefaultLimit = 15

// Weights controls how CPU and memory combine into a target's score.
type Weights struct {
	CPU    float64
	Memory float64
}

// DefaultWeights weighs CPU twice as heavily as memory: CPU pressure is
// what the user feels first.
func DefaultWeights() Weights {
	return Weights{CPU: 2.0, Memory: 0.5}
}

// Options configures a target search.
type Options struct {
	// Scope is "user" (the invoking user's processes only) or "all".
	Scope string
	// MemThresholdMB and CPUThreshold qualify a candidate when either
	// is met (inclusive).
	MemThresholdMB float64
	CPUThreshold   float64
	// Limit truncates the ranked result. Zero means DefaultLimit.
	Limit int
	// Fast skips CPU sampling entirely; CPU reads as unmeasured (0).
	Fast bool
	// SampleInterval is the shared CPU window. Zero means the default.
	SampleInterval time.Duration
	// Weights for the priority score. Zero value means DefaultWeights.
	Weights Weights
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options) weights() Weights {
	if o.Weights == (Weights{}) {
		return DefaultWeights()
	}
	return o.Weights
}

// Target is a process that exceeded the configured thresholds, frozen at
// the moment it was built. CPUPercent is 0 in fast mode, meaning
// unmeasured rather than idle.
type Target struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	RSSMB      float64 `json:"rss_mb"`
	CPUPercent float64 `json:"cpu_percent"`
	Cmdline    string  `json:"cmdline"`
	Score      float64 `json:"score"`
}

// FindTargets snapshots the process table and returns the ranked list of
// resource hogs. The result never contains a protected process, for any
// threshold configuration.
func FindTargets(opts Options, safe SafeSet) ([]Target, error) {
	procs, err := Snapshot()
	if err != nil {
		return nil, err
	}
	return buildTargets(procs, currentUsername(), opts, safe), nil
}

func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

// buildTargets runs classification, scope filtering, sampling,
// thresholding and ranking over one enumeration. Per-process read
// failures drop that process and nothing else.
func buildTargets(procs []Process, currentUser string, opts Options, safe SafeSet) []Target {
	var candidates []Process
	for _, p := range procs {
		if Protected(p, safe) {
			continue
		}
		if opts.Scope != "all" {
			uname, err := p.Username()
			if err != nil || uname != currentUser {
				continue
			}
		}
		candidates = append(candidates, p)
	}

	var cpuByPid map[int32]float64
	if !opts.Fast {
		cpuByPid = SampleCPU(candidates, opts.SampleInterval)
	}

	weights := opts.weights()
	var targets []Target
	for _, p := range candidates {
		cpu := cpuByPid[p.Pid()]
		rss, err := p.ResidentMemoryMB()
		if err != nil {
			rss = 0.0
		}
		if rss < opts.MemThresholdMB && cpu < opts.CPUThreshold {
			continue
		}
		name, err := p.Name()
		if err != nil {
			// vanished between classification and build
			continue
		}
		if name == "" {
			name = "?"
		}
		uname, err := p.Username()
		if err != nil || uname == "" {
			uname = "?"
		}
		cmdline, err := p.Cmdline()
		if err != nil {
			cmdline = ""
		}
		if cmdline == "" {
			cmdline = name
		}
		if len(cmdline) > maxCmdline {
			cmdline = cmdline[:maxCmdline]
		}
		targets = append(targets, Target{
			PID:        p.Pid(),
			Name:       name,
			Username:   uname,
			RSSMB:      rss,
			CPUPercent: cpu,
			Cmdline:    cmdline,
			Score:      cpu*weights.CPU + rss*weights.Memory,
		})
	}

	// Stable keeps enumeration order for equal scores, so output is
	// deterministic.
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Score > targets[j].Score
	})
	if limit := opts.limit(); len(targets) > limit {
		targets = targets[:limit]
	}
	return targets
}
