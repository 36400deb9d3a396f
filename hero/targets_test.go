package hero

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testUser = "dev"

func testOptions() Options {
	return Options{
		Scope:          "user",
		MemThresholdMB: 400,
		CPUThreshold:   50,
		SampleInterval: time.Millisecond,
	}
}

func candidate(pid int32, name string, rssMB, cpu float64) *fakeProcess {
	return &fakeProcess{
		pid:      pid,
		name:     name,
		username: testUser,
		rssMB:    rssMB,
		cpu:      cpu,
		cmdline:  "/usr/bin/" + name,
		running:  true,
	}
}

func TestBuildTargets_ScoreAndRanking(t *testing.T) {
	// cpu=60, rss=100  -> 60*2 + 100*0.5 = 170
	// cpu=10, rss=500  -> 10*2 + 500*0.5 = 270, must rank first
	procs := []Process{
		candidate(100, "cpuhog", 100, 60),
		candidate(101, "memhog", 500, 10),
	}
	opts := testOptions()
	opts.MemThresholdMB = 0
	opts.CPUThreshold = 0

	targets := buildTargets(procs, testUser, opts, NewSafeSet(nil, nil))

	require.Len(t, targets, 2)
	assert.Equal(t, int32(101), targets[0].PID)
	assert.Equal(t, 270.0, targets[0].Score)
	assert.Equal(t, int32(100), targets[1].PID)
	assert.Equal(t, 170.0, targets[1].Score)
}

func TestBuildTargets_ThresholdsAreOr(t *testing.T) {
	procs := []Process{
		candidate(100, "memonly", 450, 5),  // memory alone qualifies
		candidate(101, "neither", 100, 10), // neither threshold met
		candidate(102, "cpuonly", 50, 75),  // cpu alone qualifies
	}

	targets := buildTargets(procs, testUser, testOptions(), NewSafeSet(nil, nil))

	require.Len(t, targets, 2)
	names := []string{targets[0].Name, targets[1].Name}
	assert.Contains(t, names, "memonly")
	assert.Contains(t, names, "cpuonly")
}

func TestBuildTargets_Limit(t *testing.T) {
	var procs []Process
	for i := 0; i < 30; i++ {
		procs = append(procs, candidate(int32(100+i), fmt.Sprintf("hog%d", i), 500, 0))
	}
	opts := testOptions()
	opts.Limit = 5

	targets := buildTargets(procs, testUser, opts, NewSafeSet(nil, nil))

	assert.Len(t, targets, 5)
}

func TestBuildTargets_StableTieOrder(t *testing.T) {
	// Equal scores keep enumeration order.
	procs := []Process{
		candidate(100, "first", 500, 0),
		candidate(101, "second", 500, 0),
		candidate(102, "third", 500, 0),
	}

	targets := buildTargets(procs, testUser, testOptions(), NewSafeSet(nil, nil))

	require.Len(t, targets, 3)
	assert.Equal(t, []int32{100, 101, 102}, []int32{targets[0].PID, targets[1].PID, targets[2].PID})
}

func TestBuildTargets_ScopeUser(t *testing.T) {
	other := candidate(100, "otherhog", 900, 90)
	other.username = "root"
	procs := []Process{other, candidate(101, "minehog", 900, 90)}

	targets := buildTargets(procs, testUser, testOptions(), NewSafeSet(nil, nil))

	require.Len(t, targets, 1)
	assert.Equal(t, "minehog", targets[0].Name)
}

func TestBuildTargets_ScopeAll(t *testing.T) {
	other := candidate(100, "otherhog", 900, 90)
	other.username = "root"
	opts := testOptions()
	opts.Scope = "all"

	targets := buildTargets([]Process{other}, testUser, opts, NewSafeSet(nil, nil))

	require.Len(t, targets, 1)
}

func TestBuildTargets_FastSkipsSampling(t *testing.T) {
	proc := candidate(100, "memhog", 500, 99)
	opts := testOptions()
	opts.Fast = true

	start := time.Now()
	targets := buildTargets([]Process{proc}, testUser, opts, NewSafeSet(nil, nil))
	elapsed := time.Since(start)

	require.Len(t, targets, 1)
	assert.Equal(t, int32(0), proc.primes.Load(), "fast mode must not prime")
	assert.Equal(t, int32(0), proc.cpuReads.Load(), "fast mode must not sample")
	assert.Equal(t, 0.0, targets[0].CPUPercent, "cpu reads as unmeasured")
	assert.Less(t, elapsed, DefaultSampleInterval, "fast mode adds no sampling latency")
}

func TestBuildTargets_SafeNeverTargeted(t *testing.T) {
	safe := NewSafeSet([]string{"plasmashell"}, []int32{1})
	procs := []Process{
		candidate(1, "initish", 9999, 99),
		candidate(100, "plasmashell", 9999, 99),
		candidate(101, "hog", 9999, 99),
	}
	opts := testOptions()
	// zero thresholds qualify everything that is allowed at all
	opts.MemThresholdMB = 0
	opts.CPUThreshold = 0

	targets := buildTargets(procs, testUser, opts, safe)

	require.Len(t, targets, 1)
	assert.Equal(t, "hog", targets[0].Name)
}

func TestBuildTargets_CmdlineTruncated(t *testing.T) {
	proc := candidate(100, "hog", 500, 0)
	proc.cmdline = strings.Repeat("x", 2*maxCmdline)

	targets := buildTargets([]Process{proc}, testUser, testOptions(), NewSafeSet(nil, nil))

	require.Len(t, targets, 1)
	assert.Len(t, targets[0].Cmdline, maxCmdline)
}

func TestBuildTargets_Properties(t *testing.T) {
	safe := NewSafeSet([]string{"plasmashell", "systemd"}, []int32{1})

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		var procs []Process
		for i := 0; i < n; i++ {
			name := rapid.SampledFrom([]string{"plasmashell", "systemd", "hog", "leaky", "builder"}).
				Draw(t, fmt.Sprintf("name%d", i))
			procs = append(procs, candidate(
				int32(rapid.IntRange(1, 65535).Draw(t, fmt.Sprintf("pid%d", i))),
				name,
				rapid.Float64Range(0, 4096).Draw(t, fmt.Sprintf("rss%d", i)),
				rapid.Float64Range(0, 100).Draw(t, fmt.Sprintf("cpu%d", i)),
			))
		}
		opts := Options{
			Scope:          "user",
			MemThresholdMB: rapid.Float64Range(0, 1024).Draw(t, "memThresh"),
			CPUThreshold:   rapid.Float64Range(0, 100).Draw(t, "cpuThresh"),
			Limit:          rapid.IntRange(1, 25).Draw(t, "limit"),
			SampleInterval: time.Millisecond,
		}

		targets := buildTargets(procs, testUser, opts, safe)

		// never more than the limit
		if len(targets) > opts.Limit {
			t.Fatalf("got %d targets, limit %d", len(targets), opts.Limit)
		}
		for _, target := range targets {
			// protected processes never show up, whatever the thresholds
			if safe.HasName(target.Name) || safe.HasPID(target.PID) {
				t.Fatalf("protected process %q (pid %d) targeted", target.Name, target.PID)
			}
			// each target actually met at least one threshold
			if target.RSSMB < opts.MemThresholdMB && target.CPUPercent < opts.CPUThreshold {
				t.Fatalf("target %q below both thresholds", target.Name)
			}
		}
		// ranking is non-increasing in score
		for i := 1; i < len(targets); i++ {
			if targets[i].Score > targets[i-1].Score {
				t.Fatalf("targets not sorted by score at %d", i)
			}
		}
	})
}

func TestScoreMonotonicity(t *testing.T) {
	weights := DefaultWeights()
	score := func(cpu, rss float64) float64 {
		return cpu*weights.CPU + rss*weights.Memory
	}

	rapid.Check(t, func(t *rapid.T) {
		cpu := rapid.Float64Range(0, 100).Draw(t, "cpu")
		rss := rapid.Float64Range(0, 8192).Draw(t, "rss")
		dCPU := rapid.Float64Range(0, 100).Draw(t, "dCpu")
		dRSS := rapid.Float64Range(0, 8192).Draw(t, "dRss")

		if score(cpu+dCPU, rss) < score(cpu, rss) {
			t.Fatalf("score decreased when cpu grew")
		}
		if score(cpu, rss+dRSS) < score(cpu, rss) {
			t.Fatalf("score decreased when rss grew")
		}
	})
}
