package hero

import (
	"time"
)

// DefaultSampleInterval is the shared timing window used to measure CPU
// utilization for a whole candidate batch.
const DefaultSampleInterval = 400 * time.Millisecond

// SampleCPU measures CPU utilization for every candidate over a single
// shared window. Each candidate is primed with a non-blocking baseline
// read, then one sleep covers the whole batch, then a second read yields
// the percentage. Wall-clock cost is the interval, independent of the
// number of candidates.
//
// Candidates that vanish before priming are left out of the result;
// candidates that vanish during the window are reported as 0.0.
func SampleCPU(procs []Process, interval time.Duration) map[int32]float64 {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	values := make(map[int32]float64, len(procs))

	alive := make([]Process, 0, len(procs))
	for _, p := range procs {
		if err := p.PrimeCPU(); err != nil {
			continue
		}
		alive = append(alive, p)
	}

	time.Sleep(interval)

	for _, p := range alive {
		pct, err := p.CPUPercent()
		if err != nil {
			values[p.Pid()] = 0.0
			continue
		}
		values[p.Pid()] = pct
	}
	return values
}
