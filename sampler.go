package main

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"sysagent/internal/format"
)

// cpuSampleWindow is the blocking measurement window for one CPU sample.
// This is a sampling contract, not the pause between cycles.
const cpuSampleWindow = 1 * time.Second

// Sampler produces one CPU utilization reading per call. The call blocks
// for the measurement window.
type Sampler interface {
	SampleCPU() (float64, error)
}

// gopsutilSampler measures system-wide CPU utilization via gopsutil.
type gopsutilSampler struct {
	window time.Duration
}

func newSampler() Sampler {
	return &gopsutilSampler{window: cpuSampleWindow}
}

func (s *gopsutilSampler) SampleCPU() (float64, error) {
	percents, err := cpu.Percent(s.window, false)
	if err != nil {
		return 0, err
	}
	return format.SafeFloat(percents, 0), nil
}
