package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// maxTrendPoints bounds the in-memory sample history kept for the sparkline.
const maxTrendPoints = 72

// Monitor runs the sample → compare → emit → sleep cycle. A single
// goroutine drives Run; Stop may be called from any other goroutine and
// is observed at the next loop-top check (the current sleep is not
// interrupted early).
type Monitor struct {
	cfg     MonitorConfig
	sampler Sampler
	sink    EventSink

	running int32 // atomic; the only cross-goroutine coordination

	trendMu sync.Mutex
	trend   []TrendPoint

	// test seams
	now   func() time.Time
	sleep func(time.Duration)
}

// NewMonitor validates the configuration and builds an idle monitor.
func NewMonitor(cfg MonitorConfig, sampler Sampler, sink EventSink) (*Monitor, error) {
	if cfg.CheckIntervalSeconds <= 0 {
		return nil, fmt.Errorf("check interval must be positive, got %d", cfg.CheckIntervalSeconds)
	}
	if cfg.CPUThresholdPercent < 0 || cfg.CPUThresholdPercent > 100 {
		return nil, fmt.Errorf("cpu threshold must be in 0-100, got %g", cfg.CPUThresholdPercent)
	}
	if sampler == nil {
		return nil, fmt.Errorf("nil sampler")
	}
	if sink == nil {
		sink = logSink{}
	}
	return &Monitor{
		cfg:     cfg,
		sampler: sampler,
		sink:    sink,
		now:     time.Now,
		sleep:   time.Sleep,
	}, nil
}

// IsRunning reports whether the loop is between Run entry and exit.
func (m *Monitor) IsRunning() bool {
	return atomic.LoadInt32(&m.running) == 1
}

// Stop requests loop termination. Takes effect at the next loop-top
// check, so termination may lag by up to one full check interval.
func (m *Monitor) Stop() {
	atomic.StoreInt32(&m.running, 0)
}

// Run enters the monitoring loop and blocks until stopped. A failed
// sample read skips the cycle and keeps the loop alive; any other error
// during a cycle stops the loop and is returned so callers can exit
// with an error status. Clean stops return nil. Run never panics out
// and may be called again after it returns.
func (m *Monitor) Run() error {
	atomic.StoreInt32(&m.running, 1)
	defer atomic.StoreInt32(&m.running, 0)

	m.sink.Emit(Event{
		Kind:            EventStartup,
		Time:            m.now(),
		Threshold:       m.cfg.CPUThresholdPercent,
		IntervalSeconds: m.cfg.CheckIntervalSeconds,
	})

	interval := time.Duration(m.cfg.CheckIntervalSeconds) * time.Second
	for m.IsRunning() {
		if err := m.cycle(); err != nil {
			m.sink.Emit(Event{Kind: EventFatal, Time: m.now(), Err: err})
			return err
		}
		m.sleep(interval)
	}

	m.sink.Emit(Event{Kind: EventStopped, Time: m.now()})
	return nil
}

// cycle performs one sample-compare-emit pass. A sampler error is
// emitted as a sample_error event and returns nil so the loop
// continues; anything that panics is recovered into the returned error.
func (m *Monitor) cycle() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("monitor cycle: %v", r)
		}
	}()

	value, sampleErr := m.sampler.SampleCPU()
	now := m.now()
	if sampleErr != nil {
		m.sink.Emit(Event{Kind: EventSampleError, Time: now, Err: sampleErr})
		return nil
	}

	m.recordTrend(now, value)

	if value > m.cfg.CPUThresholdPercent {
		m.sink.Emit(Event{
			Kind:       EventAlert,
			Time:       now,
			CPUPercent: value,
			Threshold:  m.cfg.CPUThresholdPercent,
			Excess:     value - m.cfg.CPUThresholdPercent,
		})
	} else {
		m.sink.Emit(Event{
			Kind:       EventNormal,
			Time:       now,
			CPUPercent: value,
		})
	}
	return nil
}

func (m *Monitor) recordTrend(t time.Time, value float64) {
	m.trendMu.Lock()
	defer m.trendMu.Unlock()

	m.trend = append(m.trend, TrendPoint{Time: t, Value: value})
	if len(m.trend) > maxTrendPoints {
		m.trend = m.trend[len(m.trend)-maxTrendPoints:]
	}
}

// TrendValues returns the recent sample values, oldest first.
func (m *Monitor) TrendValues() []float64 {
	m.trendMu.Lock()
	defer m.trendMu.Unlock()

	out := make([]float64, len(m.trend))
	for i, p := range m.trend {
		out[i] = p.Value
	}
	return out
}
