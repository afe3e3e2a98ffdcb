package main

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// captureSink records every emitted event for inspection.
type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *captureSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

func (s *captureSink) kinds() []EventKind {
	var out []EventKind
	for _, e := range s.all() {
		out = append(out, e.Kind)
	}
	return out
}

// scriptSampler replays a fixed sequence of readings and stops the
// monitor once the script is exhausted.
type scriptSampler struct {
	mon     *Monitor
	samples []float64
	errs    []error
	i       int
}

func (s *scriptSampler) SampleCPU() (float64, error) {
	if s.i >= len(s.samples) {
		s.mon.Stop()
		return 0, nil
	}
	v, err := s.samples[s.i], s.errs[s.i]
	s.i++
	if s.i == len(s.samples) {
		s.mon.Stop()
	}
	return v, err
}

func newScriptedMonitor(t *testing.T, threshold float64, samples []float64, errs []error) (*Monitor, *captureSink) {
	t.Helper()
	if errs == nil {
		errs = make([]error, len(samples))
	}
	sink := &captureSink{}
	sampler := &scriptSampler{samples: samples, errs: errs}
	mon, err := NewMonitor(MonitorConfig{CPUThresholdPercent: threshold, CheckIntervalSeconds: 1}, sampler, sink)
	if err != nil {
		t.Fatalf("NewMonitor: %v", err)
	}
	sampler.mon = mon
	mon.sleep = func(time.Duration) {}
	return mon, sink
}

func TestNewMonitorValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  MonitorConfig
	}{
		{"zero interval", MonitorConfig{CPUThresholdPercent: 50, CheckIntervalSeconds: 0}},
		{"negative interval", MonitorConfig{CPUThresholdPercent: 50, CheckIntervalSeconds: -5}},
		{"threshold too high", MonitorConfig{CPUThresholdPercent: 150, CheckIntervalSeconds: 10}},
		{"threshold negative", MonitorConfig{CPUThresholdPercent: -1, CheckIntervalSeconds: 10}},
	}

	for _, tc := range cases {
		if _, err := NewMonitor(tc.cfg, &scriptSampler{}, &captureSink{}); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestAlertOnlyAboveThreshold(t *testing.T) {
	mon, sink := newScriptedMonitor(t, 10, []float64{5.0, 15.0, 10.0}, nil)

	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []EventKind{EventStartup, EventNormal, EventAlert, EventNormal, EventStopped}
	got := sink.kinds()
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	startup := sink.all()[0]
	if startup.Threshold != 10.0 || startup.IntervalSeconds != 1 {
		t.Fatalf("startup carries threshold=%g interval=%d", startup.Threshold, startup.IntervalSeconds)
	}

	alert := sink.all()[2]
	if alert.CPUPercent != 15.0 || alert.Threshold != 10.0 {
		t.Fatalf("alert carries cpu=%g threshold=%g", alert.CPUPercent, alert.Threshold)
	}
	if alert.Excess != 5.0 {
		t.Fatalf("alert excess = %g, want 5.0", alert.Excess)
	}
}

func TestEqualToThresholdDoesNotAlert(t *testing.T) {
	mon, sink := newScriptedMonitor(t, 75, []float64{75.0}, nil)

	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, e := range sink.all() {
		if e.Kind == EventAlert {
			t.Fatalf("sample equal to threshold must not alert")
		}
	}
}

func TestTransientSampleErrorSkipsCycle(t *testing.T) {
	sampleErr := errors.New("metrics read failed")
	mon, sink := newScriptedMonitor(t, 50,
		[]float64{20.0, 0, 30.0},
		[]error{nil, sampleErr, nil})

	if err := mon.Run(); err != nil {
		t.Fatalf("transient sample error must not stop the loop: %v", err)
	}

	want := []EventKind{EventStartup, EventNormal, EventSampleError, EventNormal, EventStopped}
	got := sink.kinds()
	if len(got) != len(want) {
		t.Fatalf("got events %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !errors.Is(sink.all()[2].Err, sampleErr) {
		t.Fatalf("sample_error event should carry the sampler error")
	}
}

// panicSampler blows up after a number of good samples.
type panicSampler struct {
	good int
}

func (s *panicSampler) SampleCPU() (float64, error) {
	if s.good > 0 {
		s.good--
		return 10, nil
	}
	panic("unexpected failure")
}

func TestUnexpectedErrorStopsLoop(t *testing.T) {
	sink := &captureSink{}
	mon, err := NewMonitor(MonitorConfig{CPUThresholdPercent: 50, CheckIntervalSeconds: 1}, &panicSampler{good: 1}, sink)
	if err != nil {
		t.Fatalf("NewMonitor: %v", err)
	}
	mon.sleep = func(time.Duration) {}

	if err := mon.Run(); err == nil {
		t.Fatalf("expected error from fatal cycle")
	}
	if mon.IsRunning() {
		t.Fatalf("monitor still running after fatal error")
	}

	got := sink.kinds()
	if got[len(got)-1] != EventFatal {
		t.Fatalf("last event = %v, want fatal", got[len(got)-1])
	}
}

// steadySampler returns the same value forever.
type steadySampler struct{ value float64 }

func (s steadySampler) SampleCPU() (float64, error) { return s.value, nil }

func TestStopFromAnotherGoroutine(t *testing.T) {
	sink := &captureSink{}
	mon, err := NewMonitor(MonitorConfig{CPUThresholdPercent: 90, CheckIntervalSeconds: 1}, steadySampler{value: 5}, sink)
	if err != nil {
		t.Fatalf("NewMonitor: %v", err)
	}
	mon.sleep = func(time.Duration) { time.Sleep(time.Millisecond) }

	done := make(chan error, 1)
	go func() { done <- mon.Run() }()

	// Let a few cycles through, then stop mid-sleep from this goroutine.
	time.Sleep(20 * time.Millisecond)
	mon.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after Stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not terminate after Stop")
	}

	if mon.IsRunning() {
		t.Fatalf("IsRunning true after Run returned")
	}

	// No sample-driven events may arrive once the loop has exited.
	events := len(sink.all())
	time.Sleep(20 * time.Millisecond)
	if got := len(sink.all()); got != events {
		t.Fatalf("events kept flowing after stop: %d -> %d", events, got)
	}
}

func TestRunCanBeRearmed(t *testing.T) {
	mon, sink := newScriptedMonitor(t, 50, []float64{10}, nil)
	if err := mon.Run(); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	sampler := &scriptSampler{samples: []float64{20}, errs: make([]error, 1), mon: mon}
	mon.sampler = sampler
	if err := mon.Run(); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	normals := 0
	for _, e := range sink.all() {
		if e.Kind == EventNormal {
			normals++
		}
	}
	if normals != 2 {
		t.Fatalf("expected one normal event per run, got %d", normals)
	}
}

func TestTrendIsBounded(t *testing.T) {
	samples := make([]float64, maxTrendPoints+10)
	mon, _ := newScriptedMonitor(t, 100, samples, nil)

	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(mon.TrendValues()); got != maxTrendPoints {
		t.Fatalf("trend length = %d, want %d", got, maxTrendPoints)
	}
}
