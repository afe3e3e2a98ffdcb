package model

import "time"

// EventKind classifies the outcome of one monitoring cycle.
type EventKind int

const (
	EventStartup EventKind = iota
	EventNormal
	EventAlert
	EventSampleError
	EventFatal
	EventStopped
)

func (k EventKind) String() string {
	switch k {
	case EventStartup:
		return "startup"
	case EventNormal:
		return "normal"
	case EventAlert:
		return "alert"
	case EventSampleError:
		return "sample_error"
	case EventFatal:
		return "fatal"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event is one entry in the monitor's output stream.
type Event struct {
	Kind            EventKind
	Time            time.Time
	CPUPercent      float64
	Threshold       float64
	Excess          float64 // Alert only, always CPUPercent - Threshold
	IntervalSeconds int     // Startup only
	Err             error   // SampleError and Fatal only
}

// SampleReading is a single CPU measurement. Produced each cycle, not retained.
type SampleReading struct {
	CPUPercent float64
	Timestamp  time.Time
}

// SystemSnapshot holds slow-changing system facts read once at monitor start.
type SystemSnapshot struct {
	CPUCoreCount    int
	CPUFrequencyMHz float64 // 0 means unavailable
	MemoryTotal     uint64
	MemoryAvailable uint64
	DiskTotal       uint64
	DiskFree        uint64
	Hostname        string
	UptimeSeconds   uint64
}

// MemoryStatus is a point-in-time read of virtual memory.
type MemoryStatus struct {
	Total       uint64
	Available   uint64
	Free        uint64
	UsedPercent float64
}

// TrendPoint is one sample kept for the sparkline display.
type TrendPoint struct {
	Time  time.Time
	Value float64
}
