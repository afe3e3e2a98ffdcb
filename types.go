package main

import "sysagent/internal/model"

// Type aliases to internal model package
type Event = model.Event
type EventKind = model.EventKind
type SampleReading = model.SampleReading
type SystemSnapshot = model.SystemSnapshot
type MemoryStatus = model.MemoryStatus
type TrendPoint = model.TrendPoint

const (
	EventStartup     = model.EventStartup
	EventNormal      = model.EventNormal
	EventAlert       = model.EventAlert
	EventSampleError = model.EventSampleError
	EventFatal       = model.EventFatal
	EventStopped     = model.EventStopped
)
