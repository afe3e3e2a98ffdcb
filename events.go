package main

import (
	"log/slog"

	"sysagent/internal/format"
)

// EventSink receives the monitor's per-cycle events. Implementations must
// not block for long; the monitor emits from its single loop goroutine.
type EventSink interface {
	Emit(e Event)
}

// logSink writes events through the default slog logger.
type logSink struct{}

func (logSink) Emit(e Event) {
	ts := e.Time.Format("2006-01-02 15:04:05")
	switch e.Kind {
	case EventNormal:
		slog.Info("CPU usage normal",
			"time", ts,
			"cpu", format.FormatPercent(e.CPUPercent))
	case EventAlert:
		slog.Warn("High CPU usage detected",
			"time", ts,
			"cpu", format.FormatPercent(e.CPUPercent),
			"threshold", format.FormatPercent(e.Threshold),
			"excess", format.FormatPercent(e.Excess))
	case EventSampleError:
		slog.Warn("CPU sample failed, skipping cycle", "time", ts, "err", e.Err)
	case EventFatal:
		slog.Error("Monitoring stopped on unexpected error", "time", ts, "err", e.Err)
	case EventStartup:
		slog.Info("CPU monitoring started",
			"threshold", format.FormatPercent(e.Threshold),
			"interval", format.FormatPeriod(e.IntervalSeconds))
	case EventStopped:
		slog.Info("Monitoring stopped", "time", ts)
	}
}

// multiSink fans events out to every sink in order.
type multiSink []EventSink

func (m multiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// combineSinks drops nil entries and collapses the single-sink case.
func combineSinks(sinks ...EventSink) EventSink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
