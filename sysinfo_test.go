package main

import (
	"strings"
	"testing"
)

func TestRenderSnapshot(t *testing.T) {
	giB := uint64(1024 * 1024 * 1024)
	snap := SystemSnapshot{
		CPUCoreCount:    8,
		CPUFrequencyMHz: 2400,
		MemoryTotal:     16 * giB,
		MemoryAvailable: 9 * giB,
		DiskTotal:       500 * giB,
		DiskFree:        200 * giB,
		Hostname:        "nas",
		UptimeSeconds:   90000,
	}

	out := renderSnapshot(snap)
	for _, want := range []string{
		"CPU Cores: 8",
		"CPU Frequency: 2400 MHz",
		"Total Memory: 16.0 GB",
		"Total Disk: 500.0 GB",
		"nas",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("snapshot output %q missing %q", out, want)
		}
	}
}

func TestRenderSnapshotUnknownFrequency(t *testing.T) {
	out := renderSnapshot(SystemSnapshot{CPUCoreCount: 4})
	if !strings.Contains(out, "CPU Frequency: unavailable") {
		t.Fatalf("missing unavailable marker: %q", out)
	}
	// No hostname means no host line at all.
	if strings.Contains(out, "Host:") {
		t.Fatalf("unexpected host line: %q", out)
	}
}

func TestRenderMemoryStatus(t *testing.T) {
	giB := uint64(1024 * 1024 * 1024)
	out := renderMemoryStatus(MemoryStatus{
		Total:       16 * giB,
		Available:   4 * giB,
		Free:        2 * giB,
		UsedPercent: 75.0,
	})

	for _, want := range []string{
		"Total: 16.0 GB",
		"Available: 4.0 GB",
		"Used: 75.0%",
		"Free: 2.0 GB",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("memory output %q missing %q", out, want)
		}
	}
}
