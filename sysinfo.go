package main

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"sysagent/internal/format"
)

// querySystemSnapshot reads the static system facts shown at monitor start.
// Pure read, callable independent of the monitor loop. A missing CPU
// frequency is not an error; the snapshot carries 0 and the renderer
// marks it unavailable.
func querySystemSnapshot(diskPath string) (SystemSnapshot, error) {
	var snap SystemSnapshot

	count, err := cpu.Counts(true)
	if err != nil {
		return snap, fmt.Errorf("cpu count: %w", err)
	}
	snap.CPUCoreCount = count

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		snap.CPUFrequencyMHz = infos[0].Mhz
	}

	v, err := mem.VirtualMemory()
	if err != nil {
		return snap, fmt.Errorf("memory: %w", err)
	}
	snap.MemoryTotal = v.Total
	snap.MemoryAvailable = v.Available

	d, err := disk.Usage(diskPath)
	if err != nil {
		return snap, fmt.Errorf("disk %s: %w", diskPath, err)
	}
	snap.DiskTotal = d.Total
	snap.DiskFree = d.Free

	if h, err := host.Info(); err == nil {
		snap.Hostname = h.Hostname
		snap.UptimeSeconds = h.Uptime
	}

	return snap, nil
}

// queryMemoryStatus reads current virtual memory usage. Independent read.
func queryMemoryStatus() (MemoryStatus, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return MemoryStatus{}, fmt.Errorf("memory: %w", err)
	}
	return MemoryStatus{
		Total:       v.Total,
		Available:   v.Available,
		Free:        v.Free,
		UsedPercent: v.UsedPercent,
	}, nil
}

// renderSnapshot builds the multi-line system-info dump.
func renderSnapshot(s SystemSnapshot) string {
	var b strings.Builder
	b.WriteString("System Information:\n")
	if s.Hostname != "" {
		fmt.Fprintf(&b, "  - Host: %s (up %s)\n", s.Hostname, format.FormatUptime(s.UptimeSeconds))
	}
	fmt.Fprintf(&b, "  - CPU Cores: %d\n", s.CPUCoreCount)
	fmt.Fprintf(&b, "  - CPU Frequency: %s\n", format.FormatMHz(s.CPUFrequencyMHz))
	fmt.Fprintf(&b, "  - Total Memory: %s\n", format.FormatGB(s.MemoryTotal))
	fmt.Fprintf(&b, "  - Total Disk: %s", format.FormatGB(s.DiskTotal))
	return b.String()
}

// renderMemoryStatus builds the memory status dump.
func renderMemoryStatus(m MemoryStatus) string {
	var b strings.Builder
	b.WriteString("Memory Status:\n")
	fmt.Fprintf(&b, "  - Total: %s\n", format.FormatGB(m.Total))
	fmt.Fprintf(&b, "  - Available: %s\n", format.FormatGB(m.Available))
	fmt.Fprintf(&b, "  - Used: %s %s\n", format.FormatPercent(m.UsedPercent), format.MakeProgressBar(m.UsedPercent))
	fmt.Fprintf(&b, "  - Free: %s", format.FormatGB(m.Free))
	return b.String()
}
