package format

import (
	"fmt"
	"strings"
	"time"
)

// FormatGB renders a raw byte count in gigabytes with one decimal place.
func FormatGB(bytes uint64) string {
	return fmt.Sprintf("%.1f GB", float64(bytes)/1024/1024/1024)
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMHz renders a CPU frequency, or an unavailable marker when the
// platform could not report one.
func FormatMHz(mhz float64) string {
	if mhz <= 0 {
		return "unavailable"
	}
	return fmt.Sprintf("%.0f MHz", mhz)
}

// FormatUptime formats uptime in a readable format.
func FormatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// FormatDuration formats a duration readably.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatPeriod formats seconds into a human readable period.
func FormatPeriod(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	if seconds < 3600 {
		mins := seconds / 60
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := seconds / 3600
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

// SafeFloat safely gets a float from an array.
func SafeFloat(arr []float64, def float64) float64 {
	if len(arr) > 0 {
		return arr[0]
	}
	return def
}

// Truncate truncates a string to max length.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}

// MakeProgressBar creates a 10-step visual progress bar.
func MakeProgressBar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int((percent + 5) / 10)
	if filled > 10 {
		filled = 10
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// MiniGraph renders up to maxPoints values as a unicode sparkline.
// Values are clamped to the 0-100 range.
func MiniGraph(values []float64, maxPoints int) string {
	if len(values) == 0 {
		return ""
	}
	if len(values) > maxPoints {
		values = values[len(values)-maxPoints:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	var result strings.Builder

	for _, v := range values {
		idx := int(v / 12.5)
		if idx < 0 {
			idx = 0
		}
		if idx > 7 {
			idx = 7
		}
		result.WriteRune(chars[idx])
	}

	return result.String()
}
