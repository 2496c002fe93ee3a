package metrics

import "fmt"

// Humanized units used both in anomaly messages and by the text renderer.

// FormatNanos renders a nanosecond duration at a readable scale.
func FormatNanos(nanos int64) string {
	switch {
	case nanos < 1_000:
		return fmt.Sprintf("%dns", nanos)
	case nanos < 1_000_000:
		return fmt.Sprintf("%.2fµs", float64(nanos)/1_000)
	case nanos < 1_000_000_000:
		return fmt.Sprintf("%.2fms", float64(nanos)/1_000_000)
	default:
		return fmt.Sprintf("%.2fs", float64(nanos)/1_000_000_000)
	}
}

// FormatMillis renders a millisecond duration.
func FormatMillis(millis int64) string {
	if millis < 1_000 {
		return fmt.Sprintf("%dms", millis)
	}
	return fmt.Sprintf("%.2fs", float64(millis)/1_000)
}

// FormatBytes renders a byte count in binary units.
func FormatBytes(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%dB", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.2fMB", float64(bytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.2fGB", float64(bytes)/(1024*1024*1024))
	}
}

// FormatRecords renders a record count with K/M/B suffixes.
func FormatRecords(records int64) string {
	switch {
	case records < 1_000:
		return fmt.Sprintf("%d", records)
	case records < 1_000_000:
		return fmt.Sprintf("%.1fK", float64(records)/1_000)
	case records < 1_000_000_000:
		return fmt.Sprintf("%.1fM", float64(records)/1_000_000)
	default:
		return fmt.Sprintf("%.1fB", float64(records)/1_000_000_000)
	}
}
