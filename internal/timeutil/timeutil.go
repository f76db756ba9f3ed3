// Package timeutil provides time formatting utilities for FFmpeg commands.
package timeutil

import (
	"fmt"
	"math"
)

// FormatSeconds converts seconds to HH:MM:SS.mmm format for FFmpeg.
//
// This format is used for the -ss (seek start) and -to (seek end) output
// options. Values are rounded to the nearest millisecond; negative values
// are clamped to zero.
//
// Example:
//
//	FormatSeconds(0)        // "00:00:00.000"
//	FormatSeconds(90)       // "00:01:30.000"
//	FormatSeconds(3661.123) // "01:01:01.123"
func FormatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}
