package strategy

import (
	"fmt"

	"framegrab/ffprobe"
)

// ValidateFPS checks that a positive fps (or frame count) was supplied.
func ValidateFPS(fps int) (int, error) {
	if fps == 0 {
		return 0, fmt.Errorf("%w: fps is required", ErrInvalidFPS)
	}
	if fps < 0 {
		return 0, fmt.Errorf("%w: %d, must be a positive integer", ErrInvalidFPS, fps)
	}
	return fps, nil
}

// ValidateAvgFPS returns the source average frame rate, which must be positive.
func ValidateAvgFPS(meta ffprobe.Metadata) (float64, error) {
	if meta.AvgFPS <= 0 {
		return 0, fmt.Errorf("%w: avg_fps %g, must be positive", ErrInvalidMetadata, meta.AvgFPS)
	}
	return meta.AvgFPS, nil
}

// ValidateTimeRange resolves the extraction window against the video
// duration. A nil start means 0 and a nil end means the full duration.
// The window must satisfy 0 <= start < duration and start < end <= duration.
func ValidateTimeRange(meta ffprobe.Metadata, start, end *float64) (float64, float64, error) {
	duration := meta.Duration
	if duration <= 0 {
		return 0, 0, fmt.Errorf("%w: duration %gs, must be positive", ErrInvalidMetadata, duration)
	}

	actualStart := 0.0
	if start != nil {
		actualStart = *start
	}
	actualEnd := duration
	if end != nil {
		actualEnd = *end
	}

	if actualStart < 0 || actualStart >= duration {
		return 0, 0, fmt.Errorf("%w: start time (%gs) must be within video duration (0s - %gs)",
			ErrInvalidTimeRange, actualStart, duration)
	}

	if actualEnd <= actualStart || actualEnd > duration {
		return 0, 0, fmt.Errorf("%w: end time (%gs) must be greater than start time (%gs) and within video duration (0s - %gs)",
			ErrInvalidTimeRange, actualEnd, actualStart, duration)
	}

	return actualStart, actualEnd, nil
}
