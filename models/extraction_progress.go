package models

import (
	"fmt"
	"time"
)

// ExtractionProgress represents real-time extraction metrics reported by
// ffmpeg through -progress.
type ExtractionProgress struct {
	// Position in the output
	Frame   int64   // Frames written so far
	FPS     float64 // Frames per second being processed
	OutTime string  // Output timestamp (HH:MM:SS.micro)

	// Performance
	Speed float64 // Processing speed multiplier (2.5 means 2.5x realtime)

	// Size of all frames written so far, in bytes
	TotalSize int64

	// Percentage calculation
	TotalDuration float64 // Length of the extraction window in seconds
	Progress      float64 // Percentage complete (0-100)

	State     ProgressState
	StartTime time.Time
	UpdatedAt time.Time
}

// ProgressState represents the current state of an extraction.
type ProgressState string

const (
	ProgressStateQueued     ProgressState = "queued"
	ProgressStateExtracting ProgressState = "extracting"
	ProgressStateCompleted  ProgressState = "completed"
	ProgressStateFailed     ProgressState = "failed"
	ProgressStateCancelled  ProgressState = "cancelled"
)

// ProgressCallback receives progress updates during extraction.
type ProgressCallback func(progress *ExtractionProgress)

// NewExtractionProgress creates a progress tracker for a window of
// totalDuration seconds.
func NewExtractionProgress(totalDuration float64) *ExtractionProgress {
	now := time.Now()
	return &ExtractionProgress{
		TotalDuration: totalDuration,
		State:         ProgressStateQueued,
		StartTime:     now,
		UpdatedAt:     now,
	}
}

// CalculateProgress updates the percentage from the current output position.
func (ep *ExtractionProgress) CalculateProgress(currentSeconds float64) {
	if ep.TotalDuration > 0 {
		ep.Progress = (currentSeconds / ep.TotalDuration) * 100
		if ep.Progress > 100 {
			ep.Progress = 100
		}
	}
	ep.UpdatedAt = time.Now()
}

// Complete marks the extraction as finished at 100%.
func (ep *ExtractionProgress) Complete() {
	ep.State = ProgressStateCompleted
	ep.Progress = 100
	ep.UpdatedAt = time.Now()
}

// Fail marks the extraction as failed.
func (ep *ExtractionProgress) Fail() {
	ep.State = ProgressStateFailed
	ep.UpdatedAt = time.Now()
}

// Cancel marks the extraction as stopped before it finished.
func (ep *ExtractionProgress) Cancel() {
	ep.State = ProgressStateCancelled
	ep.UpdatedAt = time.Now()
}

// EstimatedTimeRemaining calculates ETA based on elapsed time and percentage.
func (ep *ExtractionProgress) EstimatedTimeRemaining() time.Duration {
	if ep.Progress <= 0 {
		return 0
	}

	elapsed := ep.UpdatedAt.Sub(ep.StartTime)
	totalEstimated := time.Duration(float64(elapsed) / (ep.Progress / 100))
	remaining := totalEstimated - elapsed

	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatSummary returns a human-readable summary of the progress.
func (ep *ExtractionProgress) FormatSummary() string {
	return fmt.Sprintf(
		"Progress: %.1f%% | Frames: %d | Speed: %.2fx | ETA: %s",
		ep.Progress,
		ep.Frame,
		ep.Speed,
		formatDuration(ep.EstimatedTimeRemaining()),
	)
}

// formatDuration converts a duration to a human-readable string
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "calculating..."
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	seconds = seconds % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
