// Package models provides the data structures passed between the extractor,
// the ffmpeg progress parser, and the CLI.
package models

import (
	"fmt"
	"strings"
	"time"
)

// ExtractionResult represents the outcome of extracting frames from one video.
//
// Successful results carry the output directory and no error; failed results
// carry an error. Use NewExtractionResultSuccess or NewExtractionResultFailure
// to create validated instances.
type ExtractionResult struct {
	VideoPath     string        `json:"video_path"`
	OutputDir     string        `json:"output_dir"`
	Strategy      string        `json:"strategy"`
	StartTime     float64       `json:"start_time"`
	EndTime       float64       `json:"end_time"`
	FrameIndices  []int         `json:"frame_indices,omitempty"`
	FramesWritten int           `json:"frames_written"`
	Elapsed       time.Duration `json:"elapsed"`
	Success       bool          `json:"success"`
	Error         error         `json:"-"`
}

// NewExtractionResultSuccess creates a successful result with validation.
//
// Returns an error if videoPath or outputDir is empty or whitespace-only.
func NewExtractionResultSuccess(videoPath, outputDir string) (*ExtractionResult, error) {
	er := &ExtractionResult{
		VideoPath: videoPath,
		OutputDir: outputDir,
		Success:   true,
	}
	if err := er.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction result: %w", err)
	}
	return er, nil
}

// NewExtractionResultFailure creates a failed result. extractErr must not be nil.
func NewExtractionResultFailure(videoPath string, extractErr error) (*ExtractionResult, error) {
	if extractErr == nil {
		return nil, fmt.Errorf("invalid extraction result: error cannot be nil for failed result")
	}
	return &ExtractionResult{
		VideoPath: videoPath,
		Success:   false,
		Error:     extractErr,
	}, nil
}

// Validate checks that the result has consistent state:
//   - VideoPath is always required
//   - Success results have an OutputDir and no Error
//   - Failed results have an Error
func (er *ExtractionResult) Validate() error {
	if strings.TrimSpace(er.VideoPath) == "" {
		return fmt.Errorf("video_path cannot be empty")
	}

	if er.Success && er.Error != nil {
		return fmt.Errorf("inconsistent state: Success is true but Error is not nil")
	}

	if !er.Success && er.Error == nil {
		return fmt.Errorf("failed result must have an error")
	}

	if er.Success && strings.TrimSpace(er.OutputDir) == "" {
		return fmt.Errorf("output_dir cannot be empty for successful result")
	}

	if er.EndTime < er.StartTime {
		return fmt.Errorf("end_time must not be before start_time")
	}

	return nil
}

// Summary returns a one-line description for logs and terminal output.
func (er *ExtractionResult) Summary() string {
	if !er.Success {
		return fmt.Sprintf("%s: failed: %v", er.VideoPath, er.Error)
	}
	return fmt.Sprintf("%s: %d frames (%s, %.3fs-%.3fs) -> %s",
		er.VideoPath, er.FramesWritten, er.Strategy, er.StartTime, er.EndTime, er.OutputDir)
}
