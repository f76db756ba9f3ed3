// Package ffmpeg parses the machine-readable progress report ffmpeg writes
// when started with -progress pipe:1.
package ffmpeg

import (
	"regexp"
	"strconv"
	"strings"

	"framegrab/models"
)

// ProgressArgs make ffmpeg write key=value progress blocks to stdout.
var ProgressArgs = []string{"-progress", "pipe:1", "-nostats"}

// ProgressParser parses ffmpeg -progress output into ExtractionProgress.
type ProgressParser struct {
	frameRegex     *regexp.Regexp
	fpsRegex       *regexp.Regexp
	totalSizeRegex *regexp.Regexp
	outTimeRegex   *regexp.Regexp
	speedRegex     *regexp.Regexp
	stateRegex     *regexp.Regexp
}

// NewProgressParser creates a new parser for ffmpeg progress output
func NewProgressParser() *ProgressParser {
	return &ProgressParser{
		frameRegex:     regexp.MustCompile(`^frame=\s*(\d+)$`),
		fpsRegex:       regexp.MustCompile(`^fps=\s*([0-9.]+)$`),
		totalSizeRegex: regexp.MustCompile(`^total_size=\s*(\d+)$`),
		// out_time is N/A (or negative) until the first frame is muxed
		outTimeRegex: regexp.MustCompile(`^out_time=\s*(\d+:\d{2}:[0-9.]+)$`),
		speedRegex:   regexp.MustCompile(`^speed=\s*([0-9.]+)x$`),
		stateRegex:   regexp.MustCompile(`^progress=(continue|end)$`),
	}
}

// ParseLine parses one key=value line and updates progress.
// It returns true when the line changed progress.
func (pp *ProgressParser) ParseLine(line string, progress *models.ExtractionProgress) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if matches := pp.frameRegex.FindStringSubmatch(line); len(matches) > 1 {
		if frame, err := strconv.ParseInt(matches[1], 10, 64); err == nil {
			progress.Frame = frame
			progress.State = models.ProgressStateExtracting
			return true
		}
		return false
	}

	if matches := pp.fpsRegex.FindStringSubmatch(line); len(matches) > 1 {
		if fps, err := strconv.ParseFloat(matches[1], 64); err == nil {
			progress.FPS = fps
			return true
		}
		return false
	}

	if matches := pp.totalSizeRegex.FindStringSubmatch(line); len(matches) > 1 {
		if size, err := strconv.ParseInt(matches[1], 10, 64); err == nil {
			progress.TotalSize = size
			return true
		}
		return false
	}

	if matches := pp.outTimeRegex.FindStringSubmatch(line); len(matches) > 1 {
		progress.OutTime = matches[1]
		progress.CalculateProgress(pp.timeToSeconds(matches[1]))
		return true
	}

	if matches := pp.speedRegex.FindStringSubmatch(line); len(matches) > 1 {
		if speed, err := strconv.ParseFloat(matches[1], 64); err == nil {
			progress.Speed = speed
			return true
		}
		return false
	}

	if matches := pp.stateRegex.FindStringSubmatch(line); len(matches) > 1 {
		if matches[1] == "end" {
			progress.Complete()
			return true
		}
	}

	return false
}

// timeToSeconds converts ffmpeg time format (HH:MM:SS.micro) to seconds
func (pp *ProgressParser) timeToSeconds(timeStr string) float64 {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)

	if err1 != nil || err2 != nil || err3 != nil {
		return 0
	}

	return hours*3600 + minutes*60 + seconds
}
