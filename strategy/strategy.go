// Package strategy decides which frames of a video are extracted.
//
// A Strategy turns a Request (requested fps or frame count, optional time
// bounds, probed metadata) into a Plan: the resolved extraction window and
// the ffmpeg arguments that select frames inside it. Strategies never run
// ffmpeg themselves.
package strategy

import (
	"errors"
	"math/rand/v2"

	"go.uber.org/zap"

	"framegrab/ffprobe"
	"framegrab/internal/logger"
)

var (
	ErrInvalidFPS       = errors.New("invalid fps")
	ErrInvalidMetadata  = errors.New("invalid metadata")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrFPSExceedsSource = errors.New("requested fps exceeds source fps")
	ErrUnknownStrategy  = errors.New("unknown strategy")
)

// Request carries everything a strategy needs to plan an extraction.
type Request struct {
	// FPS is the sampling rate for uniform and the number of frames for
	// fixed_random. Zero means not provided.
	FPS int

	// StartTime and EndTime bound the window in seconds. Nil means the
	// start or end of the video.
	StartTime *float64
	EndTime   *float64

	Metadata ffprobe.Metadata
}

// Plan is the outcome of a strategy: where to cut and how to filter.
type Plan struct {
	Strategy   string
	FilterArgs []string
	StartTime  float64
	EndTime    float64

	// FrameIndices lists the selected source frame numbers, ascending.
	// Only fixed_random fills it.
	FrameIndices []int
}

// Strategy is a named frame selection policy.
type Strategy interface {
	Name() string
	Plan(req Request) (*Plan, error)
}

// Options configures strategy construction.
type Options struct {
	Logger *zap.Logger
	// Rand drives fixed_random sampling. Nil uses an unseeded source.
	Rand *rand.Rand
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return logger.Nop()
	}
	return o.Logger
}
