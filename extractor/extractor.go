// Package extractor validates extraction parameters for one video, probes its
// metadata, asks a strategy for a plan, and runs ffmpeg.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"framegrab/command"
	"framegrab/command/frames"
	"framegrab/ffprobe"
	"framegrab/internal/logger"
	"framegrab/internal/paths"
	"framegrab/models"
	"framegrab/strategy"
)

var (
	ErrVideoNotFound       = errors.New("video path does not exist")
	ErrUnsupportedFormat   = errors.New("unsupported video format")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrMetadataUnavailable = errors.New("could not retrieve video metadata")
	ErrNoOutputDir         = errors.New("output directory is required for extraction")
)

// Options describes one extraction. Zero values mean "not provided".
type Options struct {
	VideoPath         string
	OutputDir         string
	AllowAnyExtension bool

	// FPS is the rate (uniform) or frame count (fixed_random).
	FPS       int
	StartTime *float64
	EndTime   *float64

	// Strategy defaults to all frames.
	Strategy     strategy.Strategy
	ResetIndices bool
	ImageFormat  string

	// DryRun leaves a missing output directory uncreated.
	DryRun bool
}

// Extractor orchestrates extraction for a single video.
type Extractor struct {
	opts Options

	log           *zap.Logger
	runner        command.Runner
	ffmpegBinary  string
	ffprobeBinary string
	onProgress    models.ProgressCallback
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Extractor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRunner sets how ffmpeg and ffprobe are executed.
func WithRunner(runner command.Runner) Option {
	return func(e *Extractor) {
		if runner != nil {
			e.runner = runner
		}
	}
}

// WithBinaries overrides the ffmpeg and ffprobe executables. Empty values keep
// the defaults.
func WithBinaries(ffmpegPath, ffprobePath string) Option {
	return func(e *Extractor) {
		if ffmpegPath != "" {
			e.ffmpegBinary = ffmpegPath
		}
		if ffprobePath != "" {
			e.ffprobeBinary = ffprobePath
		}
	}
}

// WithProgress reports ffmpeg progress while extracting.
func WithProgress(callback models.ProgressCallback) Option {
	return func(e *Extractor) {
		e.onProgress = callback
	}
}

// New validates opts and returns an Extractor.
//
// The video must exist and, unless AllowAnyExtension is set, carry one of the
// supported extensions. FPS must not be negative. Start and end times must not
// be negative and end must be after start when both are given. A non-empty
// OutputDir is created if missing, unless DryRun is set.
func New(opts Options, options ...Option) (*Extractor, error) {
	e := &Extractor{
		log:           logger.Nop(),
		runner:        command.NewExecRunner(),
		ffmpegBinary:  command.DefaultFFmpeg,
		ffprobeBinary: command.DefaultFFprobe,
	}
	for _, opt := range options {
		opt(e)
	}

	if _, err := os.Stat(opts.VideoPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, opts.VideoPath)
		}
		return nil, fmt.Errorf("failed to stat video %s: %w", opts.VideoPath, err)
	}

	if !opts.AllowAnyExtension && !paths.IsSupportedVideo(opts.VideoPath) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat,
			filepath.Ext(opts.VideoPath), strings.Join(paths.VideoExtensions(), ", "))
	}

	if err := validateParameters(opts); err != nil {
		return nil, err
	}

	if opts.OutputDir != "" {
		created, err := paths.EnsureOutputDir(opts.OutputDir, !opts.DryRun)
		if err != nil && !(opts.DryRun && errors.Is(err, paths.ErrOutputMissing)) {
			return nil, err
		}
		if created {
			e.log.Info("created output directory", zap.String("dir", opts.OutputDir))
		}
	}

	if opts.Strategy == nil {
		opts.Strategy = strategy.NewAll(strategy.Options{Logger: e.log})
	}
	if opts.ImageFormat == "" {
		opts.ImageFormat = frames.DefaultImageFormat
	}

	e.opts = opts
	return e, nil
}

func validateParameters(opts Options) error {
	if opts.FPS < 0 {
		return fmt.Errorf("%w: fps must be positive; received %d", ErrInvalidParameter, opts.FPS)
	}

	if opts.StartTime != nil && *opts.StartTime < 0 {
		return fmt.Errorf("%w: start time cannot be negative; received %g", ErrInvalidParameter, *opts.StartTime)
	}

	if opts.EndTime != nil {
		if *opts.EndTime < 0 {
			return fmt.Errorf("%w: end time cannot be negative; received %g", ErrInvalidParameter, *opts.EndTime)
		}
		if opts.StartTime != nil && *opts.EndTime <= *opts.StartTime {
			return fmt.Errorf("%w: end time (%g) must be greater than start time (%g)",
				ErrInvalidParameter, *opts.EndTime, *opts.StartTime)
		}
	}

	return nil
}

// Strategy returns the strategy in use.
func (e *Extractor) Strategy() strategy.Strategy {
	return e.opts.Strategy
}

// Metadata probes the video and returns its metadata.
func (e *Extractor) Metadata(ctx context.Context) (*ffprobe.Metadata, error) {
	meta, err := ffprobe.NewProber(e.runner).
		SetBinary(e.ffprobeBinary).
		Metadata(ctx, e.opts.VideoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}
	return meta, nil
}

// Prepare probes the video, plans the extraction, and returns the ffmpeg
// command without running it.
func (e *Extractor) Prepare(ctx context.Context) (*frames.FramesBuilder, *strategy.Plan, error) {
	if e.opts.OutputDir == "" {
		return nil, nil, ErrNoOutputDir
	}

	meta, err := e.Metadata(ctx)
	if err != nil {
		return nil, nil, err
	}

	e.log.Info("probed video",
		zap.String("video", e.opts.VideoPath),
		zap.String("codec", meta.Codec),
		zap.String("resolution", meta.Resolution),
		zap.Float64("avg_fps", meta.AvgFPS),
		zap.Float64("duration", meta.Duration))

	plan, err := e.opts.Strategy.Plan(strategy.Request{
		FPS:       e.opts.FPS,
		StartTime: e.opts.StartTime,
		EndTime:   e.opts.EndTime,
		Metadata:  *meta,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s strategy: %w", e.opts.Strategy.Name(), err)
	}

	builder := frames.NewFramesBuilder(e.opts.VideoPath, e.opts.OutputDir).
		SetWindow(plan.StartTime, plan.EndTime).
		SetFilterArgs(plan.FilterArgs...).
		SetResetIndices(e.opts.ResetIndices).
		SetImageFormat(e.opts.ImageFormat).
		SetBinary(e.ffmpegBinary).
		SetRunner(e.runner)
	if e.onProgress != nil {
		builder.SetProgressCallback(e.onProgress)
	}

	return builder, plan, nil
}

// Extract runs the full extraction and reports how many frame files this run
// wrote. Frames left in the output directory by earlier runs are not counted
// unless ffmpeg rewrote them.
func (e *Extractor) Extract(ctx context.Context) (*models.ExtractionResult, error) {
	started := time.Now()
	e.log.Info("starting frame extraction", zap.String("video", e.opts.VideoPath))

	builder, plan, err := e.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	before, err := snapshotFrames(builder.OutputGlob())
	if err != nil {
		return nil, err
	}

	if err := builder.Run(ctx); err != nil {
		return nil, err
	}

	written, err := countWrittenFrames(builder.OutputGlob(), before)
	if err != nil {
		return nil, err
	}

	result, err := models.NewExtractionResultSuccess(e.opts.VideoPath, e.opts.OutputDir)
	if err != nil {
		return nil, err
	}
	result.Strategy = plan.Strategy
	result.StartTime = plan.StartTime
	result.EndTime = plan.EndTime
	result.FrameIndices = plan.FrameIndices
	result.FramesWritten = written
	result.Elapsed = time.Since(started)

	e.log.Info("frames extracted",
		zap.String("output_dir", e.opts.OutputDir),
		zap.Int("count", result.FramesWritten),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

// snapshotFrames records the modification time of every file matching glob.
func snapshotFrames(glob string) (map[string]time.Time, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing frames: %w", err)
	}

	snapshot := make(map[string]time.Time, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		snapshot[path] = info.ModTime()
	}
	return snapshot, nil
}

// countWrittenFrames counts files matching glob that are missing from before
// or were modified since it was taken.
func countWrittenFrames(glob string, before map[string]time.Time) (int, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return 0, fmt.Errorf("failed to list extracted frames: %w", err)
	}

	written := 0
	for _, path := range matches {
		prev, existed := before[path]
		if !existed {
			written++
			continue
		}
		info, err := os.Stat(path)
		if err == nil && !info.ModTime().Equal(prev) {
			written++
		}
	}
	return written, nil
}
