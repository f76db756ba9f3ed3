// Package frames builds the ffmpeg invocation that writes video frames to
// numbered image files.
package frames

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"framegrab/command"
	"framegrab/ffmpeg"
	"framegrab/internal/timeutil"
	"framegrab/models"
)

// DefaultImageFormat is the extension used for extracted frames.
const DefaultImageFormat = "png"

// filenamePrefix and the %06d counter form the output pattern frame_000042.png.
const filenamePrefix = "frame_"

// FramesBuilder assembles `ffmpeg -i <video> -ss <start> -to <end> <filters> <pattern>`.
type FramesBuilder struct {
	videoPath string
	outputDir string

	startTime float64
	endTime   float64

	filterArgs   []string
	resetIndices bool
	imageFormat  string

	binary           string
	runner           command.Runner
	progressCallback models.ProgressCallback
}

// NewFramesBuilder creates a builder for videoPath writing into outputDir.
func NewFramesBuilder(videoPath, outputDir string) *FramesBuilder {
	return &FramesBuilder{
		videoPath:   videoPath,
		outputDir:   outputDir,
		imageFormat: DefaultImageFormat,
		binary:      command.DefaultFFmpeg,
		runner:      command.NewExecRunner(),
	}
}

// SetWindow sets the extraction window in seconds.
func (b *FramesBuilder) SetWindow(start, end float64) *FramesBuilder {
	b.startTime = start
	b.endTime = end
	return b
}

// SetFilterArgs sets the strategy-specific arguments placed after the window.
func (b *FramesBuilder) SetFilterArgs(args ...string) *FramesBuilder {
	b.filterArgs = append([]string(nil), args...)
	return b
}

// SetResetIndices controls frame numbering. When false (the default) files are
// named after each frame's presentation timestamp via -frame_pts; when true
// they are numbered sequentially.
func (b *FramesBuilder) SetResetIndices(reset bool) *FramesBuilder {
	b.resetIndices = reset
	return b
}

// SetImageFormat sets the output image extension (png, jpg, ...).
func (b *FramesBuilder) SetImageFormat(format string) *FramesBuilder {
	if format != "" {
		b.imageFormat = strings.TrimPrefix(strings.ToLower(format), ".")
	}
	return b
}

// SetBinary overrides the ffmpeg executable.
func (b *FramesBuilder) SetBinary(binary string) *FramesBuilder {
	if binary != "" {
		b.binary = binary
	}
	return b
}

// SetRunner overrides how the command is executed.
func (b *FramesBuilder) SetRunner(runner command.Runner) *FramesBuilder {
	if runner != nil {
		b.runner = runner
	}
	return b
}

// SetProgressCallback enables -progress reporting.
func (b *FramesBuilder) SetProgressCallback(callback models.ProgressCallback) *FramesBuilder {
	b.progressCallback = callback
	return b
}

// OutputPattern returns the printf-style path ffmpeg writes frames to.
func (b *FramesBuilder) OutputPattern() string {
	return filepath.Join(b.outputDir, filenamePrefix+"%06d."+b.imageFormat)
}

// OutputGlob returns a glob matching the files OutputPattern produces.
func (b *FramesBuilder) OutputGlob() string {
	return filepath.Join(b.outputDir, filenamePrefix+"*."+b.imageFormat)
}

// BuildArgs constructs the ffmpeg arguments for frame extraction.
func (b *FramesBuilder) BuildArgs() []string {
	args := []string{
		"-i", b.videoPath,
		"-ss", timeutil.FormatSeconds(b.startTime),
		"-to", timeutil.FormatSeconds(b.endTime),
	}

	args = append(args, b.filterArgs...)

	if !b.resetIndices {
		args = append(args, "-frame_pts", "true")
	}

	if b.progressCallback != nil {
		args = append(args, ffmpeg.ProgressArgs...)
	}

	args = append(args, "-y", b.OutputPattern())
	return args
}

// Run executes the extraction command.
func (b *FramesBuilder) Run(ctx context.Context) error {
	args := b.BuildArgs()

	var (
		onLine   func(string)
		progress *models.ExtractionProgress
	)
	if b.progressCallback != nil {
		parser := ffmpeg.NewProgressParser()
		progress = models.NewExtractionProgress(b.endTime - b.startTime)
		onLine = func(line string) {
			if parser.ParseLine(line, progress) {
				b.progressCallback(progress)
			}
		}
	}

	if err := b.runner.Stream(ctx, b.binary, args, onLine); err != nil {
		if progress != nil {
			if ctx.Err() != nil {
				progress.Cancel()
			} else {
				progress.Fail()
			}
			b.progressCallback(progress)
		}
		return fmt.Errorf("frame extraction failed: %w", err)
	}
	return nil
}

// DryRun returns the command that would be executed without running it
func (b *FramesBuilder) DryRun() (string, error) {
	if b.endTime <= b.startTime {
		return "", fmt.Errorf("invalid window: end %.3fs is not after start %.3fs", b.endTime, b.startTime)
	}
	return command.Join(b.binary, b.BuildArgs()), nil
}

// GetInputPath returns the input video path
func (b *FramesBuilder) GetInputPath() string {
	return b.videoPath
}

// GetOutputPath returns the output file pattern
func (b *FramesBuilder) GetOutputPath() string {
	return b.OutputPattern()
}

var _ command.Command = (*FramesBuilder)(nil)
