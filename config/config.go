package config

import (
	"runtime"
	"slices"
	"strings"

	"framegrab/command"
	"framegrab/strategy"
)

// Config holds all extraction options.
type Config struct {
	// Input and output
	VideoPath string `yaml:"video_path"`
	OutputDir string `yaml:"output_dir"`

	// Sampling
	Strategy  string   `yaml:"strategy"`
	FPS       int      `yaml:"fps"`        // frames per second, or frame count for fixed_random
	StartTime float64  `yaml:"start_time"` // seconds
	EndTime   *float64 `yaml:"end_time"`   // nil = end of video
	Seed      *uint64  `yaml:"seed"`       // nil = random per run

	// Output naming
	ResetIndices bool   `yaml:"reset_indices"`
	ImageFormat  string `yaml:"image_format"`

	AllowAnyExtension bool `yaml:"allow_any_extension"`

	// Directory mode
	Workers int `yaml:"workers"` // 0 = one per CPU

	Binaries BinariesConfig `yaml:"binaries"`

	Verbose bool `yaml:"verbose"`
	DryRun  bool `yaml:"dry_run"` // print commands without extracting
}

// BinariesConfig points at the ffmpeg tools.
type BinariesConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Strategy:    strategy.NameAll,
		StartTime:   0,
		ImageFormat: "png",
		Workers:     1,
		Binaries: BinariesConfig{
			FFmpeg:  command.DefaultFFmpeg,
			FFprobe: command.DefaultFFprobe,
		},
	}
}

// EffectiveWorkers resolves the worker setting to a concrete limit.
func (c *Config) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// ImageFormatValues returns the supported frame image formats.
func ImageFormatValues() []string {
	return []string{"bmp", "jpg", "png", "tiff", "webp"}
}

// IsValidImageFormat reports whether format is supported, ignoring case and
// a leading dot.
func IsValidImageFormat(format string) bool {
	return slices.Contains(ImageFormatValues(), normalizeFormat(format))
}

func normalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}
