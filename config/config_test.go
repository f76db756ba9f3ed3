package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "all", cfg.Strategy)
	assert.Equal(t, 0.0, cfg.StartTime)
	assert.Nil(t, cfg.EndTime)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, "png", cfg.ImageFormat)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "ffmpeg", cfg.Binaries.FFmpeg)
	assert.Equal(t, "ffprobe", cfg.Binaries.FFprobe)
	assert.False(t, cfg.ResetIndices)
	assert.False(t, cfg.DryRun)
}

func TestValidate(t *testing.T) {
	video := createTempFile(t)
	end := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		modify    func(*Config)
		errorText string
	}{
		{name: "valid config"},
		{name: "valid uniform", modify: func(c *Config) { c.Strategy = "uniform"; c.FPS = 2 }},
		{name: "strategy is case insensitive", modify: func(c *Config) { c.Strategy = "Fixed_Random"; c.FPS = 5 }},
		{name: "valid window", modify: func(c *Config) { c.StartTime = 1; c.EndTime = end(3) }},
		{name: "auto workers", modify: func(c *Config) { c.Workers = 0 }},
		{
			name:      "missing video",
			modify:    func(c *Config) { c.VideoPath = "" },
			errorText: "video path is required",
		},
		{
			name:      "video does not exist",
			modify:    func(c *Config) { c.VideoPath = filepath.Join(t.TempDir(), "gone.mp4") },
			errorText: "video path does not exist",
		},
		{
			name:      "missing output",
			modify:    func(c *Config) { c.OutputDir = "" },
			errorText: "output directory is required",
		},
		{
			name:      "unknown strategy",
			modify:    func(c *Config) { c.Strategy = "sometimes" },
			errorText: "invalid strategy 'sometimes'",
		},
		{
			name:      "uniform without fps",
			modify:    func(c *Config) { c.Strategy = "uniform" },
			errorText: "the 'uniform' strategy requires fps",
		},
		{
			name:      "fixed_random without fps",
			modify:    func(c *Config) { c.Strategy = "fixed_random" },
			errorText: "the 'fixed_random' strategy requires fps",
		},
		{
			name:      "negative fps",
			modify:    func(c *Config) { c.FPS = -3 },
			errorText: "fps cannot be negative",
		},
		{
			name:      "negative start",
			modify:    func(c *Config) { c.StartTime = -1 },
			errorText: "start time cannot be negative",
		},
		{
			name:      "negative end",
			modify:    func(c *Config) { c.EndTime = end(-1) },
			errorText: "end time cannot be negative",
		},
		{
			name:      "end before start",
			modify:    func(c *Config) { c.StartTime = 4; c.EndTime = end(2) },
			errorText: "end time must be greater than start time",
		},
		{
			name:      "bad format",
			modify:    func(c *Config) { c.ImageFormat = "gif" },
			errorText: "invalid image format 'gif'",
		},
		{
			name:      "negative workers",
			modify:    func(c *Config) { c.Workers = -1 },
			errorText: "workers cannot be negative",
		},
		{
			name:      "empty ffmpeg",
			modify:    func(c *Config) { c.Binaries.FFmpeg = "" },
			errorText: "ffmpeg binary is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.VideoPath = video
			cfg.OutputDir = t.TempDir()
			if tt.modify != nil {
				tt.modify(cfg)
			}

			err := cfg.Validate()
			if tt.errorText == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorText)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = "uniform"
	cfg.Workers = -2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "video path is required")
	assert.Contains(t, err.Error(), "output directory is required")
	assert.Contains(t, err.Error(), "requires fps")
	assert.Contains(t, err.Error(), "workers cannot be negative")
}

func TestValidateForMetadata(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VideoPath = createTempFile(t)
	// Extraction-only settings are not checked.
	cfg.Strategy = "uniform"
	cfg.ImageFormat = "gif"
	assert.NoError(t, cfg.ValidateForMetadata())

	cfg.VideoPath = ""
	err := cfg.ValidateForMetadata()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video path is required")
}

func TestIsValidImageFormat(t *testing.T) {
	for _, format := range []string{"png", "jpg", "bmp", "tiff", "webp", "PNG", ".jpg", " webp "} {
		assert.True(t, IsValidImageFormat(format), format)
	}
	for _, format := range []string{"", "gif", "jpeg2000", "mp4"} {
		assert.False(t, IsValidImageFormat(format), format)
	}
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.EffectiveWorkers())

	cfg.Workers = 6
	assert.Equal(t, 6, cfg.EffectiveWorkers())

	cfg.Workers = 0
	assert.Equal(t, runtime.NumCPU(), cfg.EffectiveWorkers())
}

func createTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))
	return path
}
