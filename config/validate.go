package config

import (
	"fmt"
	"os"
	"strings"

	"framegrab/strategy"
)

// Validate checks the configuration for the extract command.
func (c *Config) Validate() error {
	var errors []string

	errors = append(errors, c.validateInput()...)

	if c.OutputDir == "" {
		errors = append(errors, "output directory is required")
	}

	if _, err := strategy.Lookup(c.Strategy); err != nil {
		errors = append(errors, fmt.Sprintf("invalid strategy '%s', must be one of: %s",
			c.Strategy, strings.Join(strategy.Names(), ", ")))
	} else if strategy.RequiresFPS(c.Strategy) && c.FPS <= 0 {
		errors = append(errors, fmt.Sprintf("the '%s' strategy requires fps", c.Strategy))
	}

	if c.FPS < 0 {
		errors = append(errors, "fps cannot be negative")
	}

	if c.StartTime < 0 {
		errors = append(errors, "start time cannot be negative")
	}
	if c.EndTime != nil {
		if *c.EndTime < 0 {
			errors = append(errors, "end time cannot be negative")
		} else if *c.EndTime <= c.StartTime {
			errors = append(errors, "end time must be greater than start time")
		}
	}

	if !IsValidImageFormat(c.ImageFormat) {
		errors = append(errors, fmt.Sprintf("invalid image format '%s', must be one of: %s",
			c.ImageFormat, strings.Join(ImageFormatValues(), ", ")))
	}

	// 0 is valid, means one worker per CPU
	if c.Workers < 0 {
		errors = append(errors, "workers cannot be negative (use 0 for auto-detect)")
	}

	errors = append(errors, c.Binaries.validate()...)

	return joinErrors(errors)
}

// ValidateForMetadata checks only what the metadata command needs.
func (c *Config) ValidateForMetadata() error {
	errors := c.validateInput()
	if c.Binaries.FFprobe == "" {
		errors = append(errors, "ffprobe binary is required")
	}
	return joinErrors(errors)
}

func (c *Config) validateInput() []string {
	if c.VideoPath == "" {
		return []string{"video path is required"}
	}
	if _, err := os.Stat(c.VideoPath); os.IsNotExist(err) {
		return []string{fmt.Sprintf("video path does not exist: %s", c.VideoPath)}
	}
	return nil
}

func (b BinariesConfig) validate() []string {
	var errors []string
	if b.FFmpeg == "" {
		errors = append(errors, "ffmpeg binary is required")
	}
	if b.FFprobe == "" {
		errors = append(errors, "ffprobe binary is required")
	}
	return errors
}

func joinErrors(errors []string) error {
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
