// Package command provides the Command interface implemented by FFmpeg
// builders and the Runner used to execute external tools.
//
// Builders only assemble argument lists. Execution goes through a Runner so
// callers (and tests) can substitute how ffmpeg and ffprobe are started.
package command

import (
	"context"
	"strings"
)

// Default binary names, resolved through PATH.
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
)

// Command represents an FFmpeg command that can be built, executed, or previewed.
//
// Example usage:
//
//	cmd := frames.NewFramesBuilder("input.mp4", "out").
//		SetWindow(0, 10).
//		SetFilterArgs("-vf", "fps=1")
//
//	preview, _ := cmd.DryRun()
//	err := cmd.Run(ctx)
type Command interface {
	// BuildArgs constructs and returns the FFmpeg command arguments as a slice,
	// without the binary name.
	BuildArgs() []string

	// Run executes the command and blocks until it exits or ctx is cancelled.
	Run(ctx context.Context) error

	// DryRun returns the full command line as a string without executing it.
	DryRun() (string, error)

	// GetInputPath returns the primary input file path for this command.
	GetInputPath() string

	// GetOutputPath returns the output path (or pattern) for this command.
	GetOutputPath() string
}

// Join renders a binary and its arguments as a single shell-like line.
// Arguments containing spaces or quotes are wrapped in double quotes.
func Join(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"") {
			arg = `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
