// Command framegrab extracts frames and reads metadata from video files
// using ffmpeg and ffprobe.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"framegrab/command"
	"framegrab/config"
	"framegrab/internal/logger"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

// Version is set at build time.
var Version = "dev"

// env carries what the commands need from the outside world, so tests can
// swap ffmpeg for a fake runner and capture output.
type env struct {
	runner      command.Runner
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
	newLogger   func(verbose bool) (*zap.Logger, error)
}

func defaultEnv() *env {
	return &env{
		runner:      command.NewExecRunner(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
		newLogger:   logger.New,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, defaultEnv())
	stop()
	os.Exit(code)
}

// run executes the CLI and maps the outcome to an exit code.
func run(ctx context.Context, args []string, e *env) int {
	err := newApp(e).RunContext(ctx, args)
	if err == nil {
		return exitOK
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		color.New(color.FgYellow).Fprintln(e.stderr, "\n⚠️  Interrupted, stopping")
		return exitInterrupted
	}

	color.New(color.FgRed).Fprintf(e.stderr, "❌ Error: %v\n", err)
	return exitError
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "framegrab",
		Usage:     "extract frames and read metadata from videos with ffmpeg",
		Version:   Version,
		Writer:    e.stdout,
		ErrWriter: e.stderr,
		Commands: []*cli.Command{
			{
				Name:  "extract",
				Usage: "extract frames from a video, or from every video in a directory",
				Description: "Frames are written as frame_%06d.<format> into --output_dir. " +
					"With a directory, each video gets its own subdirectory named after the file.",
				Flags:  config.ExtractFlags(),
				Action: e.extract,
			},
			{
				Name:   "metadata",
				Usage:  "print video metadata",
				Flags:  config.MetadataFlags(),
				Action: e.metadata,
			},
		},
		// Errors are printed by run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (e *env) logger(verbose bool, command string) (*zap.Logger, error) {
	log, err := e.newLogger(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log.With(zap.String("command", command), zap.String("run_id", uuid.NewString())), nil
}
