package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"framegrab/ffprobe"
	"framegrab/strategy"
)

// Flag names shared by the extract and metadata commands.
const (
	FlagConfig            = "config"
	FlagVideoPath         = "video_path"
	FlagOutputDir         = "output_dir"
	FlagStrategy          = "strategy"
	FlagFPS               = "fps"
	FlagStartTime         = "start_time"
	FlagEndTime           = "end_time"
	FlagResetIndices      = "reset_indices"
	FlagAllowAnyExtension = "allow_any_extension"
	FlagVerbose           = "verbose"
	FlagDryRun            = "dry_run"
	FlagWorkers           = "workers"
	FlagFormat            = "format"
	FlagSeed              = "seed"
	FlagFFmpeg            = "ffmpeg"
	FlagFFprobe           = "ffprobe"
	FlagFields            = "fields"
	FlagJSON              = "json"
	FlagSaveConfig        = "save_config"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  FlagConfig,
			Usage: "path to a YAML config file (default: search ./framegrab.yaml, ~/.framegrab/config.yaml, /etc/framegrab/config.yaml)",
		},
		&cli.StringFlag{
			Name:    FlagVideoPath,
			Aliases: []string{"i"},
			Usage:   "video file, or a directory of videos",
		},
		&cli.BoolFlag{
			Name:  FlagAllowAnyExtension,
			Usage: "accept files with any extension",
		},
		&cli.BoolFlag{
			Name:    FlagVerbose,
			Aliases: []string{"v"},
			Usage:   "enable informational logging",
		},
		&cli.StringFlag{
			Name:        FlagFFprobe,
			Usage:       "ffprobe binary",
			DefaultText: "ffprobe",
		},
	}
}

// ExtractFlags returns the flags of the extract command.
func ExtractFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:    FlagOutputDir,
			Aliases: []string{"o"},
			Usage:   "directory that receives the frames",
		},
		&cli.StringFlag{
			Name:        FlagStrategy,
			Aliases:     []string{"s"},
			Usage:       "sampling strategy: " + strings.Join(strategy.Names(), ", "),
			DefaultText: strategy.NameAll,
		},
		&cli.IntFlag{
			Name:  FlagFPS,
			Usage: "frames per second for uniform, number of frames for fixed_random",
		},
		&cli.Float64Flag{
			Name:        FlagStartTime,
			Usage:       "start of the window in seconds",
			DefaultText: "0",
		},
		&cli.Float64Flag{
			Name:        FlagEndTime,
			Usage:       "end of the window in seconds",
			DefaultText: "end of video",
		},
		&cli.BoolFlag{
			Name:  FlagResetIndices,
			Usage: "number frames from 1 instead of keeping source frame numbers",
		},
		&cli.BoolFlag{
			Name:  FlagDryRun,
			Usage: "print the ffmpeg commands without running them",
		},
		&cli.IntFlag{
			Name:        FlagWorkers,
			Aliases:     []string{"j"},
			Usage:       "videos extracted in parallel in directory mode (0 = one per CPU)",
			DefaultText: "1",
		},
		&cli.StringFlag{
			Name:        FlagFormat,
			Usage:       "frame image format: " + strings.Join(ImageFormatValues(), ", "),
			DefaultText: "png",
		},
		&cli.Uint64Flag{
			Name:  FlagSeed,
			Usage: "seed for fixed_random sampling",
		},
		&cli.StringFlag{
			Name:  FlagSaveConfig,
			Usage: "write the effective configuration to this YAML file",
		},
		&cli.StringFlag{
			Name:        FlagFFmpeg,
			Usage:       "ffmpeg binary",
			DefaultText: "ffmpeg",
		},
	)
}

// MetadataFlags returns the flags of the metadata command.
func MetadataFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringSliceFlag{
			Name:  FlagFields,
			Usage: "fields to print: " + strings.Join(ffprobe.FieldNames(), ", "),
		},
		&cli.BoolFlag{
			Name:  FlagJSON,
			Usage: "print metadata as JSON",
		},
	)
}

// MergeFromFlags overrides config values with flags set on the command line.
// Flags the command does not declare are ignored.
func (c *Config) MergeFromFlags(ctx *cli.Context) {
	if ctx.IsSet(FlagVideoPath) {
		c.VideoPath = ctx.String(FlagVideoPath)
	}
	if ctx.IsSet(FlagOutputDir) {
		c.OutputDir = ctx.String(FlagOutputDir)
	}
	if ctx.IsSet(FlagStrategy) {
		c.Strategy = ctx.String(FlagStrategy)
	}
	if ctx.IsSet(FlagFPS) {
		c.FPS = ctx.Int(FlagFPS)
	}
	if ctx.IsSet(FlagStartTime) {
		c.StartTime = ctx.Float64(FlagStartTime)
	}
	if ctx.IsSet(FlagEndTime) {
		end := ctx.Float64(FlagEndTime)
		c.EndTime = &end
	}
	if ctx.IsSet(FlagSeed) {
		seed := ctx.Uint64(FlagSeed)
		c.Seed = &seed
	}
	if ctx.IsSet(FlagResetIndices) {
		c.ResetIndices = ctx.Bool(FlagResetIndices)
	}
	if ctx.IsSet(FlagAllowAnyExtension) {
		c.AllowAnyExtension = ctx.Bool(FlagAllowAnyExtension)
	}
	if ctx.IsSet(FlagFormat) {
		c.ImageFormat = normalizeFormat(ctx.String(FlagFormat))
	}
	if ctx.IsSet(FlagWorkers) {
		c.Workers = ctx.Int(FlagWorkers)
	}
	if ctx.IsSet(FlagFFmpeg) {
		c.Binaries.FFmpeg = ctx.String(FlagFFmpeg)
	}
	if ctx.IsSet(FlagFFprobe) {
		c.Binaries.FFprobe = ctx.String(FlagFFprobe)
	}
	if ctx.IsSet(FlagVerbose) {
		c.Verbose = ctx.Bool(FlagVerbose)
	}
	if ctx.IsSet(FlagDryRun) {
		c.DryRun = ctx.Bool(FlagDryRun)
	}
}

// PrintConfig writes the effective configuration.
func (c *Config) PrintConfig(w io.Writer) {
	fmt.Fprintln(w, "Effective configuration")
	fmt.Fprintf(w, "  Video:          %s\n", c.VideoPath)
	fmt.Fprintf(w, "  Output:         %s\n", c.OutputDir)
	fmt.Fprintf(w, "  Strategy:       %s\n", c.Strategy)
	if c.FPS > 0 {
		fmt.Fprintf(w, "  FPS:            %d\n", c.FPS)
	}
	fmt.Fprintf(w, "  Start:          %gs\n", c.StartTime)
	if c.EndTime != nil {
		fmt.Fprintf(w, "  End:            %gs\n", *c.EndTime)
	} else {
		fmt.Fprintln(w, "  End:            end of video")
	}
	if c.Seed != nil {
		fmt.Fprintf(w, "  Seed:           %d\n", *c.Seed)
	}
	fmt.Fprintf(w, "  Format:         %s\n", c.ImageFormat)
	fmt.Fprintf(w, "  Reset Indices:  %v\n", c.ResetIndices)
	fmt.Fprintf(w, "  Any Extension:  %v\n", c.AllowAnyExtension)
	fmt.Fprintf(w, "  Workers:        %d\n", c.EffectiveWorkers())
	fmt.Fprintf(w, "  ffmpeg:         %s\n", c.Binaries.FFmpeg)
	fmt.Fprintf(w, "  ffprobe:        %s\n", c.Binaries.FFprobe)
}
