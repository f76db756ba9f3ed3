package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"framegrab/config"
	"framegrab/extractor"
	"framegrab/ffprobe"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var fieldLabels = map[string]string{
	ffprobe.FieldCodec:       "Codec",
	ffprobe.FieldResolution:  "Resolution",
	ffprobe.FieldAvgFPS:      "Avg FPS",
	ffprobe.FieldDuration:    "Duration",
	ffprobe.FieldTotalFrames: "Total Frames",
	ffprobe.FieldBitrate:     "Bitrate (kbps)",
}

// videoMetadata is one entry of the --json output.
type videoMetadata struct {
	Video    string         `json:"video"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func (e *env) metadata(c *cli.Context) error {
	cfg, err := config.LoadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForMetadata(); err != nil {
		return err
	}

	log, err := e.logger(cfg.Verbose, "metadata")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	fields := c.StringSlice(config.FlagFields)
	for _, name := range fields {
		if !slices.Contains(ffprobe.FieldNames(), name) {
			log.Warn("ignoring unknown metadata field", zap.String("field", name))
		}
	}

	videos, _, err := collectVideos(log, cfg.VideoPath, cfg.AllowAnyExtension)
	if err != nil {
		return err
	}

	var (
		entries []videoMetadata
		errs    []error
	)
	for _, video := range videos {
		entry := videoMetadata{Video: video}

		meta, err := e.probe(c, cfg, log, video)
		if err != nil {
			if c.Context.Err() != nil {
				return c.Context.Err()
			}
			log.Error("failed to read metadata", zap.String("video", video), zap.Error(err))
			entry.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
		} else {
			entry.Metadata = meta.Map(fields...)
		}

		if !c.Bool(config.FlagJSON) {
			e.printMetadata(video, meta, fields)
		}
		entries = append(entries, entry)
	}

	if c.Bool(config.FlagJSON) {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		fmt.Fprintln(e.stdout, string(out))
	}

	return errors.Join(errs...)
}

func (e *env) probe(c *cli.Context, cfg *config.Config, log *zap.Logger, video string) (*ffprobe.Metadata, error) {
	ex, err := extractor.New(extractor.Options{
		VideoPath:         video,
		AllowAnyExtension: cfg.AllowAnyExtension,
	},
		extractor.WithLogger(log),
		extractor.WithRunner(e.runner),
		extractor.WithBinaries(cfg.Binaries.FFmpeg, cfg.Binaries.FFprobe),
	)
	if err != nil {
		return nil, err
	}
	return ex.Metadata(c.Context)
}

func (e *env) printMetadata(video string, meta *ffprobe.Metadata, fields []string) {
	if meta == nil {
		return
	}

	color.New(color.Bold).Fprintf(e.stdout, "\nVideo Metadata for %s:\n", filepath.Base(video))
	label := color.New(color.FgCyan)
	for _, f := range meta.Fields(fields...) {
		label.Fprintf(e.stdout, "%s: ", fieldLabels[f.Name])
		fmt.Fprintln(e.stdout, f.String())
	}
}
