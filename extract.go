package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"framegrab/config"
	"framegrab/extractor"
	"framegrab/models"
	"framegrab/strategy"
)

func (e *env) extract(c *cli.Context) error {
	cfg, err := config.LoadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := e.logger(cfg.Verbose, "extract")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	videos, isDir, err := collectVideos(log, cfg.VideoPath, cfg.AllowAnyExtension)
	if err != nil {
		return err
	}

	var subDirs []string
	if isDir {
		subDirs = extractor.SubOutputDirs(cfg.OutputDir, videos)
	}
	outputFor := func(index int) string {
		if isDir {
			return subDirs[index]
		}
		return cfg.OutputDir
	}

	if path := c.String(config.FlagSaveConfig); path != "" {
		if err := config.SaveConfigFile(cfg, path); err != nil {
			return err
		}
		log.Info("saved effective configuration", zap.String("path", path))
	}

	if cfg.DryRun {
		return e.dryRun(c.Context, cfg, log, videos, outputFor)
	}

	log.Info("starting extraction",
		zap.Int("videos", len(videos)),
		zap.String("strategy", cfg.Strategy),
		zap.Int("workers", cfg.EffectiveWorkers()))

	var (
		onProgress models.ProgressCallback
		onDone     func(*models.ExtractionResult)
	)
	if e.interactive {
		if len(videos) == 1 {
			name := filepath.Base(videos[0])
			bar := e.newBar(100, name)
			onProgress = func(p *models.ExtractionProgress) {
				bar.Describe(name + " " + p.FormatSummary())
				_ = bar.Set(int(p.Progress))
			}
			defer func() { _ = bar.Finish() }()
		} else {
			bar := e.newBar(len(videos), "Extracting")
			onDone = func(*models.ExtractionResult) { _ = bar.Add(1) }
			defer func() { _ = bar.Finish() }()
		}
	}

	job := func(ctx context.Context, index int, video string) (*models.ExtractionResult, error) {
		ex, err := e.newExtractor(cfg, log, index, video, outputFor(index), onProgress)
		if err != nil {
			return nil, err
		}
		return ex.Extract(ctx)
	}

	results, batchErr := extractor.RunBatch(c.Context, videos, cfg.EffectiveWorkers(), job, onDone)
	if errors.Is(batchErr, context.Canceled) {
		return batchErr
	}

	e.printResults(results)

	if batchErr != nil {
		if len(videos) == 1 {
			return results[0].Error
		}
		return fmt.Errorf("some videos failed:\n%w", batchErr)
	}
	return nil
}

// newExtractor builds the extractor for the index-th video of the run.
// With a seed, every video gets its own deterministic random stream.
func (e *env) newExtractor(cfg *config.Config, log *zap.Logger, index int, video, outputDir string, onProgress models.ProgressCallback) (*extractor.Extractor, error) {
	videoLog := log.With(zap.String("video", filepath.Base(video)))

	strategyOpts := strategy.Options{Logger: videoLog}
	if cfg.Seed != nil {
		strategyOpts.Rand = rand.New(rand.NewPCG(*cfg.Seed, uint64(index)))
	}
	s, err := strategy.New(cfg.Strategy, strategyOpts)
	if err != nil {
		return nil, err
	}

	start := cfg.StartTime
	return extractor.New(extractor.Options{
		VideoPath:         video,
		OutputDir:         outputDir,
		AllowAnyExtension: cfg.AllowAnyExtension,
		FPS:               cfg.FPS,
		StartTime:         &start,
		EndTime:           cfg.EndTime,
		Strategy:          s,
		ResetIndices:      cfg.ResetIndices,
		ImageFormat:       cfg.ImageFormat,
		DryRun:            cfg.DryRun,
	},
		extractor.WithLogger(videoLog),
		extractor.WithRunner(e.runner),
		extractor.WithBinaries(cfg.Binaries.FFmpeg, cfg.Binaries.FFprobe),
		extractor.WithProgress(onProgress),
	)
}

// dryRun probes every video and prints the ffmpeg command that would run.
func (e *env) dryRun(ctx context.Context, cfg *config.Config, log *zap.Logger, videos []string, outputFor func(int) string) error {
	bold := color.New(color.Bold)

	bold.Fprintln(e.stdout, "DRY RUN: nothing will be extracted")
	cfg.PrintConfig(e.stdout)
	fmt.Fprintln(e.stdout)

	var errs []error
	for i, video := range videos {
		ex, err := e.newExtractor(cfg, log, i, video, outputFor(i), nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
			continue
		}
		builder, _, err := ex.Prepare(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
			continue
		}
		preview, err := builder.DryRun()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
			continue
		}
		fmt.Fprintln(e.stdout, preview)
	}
	return errors.Join(errs...)
}

func (e *env) printResults(results []*models.ExtractionResult) {
	ok := color.New(color.FgGreen)
	failed := color.New(color.FgRed)

	var frames, succeeded int
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Success {
			succeeded++
			frames += res.FramesWritten
			ok.Fprintf(e.stdout, "✓ %s\n", res.Summary())
		} else {
			failed.Fprintf(e.stdout, "✗ %s\n", res.Summary())
		}
	}

	color.New(color.Bold).Fprintf(e.stdout, "Extracted %d frames from %d/%d videos\n", frames, succeeded, len(results))
}

func (e *env) newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}
