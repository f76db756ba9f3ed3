package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"framegrab/internal/paths"
	"framegrab/models"
)

// Job extracts frames for one video of a batch. index is the video's position
// in the batch.
type Job func(ctx context.Context, index int, videoPath string) (*models.ExtractionResult, error)

// SubOutputDirs returns the output directory of each video in batch mode:
// <root>/<file name without extension>. Videos that would share a directory
// (a.mp4 and a.mkv) use their full file name instead (<root>/a.mp4).
func SubOutputDirs(root string, videos []string) []string {
	useBase := make([]bool, len(videos))
	names := make([]string, len(videos))
	for {
		owners := make(map[string][]int, len(videos))
		for i, video := range videos {
			names[i] = paths.Stem(video)
			if useBase[i] {
				names[i] = filepath.Base(video)
			}
			key := strings.ToLower(names[i])
			owners[key] = append(owners[key], i)
		}

		changed := false
		for _, idx := range owners {
			if len(idx) < 2 {
				continue
			}
			for _, i := range idx {
				if !useBase[i] {
					useBase[i] = true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	dirs := make([]string, len(videos))
	for i, name := range names {
		dirs[i] = filepath.Join(root, name)
	}
	return dirs
}

// RunBatch runs job for every video with at most workers running at once.
//
// A failing video does not stop the others; its failure is recorded in the
// returned results and all failures are joined into the returned error.
// onDone, if set, is called once per finished video and never concurrently.
// Cancelling ctx stops videos that have not started yet.
func RunBatch(ctx context.Context, videos []string, workers int, job Job, onDone func(*models.ExtractionResult)) ([]*models.ExtractionResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*models.ExtractionResult, len(videos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var doneMu sync.Mutex
	for i, video := range videos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := job(gctx, i, video)
			if err == nil && res == nil {
				err = errors.New("extraction returned no result")
			}
			if err != nil {
				res, _ = models.NewExtractionResultFailure(video, err)
			}
			results[i] = res

			if onDone != nil {
				doneMu.Lock()
				onDone(res)
				doneMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res != nil && !res.Success {
			errs = append(errs, fmt.Errorf("%s: %w", res.VideoPath, res.Error))
		}
	}
	return results, errors.Join(errs...)
}
