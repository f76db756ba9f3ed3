package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"framegrab/internal/paths"
)

var errNoVideos = errors.New("no supported videos found")

// collectVideos resolves --video_path to the videos to process. A file is
// returned as is (extension checks happen in the extractor). A directory is
// expanded to its supported videos; skipped files are logged.
func collectVideos(log *zap.Logger, videoPath string, allowAny bool) (videos []string, isDir bool, err error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, false, fmt.Errorf("invalid path: %w", err)
	}

	if !info.IsDir() {
		return []string{videoPath}, false, nil
	}

	videos, skipped, err := paths.ListVideos(videoPath, allowAny)
	if err != nil {
		return nil, true, err
	}
	for _, path := range skipped {
		log.Warn("skipping unsupported file", zap.String("file", filepath.Base(path)))
	}
	if len(videos) == 0 {
		return nil, true, fmt.Errorf("%w in %s", errNoVideos, videoPath)
	}
	return videos, true, nil
}
