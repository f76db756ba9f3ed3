// Package paths holds filesystem helpers for video inputs and frame output
// directories.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNotADirectory is returned when an output path exists but is a file.
	ErrNotADirectory = errors.New("output path exists but is not a directory")

	// ErrOutputMissing is returned when the output directory does not exist
	// and creation was not requested.
	ErrOutputMissing = errors.New("output directory does not exist")
)

// videoExtensions lists the container extensions accepted without
// --allow_any_extension. Keys are lower case and include the dot.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
}

// VideoExtensions returns the supported extensions in sorted order.
func VideoExtensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupportedVideo reports whether path has a supported extension
// (case-insensitive).
func IsSupportedVideo(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EnsureOutputDir checks that dir is usable as a frame output directory.
//
// An existing directory is returned unchanged. A missing one is created
// (with parents) when create is true. An existing non-directory is rejected.
// The returned bool is true when the directory was created by this call.
func EnsureOutputDir(dir string, create bool) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat output directory %s: %w", dir, err)
	}

	if !create {
		return false, fmt.Errorf("%w: %s", ErrOutputMissing, dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return true, nil
}

// ListVideos returns the regular files directly inside dir, split into
// those that would be processed and those skipped for their extension.
// Subdirectories are ignored. Both slices are sorted by name.
func ListVideos(dir string, allowAnyExtension bool) (videos, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if allowAnyExtension || IsSupportedVideo(path) {
			videos = append(videos, path)
		} else {
			skipped = append(skipped, path)
		}
	}

	return videos, skipped, nil
}
