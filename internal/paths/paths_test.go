package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedVideo(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"clip.mp4", true},
		{"CLIP.MP4", true},
		{"/videos/a.mkv", true},
		{"movie.WebM", true},
		{"movie.mov", true},
		{"movie.avi", true},
		{"notes.txt", false},
		{"noext", false},
		{"archive.mp4.zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSupportedVideo(tt.path))
		})
	}
}

func TestVideoExtensions_Sorted(t *testing.T) {
	assert.Equal(t, []string{".avi", ".mkv", ".mov", ".mp4", ".webm"}, VideoExtensions())
}

func TestStem(t *testing.T) {
	assert.Equal(t, "clip", Stem("/a/b/clip.mp4"))
	assert.Equal(t, "clip.final", Stem("clip.final.mkv"))
	assert.Equal(t, "noext", Stem("noext"))
}

func TestEnsureOutputDir(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		created, err := EnsureOutputDir(dir, false)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("missing directory is created with parents", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		created, err := EnsureOutputDir(dir, true)
		require.NoError(t, err)
		assert.True(t, created)
		assert.DirExists(t, dir)
	})

	t.Run("missing directory without create", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		_, err := EnsureOutputDir(dir, false)
		assert.ErrorIs(t, err, ErrOutputMissing)
		assert.NoDirExists(t, dir)
	})

	t.Run("file in the way", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := EnsureOutputDir(file, true)
		assert.ErrorIs(t, err, ErrNotADirectory)
	})
}

func TestListVideos(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.MKV", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755))

	videos, skipped, err := ListVideos(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.MKV"), filepath.Join(dir, "b.mp4")}, videos)
	assert.Equal(t, []string{filepath.Join(dir, "notes.txt")}, skipped)

	videos, skipped, err = ListVideos(dir, true)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
	assert.Empty(t, skipped)

	_, _, err = ListVideos(filepath.Join(dir, "missing"), false)
	assert.Error(t, err)
}
