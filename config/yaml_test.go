package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test.yaml")

	yamlContent := `
video_path: "clip.mp4"
output_dir: "frames"
strategy: "fixed_random"
fps: 12
start_time: 1.5
end_time: 10
seed: 99
reset_indices: true
image_format: "jpg"
workers: 4
binaries:
  ffmpeg: /opt/ffmpeg/bin/ffmpeg
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg, err := LoadConfigFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", cfg.VideoPath)
	assert.Equal(t, "frames", cfg.OutputDir)
	assert.Equal(t, "fixed_random", cfg.Strategy)
	assert.Equal(t, 12, cfg.FPS)
	assert.Equal(t, 1.5, cfg.StartTime)
	require.NotNil(t, cfg.EndTime)
	assert.Equal(t, 10.0, *cfg.EndTime)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(99), *cfg.Seed)
	assert.True(t, cfg.ResetIndices)
	assert.Equal(t, "jpg", cfg.ImageFormat)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.Binaries.FFmpeg)
	// Unset keys keep their defaults.
	assert.Equal(t, "ffprobe", cfg.Binaries.FFprobe)
}

func TestLoadConfigFile_NotFound(t *testing.T) {
	_, err := LoadConfigFile("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("video_path: clip.mp4\ninvalid yaml syntax here ][{\n"), 0644))

	_, err := LoadConfigFile(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveConfigFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "framegrab.yaml")
	end := 4.0

	cfg := DefaultConfig()
	cfg.VideoPath = "clip.mkv"
	cfg.Strategy = "uniform"
	cfg.FPS = 3
	cfg.EndTime = &end

	require.NoError(t, SaveConfigFile(cfg, path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if _, err := os.Stat("/etc/framegrab/config.yaml"); err == nil {
		t.Skip("system config present")
	}
	assert.Empty(t, FindConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "framegrab.yaml"), []byte("fps: 1\n"), 0644))
	assert.Equal(t, "./framegrab.yaml", FindConfigFile())
}

func TestFindConfigFile_Home(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".framegrab", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("fps: 1\n"), 0644))

	assert.Equal(t, path, FindConfigFile())
}
