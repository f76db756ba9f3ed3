package extractor_test

import (
	"context"
	"math/rand/v2"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framegrab/extractor"
	"framegrab/strategy"
)

// These tests run the real ffmpeg and ffprobe binaries against a generated
// two second, 10 fps clip. They are skipped when the tools are not on PATH.

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping ffmpeg integration test in short mode")
	}
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}
}

func generateClip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testsrc.mp4")
	cmd := exec.Command("ffmpeg", "-v", "error", "-f", "lavfi", "-i", "testsrc=duration=2:size=160x120:rate=10",
		"-pix_fmt", "yuv420p", "-y", path)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return path
}

func TestIntegration_Metadata(t *testing.T) {
	requireFFmpeg(t)
	clip := generateClip(t)

	ex, err := extractor.New(extractor.Options{VideoPath: clip})
	require.NoError(t, err)

	meta, err := ex.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "h264", meta.Codec)
	assert.Equal(t, "160x120", meta.Resolution)
	assert.Equal(t, 10.0, meta.AvgFPS)
	assert.InDelta(t, 2.0, meta.Duration, 0.1)
}

func TestIntegration_Strategies(t *testing.T) {
	requireFFmpeg(t)
	clip := generateClip(t)

	t.Run("all", func(t *testing.T) {
		ex, err := extractor.New(extractor.Options{VideoPath: clip, OutputDir: t.TempDir()})
		require.NoError(t, err)

		result, err := ex.Extract(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 20, result.FramesWritten, 1)
	})

	t.Run("uniform", func(t *testing.T) {
		ex, err := extractor.New(extractor.Options{
			VideoPath:    clip,
			OutputDir:    t.TempDir(),
			FPS:          2,
			Strategy:     strategy.NewUniform(strategy.Options{}),
			ResetIndices: true,
		})
		require.NoError(t, err)

		result, err := ex.Extract(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 4, result.FramesWritten, 1)
	})

	t.Run("fixed_random", func(t *testing.T) {
		ex, err := extractor.New(extractor.Options{
			VideoPath: clip,
			OutputDir: t.TempDir(),
			FPS:       5,
			Strategy:  strategy.NewFixedRandom(strategy.Options{Rand: rand.New(rand.NewPCG(1, 2))}),
		})
		require.NoError(t, err)

		result, err := ex.Extract(context.Background())
		require.NoError(t, err)
		assert.Len(t, result.FrameIndices, 5)
		assert.Equal(t, 5, result.FramesWritten)
	})
}
