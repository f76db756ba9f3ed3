package frames

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framegrab/command/commandtest"
	"framegrab/models"
)

func TestNewFramesBuilder_Defaults(t *testing.T) {
	b := NewFramesBuilder("/in/clip.mp4", "/out")

	assert.Equal(t, "/in/clip.mp4", b.GetInputPath())
	assert.Equal(t, filepath.Join("/out", "frame_%06d.png"), b.GetOutputPath())
	assert.Equal(t, "ffmpeg", b.binary)
	assert.False(t, b.resetIndices)
}

func TestFramesBuilder_BuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*FramesBuilder)
		expected []string
	}{
		{
			name: "passthrough keeps original numbering",
			build: func(b *FramesBuilder) {
				b.SetWindow(0, 10).SetFilterArgs("-fps_mode", "passthrough")
			},
			expected: []string{
				"-i", "/in/clip.mp4",
				"-ss", "00:00:00.000", "-to", "00:00:10.000",
				"-fps_mode", "passthrough",
				"-frame_pts", "true",
				"-y", filepath.Join("/out", "frame_%06d.png"),
			},
		},
		{
			name: "uniform with reset indices",
			build: func(b *FramesBuilder) {
				b.SetWindow(1.5, 62.25).SetFilterArgs("-vf", "fps=2").SetResetIndices(true)
			},
			expected: []string{
				"-i", "/in/clip.mp4",
				"-ss", "00:00:01.500", "-to", "00:01:02.250",
				"-vf", "fps=2",
				"-y", filepath.Join("/out", "frame_%06d.png"),
			},
		},
		{
			name: "jpg format",
			build: func(b *FramesBuilder) {
				b.SetWindow(0, 1).SetImageFormat(".JPG").SetResetIndices(true)
			},
			expected: []string{
				"-i", "/in/clip.mp4",
				"-ss", "00:00:00.000", "-to", "00:00:01.000",
				"-y", filepath.Join("/out", "frame_%06d.jpg"),
			},
		},
		{
			name: "progress reporting",
			build: func(b *FramesBuilder) {
				b.SetWindow(0, 1).SetResetIndices(true).SetProgressCallback(func(*models.ExtractionProgress) {})
			},
			expected: []string{
				"-i", "/in/clip.mp4",
				"-ss", "00:00:00.000", "-to", "00:00:01.000",
				"-progress", "pipe:1", "-nostats",
				"-y", filepath.Join("/out", "frame_%06d.png"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFramesBuilder("/in/clip.mp4", "/out")
			tt.build(b)
			assert.Equal(t, tt.expected, b.BuildArgs())
		})
	}
}

func TestFramesBuilder_SetFilterArgsCopies(t *testing.T) {
	filter := []string{"-vf", "fps=1"}
	b := NewFramesBuilder("in.mp4", "out").SetFilterArgs(filter...)
	filter[1] = "fps=99"
	assert.Contains(t, b.BuildArgs(), "fps=1")
}

func TestFramesBuilder_DryRun(t *testing.T) {
	b := NewFramesBuilder("/in/my clip.mp4", "/out").
		SetWindow(0, 2).
		SetFilterArgs("-vf", `select='eq(n\,3)+eq(n\,7)'`, "-vsync", "vfr").
		SetBinary("/opt/ffmpeg/bin/ffmpeg")

	cmd, err := b.DryRun()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cmd, `/opt/ffmpeg/bin/ffmpeg -i "/in/my clip.mp4" -ss 00:00:00.000 -to 00:00:02.000`))
	assert.Contains(t, cmd, `-vf select='eq(n\,3)+eq(n\,7)' -vsync vfr -frame_pts true`)

	_, err = NewFramesBuilder("in.mp4", "out").SetWindow(5, 5).DryRun()
	assert.Error(t, err)
}

func TestFramesBuilder_Run(t *testing.T) {
	runner := commandtest.NewFakeRunner().On("ffmpeg", commandtest.Response{
		Lines: []string{"frame=5", "out_time=00:00:01.000000", "progress=end"},
	})

	var updates []models.ExtractionProgress
	b := NewFramesBuilder("in.mp4", "out").
		SetWindow(0, 2).
		SetRunner(runner).
		SetProgressCallback(func(p *models.ExtractionProgress) {
			updates = append(updates, *p)
		})

	require.NoError(t, b.Run(context.Background()))

	calls := runner.CallsTo("ffmpeg")
	require.Len(t, calls, 1)
	assert.Equal(t, b.BuildArgs(), calls[0].Args)

	require.Len(t, updates, 3)
	assert.Equal(t, int64(5), updates[0].Frame)
	assert.InDelta(t, 50.0, updates[1].Progress, 1e-9)
	assert.Equal(t, models.ProgressStateCompleted, updates[2].State)
}

func TestFramesBuilder_RunError(t *testing.T) {
	cause := errors.New("exit status 1")
	runner := commandtest.NewFakeRunner().On("ffmpeg", commandtest.Response{Err: cause})

	err := NewFramesBuilder("in.mp4", "out").SetWindow(0, 1).SetRunner(runner).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "frame extraction failed")
}

func TestFramesBuilder_RunErrorReportsState(t *testing.T) {
	tests := []struct {
		name   string
		cancel bool
		want   models.ProgressState
	}{
		{name: "ffmpeg failure", want: models.ProgressStateFailed},
		{name: "cancelled", cancel: true, want: models.ProgressStateCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			runner := commandtest.NewFakeRunner().On("ffmpeg", commandtest.Response{
				Hook: func([]string) error {
					if tt.cancel {
						cancel()
					}
					return errors.New("exit status 255")
				},
			})

			var last *models.ExtractionProgress
			err := NewFramesBuilder("in.mp4", "out").
				SetWindow(0, 1).
				SetRunner(runner).
				SetProgressCallback(func(p *models.ExtractionProgress) { last = p }).
				Run(ctx)
			require.Error(t, err)
			require.NotNil(t, last)
			assert.Equal(t, tt.want, last.State)
		})
	}
}
