// Package ffprobe reads video stream metadata by running the ffprobe
// command-line tool and decoding its JSON report.
package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"framegrab/command"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrNoVideoStream is returned when the report contains no video stream.
	ErrNoVideoStream = errors.New("no video stream found")

	// ErrInvalidReport is returned when a report field cannot be parsed.
	ErrInvalidReport = errors.New("invalid ffprobe report")
)

// streamEntries are the per-stream fields requested from ffprobe.
const streamEntries = "width,height,codec_name,r_frame_rate,avg_frame_rate,duration,nb_frames,bit_rate"

// Stream is the first video stream as reported by ffprobe. Numeric fields
// other than width/height arrive as strings and may be absent or "N/A".
type Stream struct {
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration,omitempty"`
	NbFrames     string `json:"nb_frames,omitempty"`
	BitRate      string `json:"bit_rate,omitempty"`
}

// Format carries the container duration, used when the stream has none
// (common for Matroska and WebM).
type Format struct {
	Duration string `json:"duration,omitempty"`
}

// ProbeResult holds the decoded ffprobe report.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// ParseReport decodes raw ffprobe JSON output.
func ParseReport(data []byte) (*ProbeResult, error) {
	var result ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe JSON output: %w", err)
	}
	return &result, nil
}

// VideoStream returns the first video stream.
func (pr *ProbeResult) VideoStream() (*Stream, error) {
	if len(pr.Streams) == 0 {
		return nil, ErrNoVideoStream
	}
	return &pr.Streams[0], nil
}

// GetDuration returns the stream duration in seconds, falling back to the
// container duration. Missing values yield 0.
func (pr *ProbeResult) GetDuration() (float64, error) {
	stream, err := pr.VideoStream()
	if err != nil {
		return 0, err
	}

	duration, err := parseOptionalFloat("duration", stream.Duration)
	if err != nil {
		return 0, err
	}
	if duration > 0 {
		return duration, nil
	}
	return parseOptionalFloat("format duration", pr.Format.Duration)
}

// Metadata converts the report into the summary used by the strategies.
func (pr *ProbeResult) Metadata() (*Metadata, error) {
	stream, err := pr.VideoStream()
	if err != nil {
		return nil, err
	}

	duration, err := pr.GetDuration()
	if err != nil {
		return nil, err
	}

	avgFPS, err := ParseFrameRate(stream.AvgFrameRate)
	if err != nil {
		return nil, err
	}

	frames, err := parseOptionalInt("nb_frames", stream.NbFrames)
	if err != nil {
		return nil, err
	}

	bitrate, err := parseOptionalInt("bit_rate", stream.BitRate)
	if err != nil {
		return nil, err
	}

	codec := stream.CodecName
	if codec == "" {
		codec = unknown
	}

	return &Metadata{
		Codec:       codec,
		Resolution:  formatResolution(stream.Width, stream.Height),
		AvgFPS:      avgFPS,
		Duration:    duration,
		TotalFrames: frames,
		BitrateKbps: bitrate / 1000,
	}, nil
}

// Prober runs ffprobe through a command.Runner.
type Prober struct {
	binary string
	runner command.Runner
}

// NewProber creates a Prober. A nil runner executes real processes.
func NewProber(runner command.Runner) *Prober {
	if runner == nil {
		runner = command.NewExecRunner()
	}
	return &Prober{binary: command.DefaultFFprobe, runner: runner}
}

// SetBinary overrides the ffprobe executable.
func (p *Prober) SetBinary(binary string) *Prober {
	if binary != "" {
		p.binary = binary
	}
	return p
}

// BuildArgs returns the ffprobe arguments used to inspect sourcePath.
func (p *Prober) BuildArgs(sourcePath string) []string {
	// -select_streams v:0: only the first video stream
	// -show_entries: the stream fields above plus the container duration
	// -of json: machine-readable output
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=" + streamEntries + ":format=duration",
		"-of", "json",
		sourcePath,
	}
}

// Probe analyzes a media file and returns the decoded report.
//
// Example:
//
//	result, err := ffprobe.NewProber(nil).Probe(ctx, "/path/to/video.mp4")
//	if err != nil {
//	    return err
//	}
//	meta, err := result.Metadata()
func (p *Prober) Probe(ctx context.Context, sourcePath string) (*ProbeResult, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("source path cannot be empty")
	}

	output, err := p.runner.Output(ctx, p.binary, p.BuildArgs(sourcePath)...)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return ParseReport(output)
}

// Metadata probes sourcePath and converts the report into Metadata.
func (p *Prober) Metadata(ctx context.Context, sourcePath string) (*Metadata, error) {
	result, err := p.Probe(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	return result.Metadata()
}

// ParseFrameRate evaluates an ffprobe rational such as "30000/1001".
// A zero denominator ("0/0" is reported for unknown rates) yields 0.
func ParseFrameRate(rate string) (float64, error) {
	rate = strings.TrimSpace(rate)
	if rate == "" || rate == "N/A" {
		return 0, nil
	}

	num, den, isRatio := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: frame rate %q", ErrInvalidReport, rate)
	}
	if !isRatio {
		return n, nil
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: frame rate %q", ErrInvalidReport, rate)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}

func parseOptionalFloat(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidReport, field, value)
	}
	return f, nil
}

func parseOptionalInt(field, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return 0, nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidReport, field, value)
	}
	return i, nil
}
