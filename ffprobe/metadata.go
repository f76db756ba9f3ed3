package ffprobe

import (
	"fmt"
	"strconv"
)

const unknown = "Unknown"

// Field names accepted by Metadata.Fields, in display order.
const (
	FieldCodec       = "codec"
	FieldResolution  = "resolution"
	FieldAvgFPS      = "avg_fps"
	FieldDuration    = "duration"
	FieldTotalFrames = "total_frames"
	FieldBitrate     = "bitrate"
)

// FieldNames returns every metadata field name in display order.
func FieldNames() []string {
	return []string{FieldCodec, FieldResolution, FieldAvgFPS, FieldDuration, FieldTotalFrames, FieldBitrate}
}

// Metadata summarizes the first video stream of a file.
type Metadata struct {
	Codec       string  `json:"codec"`
	Resolution  string  `json:"resolution"`
	AvgFPS      float64 `json:"avg_fps"`
	Duration    float64 `json:"duration"`
	TotalFrames int64   `json:"total_frames"`
	BitrateKbps int64   `json:"bitrate"`
}

// Field is one named metadata value.
type Field struct {
	Name  string
	Value any
}

// String renders the value the way the CLI prints it.
func (f Field) String() string {
	switch v := f.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Fields returns the requested fields in the order given. Unknown names are
// skipped. With no names, every field is returned in display order.
func (m *Metadata) Fields(names ...string) []Field {
	if len(names) == 0 {
		names = FieldNames()
	}

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		if value, ok := m.value(name); ok {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}
	return fields
}

// Map returns the requested fields keyed by name.
func (m *Metadata) Map(names ...string) map[string]any {
	fields := m.Fields(names...)
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}

func (m *Metadata) value(name string) (any, bool) {
	switch name {
	case FieldCodec:
		return m.Codec, true
	case FieldResolution:
		return m.Resolution, true
	case FieldAvgFPS:
		return m.AvgFPS, true
	case FieldDuration:
		return m.Duration, true
	case FieldTotalFrames:
		return m.TotalFrames, true
	case FieldBitrate:
		return m.BitrateKbps, true
	}
	return nil, false
}

func formatResolution(width, height int) string {
	w, h := unknown, unknown
	if width > 0 {
		w = strconv.Itoa(width)
	}
	if height > 0 {
		h = strconv.Itoa(height)
	}
	return w + "x" + h
}
