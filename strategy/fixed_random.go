package strategy

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NameFixedRandom picks a fixed number of random frames.
const NameFixedRandom = "fixed_random"

// FixedRandom extracts a fixed number of distinct, randomly chosen frames
// from the window using the ffmpeg select filter. Request.FPS is the number
// of frames, not a rate.
type FixedRandom struct {
	log *zap.Logger
	rng *rand.Rand
}

// NewFixedRandom creates the fixed-count random strategy.
func NewFixedRandom(opts Options) *FixedRandom {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FixedRandom{log: opts.logger(), rng: rng}
}

func (s *FixedRandom) Name() string { return NameFixedRandom }

func (s *FixedRandom) Plan(req Request) (*Plan, error) {
	count, err := ValidateFPS(req.FPS)
	if err != nil {
		return nil, err
	}

	avgFPS, err := ValidateAvgFPS(req.Metadata)
	if err != nil {
		return nil, err
	}

	start, end, err := ValidateTimeRange(req.Metadata, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	s.log.Info("extracting random frames",
		zap.Int("count", count),
		zap.Float64("start", start),
		zap.Float64("end", end))

	indices := s.SelectFrames(count, avgFPS, start, end)
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: window %gs-%gs contains no whole frame at %.3f fps",
			ErrInvalidTimeRange, start, end, avgFPS)
	}

	return &Plan{
		Strategy:     NameFixedRandom,
		FilterArgs:   []string{"-vf", "select='" + BuildSelectFilter(indices) + "'", "-vsync", "vfr"},
		StartTime:    start,
		EndTime:      end,
		FrameIndices: indices,
	}, nil
}

// SelectFrames draws up to count distinct frame numbers from
// [start*avgFPS, end*avgFPS) and returns them ascending. The count is
// clamped to the number of frames in the window; an empty window yields nil.
func (s *FixedRandom) SelectFrames(count int, avgFPS, start, end float64) []int {
	startFrame := int(start * avgFPS)
	endFrame := int(end * avgFPS)
	frameRange := endFrame - startFrame

	if frameRange <= 0 {
		s.log.Warn("no valid frame range to extract from",
			zap.Int("start_frame", startFrame),
			zap.Int("end_frame", endFrame))
		return nil
	}

	if frameRange < count {
		s.log.Info("fewer frames available than requested",
			zap.Int("requested", count),
			zap.Int("available", frameRange))
		count = frameRange
	}

	indices := sampleWithoutReplacement(s.rng, frameRange, count)
	for i := range indices {
		indices[i] += startFrame
	}
	slices.Sort(indices)
	return indices
}

// sampleWithoutReplacement returns k distinct values from [0, n) using
// Floyd's algorithm, so memory stays proportional to k rather than n.
func sampleWithoutReplacement(rng *rand.Rand, n, k int) []int {
	chosen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := rng.IntN(j + 1)
		if _, ok := chosen[t]; ok {
			t = j
		}
		chosen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// BuildSelectFilter renders frame numbers as an ffmpeg select expression,
// e.g. eq(n\,3)+eq(n\,17). The comma is escaped for the filtergraph parser.
func BuildSelectFilter(indices []int) string {
	terms := make([]string, len(indices))
	for i, idx := range indices {
		terms[i] = `eq(n\,` + strconv.Itoa(idx) + `)`
	}
	return strings.Join(terms, "+")
}
