package strategy

import "go.uber.org/zap"

// NameAll writes every decoded frame in the window.
const NameAll = "all"

// All extracts every frame using ffmpeg passthrough timing. FPS is ignored.
type All struct {
	log *zap.Logger
}

// NewAll creates the all-frames strategy.
func NewAll(opts Options) *All {
	return &All{log: opts.logger()}
}

func (s *All) Name() string { return NameAll }

func (s *All) Plan(req Request) (*Plan, error) {
	start, end, err := ValidateTimeRange(req.Metadata, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	s.log.Info("extracting all frames", zap.Float64("start", start), zap.Float64("end", end))

	return &Plan{
		Strategy:   NameAll,
		FilterArgs: []string{"-fps_mode", "passthrough"},
		StartTime:  start,
		EndTime:    end,
	}, nil
}
