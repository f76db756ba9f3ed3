package strategy

import (
	"fmt"

	"go.uber.org/zap"
)

// NameUniform samples at a fixed rate.
const NameUniform = "uniform"

// Uniform extracts frames at a constant rate using the ffmpeg fps filter.
type Uniform struct {
	log *zap.Logger
}

// NewUniform creates the uniform-rate strategy.
func NewUniform(opts Options) *Uniform {
	return &Uniform{log: opts.logger()}
}

func (s *Uniform) Name() string { return NameUniform }

// Plan rejects rates above the source average frame rate.
func (s *Uniform) Plan(req Request) (*Plan, error) {
	fps, err := ValidateFPS(req.FPS)
	if err != nil {
		return nil, err
	}

	avgFPS, err := ValidateAvgFPS(req.Metadata)
	if err != nil {
		return nil, err
	}

	if float64(fps) > avgFPS {
		return nil, fmt.Errorf("%w: requested %d, source %.2f", ErrFPSExceedsSource, fps, avgFPS)
	}

	start, end, err := ValidateTimeRange(req.Metadata, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	s.log.Info("extracting frames at uniform rate", zap.Int("fps", fps))

	return &Plan{
		Strategy:   NameUniform,
		FilterArgs: []string{"-vf", fmt.Sprintf("fps=%d", fps)},
		StartTime:  start,
		EndTime:    end,
	}, nil
}
