package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-ambience/internal/mathutil"
	"github.com/tphakala/go-audio-ambience/internal/pipeline"
	"github.com/tphakala/simd/f64"
)

// Gain scales every sample by 10^(dB/20). Results are not clamped.
type Gain struct {
	db     float64
	factor float64
}

// NewGain creates a gain stage. Only attenuation (dB <= 0) is accepted.
func NewGain(db float64) (*Gain, error) {
	if math.IsNaN(db) || math.IsInf(db, 0) || db > maxGainDB {
		return nil, fmt.Errorf("invalid gain: %g dB (must be finite and <= %g)", db, maxGainDB)
	}
	return &Gain{db: db, factor: mathutil.DBToLinear(db)}, nil
}

// Name implements pipeline.Stage.
func (s *Gain) Name() string { return pipeline.StageGain.String() }

// Factor returns the linear amplitude factor.
func (s *Gain) Factor() float64 { return s.factor }

// Process implements pipeline.Stage.
func (s *Gain) Process(buf *pipeline.Buffer) (*pipeline.Buffer, error) {
	return pipeline.MapChannels(buf, s.ProcessChannel)
}

// ProcessChannel implements pipeline.ChannelStage.
func (s *Gain) ProcessChannel(dst, src []float64, _ int) error {
	f64.Scale(dst, src, s.factor)
	return nil
}
