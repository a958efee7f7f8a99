// Package engine implements the individual ambience stages. Every stage binds
// its parameters at construction, implements pipeline.Stage and never modifies
// the buffer it is given.
package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-ambience/internal/filter"
	"github.com/tphakala/go-audio-ambience/internal/pipeline"
)

// LowPass is a single-pole RC low-pass applied to every channel.
type LowPass struct {
	cutoffHz float64
}

// NewLowPass creates a low-pass stage. Cutoffs above the Nyquist frequency of
// the processed buffer are clamped at process time.
func NewLowPass(cutoffHz float64) (*LowPass, error) {
	if cutoffHz <= 0 || math.IsNaN(cutoffHz) || math.IsInf(cutoffHz, 0) {
		return nil, fmt.Errorf("invalid low-pass cutoff: %g Hz", cutoffHz)
	}
	return &LowPass{cutoffHz: cutoffHz}, nil
}

// Name implements pipeline.Stage.
func (s *LowPass) Name() string { return pipeline.StageLowPass.String() }

// CutoffHz returns the configured cutoff.
func (s *LowPass) CutoffHz() float64 { return s.cutoffHz }

// Process implements pipeline.Stage.
func (s *LowPass) Process(buf *pipeline.Buffer) (*pipeline.Buffer, error) {
	return pipeline.MapChannels(buf, s.ProcessChannel)
}

// Design returns the filter applied at sampleRate.
func (s *LowPass) Design(sampleRate int) (filter.OnePole, error) {
	return filter.DesignOnePoleLowPass(s.cutoffHz, sampleRate)
}

// ProcessChannel implements pipeline.ChannelStage.
func (s *LowPass) ProcessChannel(dst, src []float64, sampleRate int) error {
	lp, err := s.Design(sampleRate)
	if err != nil {
		return err
	}
	lp.Apply(dst, src)
	return nil
}
