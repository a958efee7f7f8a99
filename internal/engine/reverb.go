package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-ambience/internal/pipeline"
)

// Reverb convolves each channel with a synthetic room response.
// The convolution is causal and truncated: output length equals input length
// and the decay that would ring past the end is dropped.
type Reverb struct {
	decaySeconds float64
}

// NewReverb creates a reverb stage for the given RT60 in seconds.
func NewReverb(decaySeconds float64) (*Reverb, error) {
	if math.IsNaN(decaySeconds) || decaySeconds <= 0 || decaySeconds > maxDecaySeconds {
		return nil, fmt.Errorf("invalid reverb decay: %g s (must be in (0, %g])", decaySeconds, maxDecaySeconds)
	}
	return &Reverb{decaySeconds: decaySeconds}, nil
}

// Name implements pipeline.Stage.
func (s *Reverb) Name() string { return pipeline.StageReverb.String() }

// DecaySeconds returns the configured RT60.
func (s *Reverb) DecaySeconds() float64 { return s.decaySeconds }

// Process implements pipeline.Stage. The response is built once and shared
// by all channels.
func (s *Reverb) Process(buf *pipeline.Buffer) (*pipeline.Buffer, error) {
	ir := ImpulseResponse(s.decaySeconds, buf.SampleRate, buf.Frames())
	return pipeline.MapChannels(buf, func(dst, src []float64, _ int) error {
		ConvolveCausal(dst, src, ir)
		return nil
	})
}

// ProcessChannel implements pipeline.ChannelStage.
func (s *Reverb) ProcessChannel(dst, src []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	ConvolveCausal(dst, src, ImpulseResponse(s.decaySeconds, sampleRate, len(src)))
	return nil
}
