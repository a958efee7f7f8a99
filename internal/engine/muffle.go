package engine

import (
	"github.com/tphakala/go-audio-ambience/internal/filter"
	"github.com/tphakala/go-audio-ambience/internal/pipeline"
)

// Muffle dips the presence band around 2 kHz, as heard through a wall.
// A disabled stage copies its input.
type Muffle struct {
	enabled bool
}

// NewMuffle creates a muffling stage.
func NewMuffle(enabled bool) *Muffle {
	return &Muffle{enabled: enabled}
}

// Name implements pipeline.Stage.
func (s *Muffle) Name() string { return pipeline.StageMuffle.String() }

// Enabled reports whether the stage alters audio.
func (s *Muffle) Enabled() bool { return s.enabled }

// Process implements pipeline.Stage.
func (s *Muffle) Process(buf *pipeline.Buffer) (*pipeline.Buffer, error) {
	return pipeline.MapChannels(buf, s.ProcessChannel)
}

// Design returns the peaking filter applied at sampleRate. ok is false when
// the stage passes audio through unchanged at that rate.
func (s *Muffle) Design(sampleRate int) (bq filter.Biquad, ok bool, err error) {
	if !s.active(sampleRate) {
		return filter.Biquad{}, false, nil
	}

	bq, err = filter.DesignPeaking(filter.PeakingParams{
		CenterHz:   muffleCenterHz,
		GainDB:     muffleGainDB,
		Q:          muffleQ,
		SampleRate: sampleRate,
	})
	if err != nil {
		return filter.Biquad{}, false, err
	}
	return bq, true, nil
}

// ProcessChannel implements pipeline.ChannelStage.
func (s *Muffle) ProcessChannel(dst, src []float64, sampleRate int) error {
	bq, ok, err := s.Design(sampleRate)
	if err != nil {
		return err
	}
	if !ok {
		copy(dst, src)
		return nil
	}
	bq.Apply(dst, src)
	return nil
}

func (s *Muffle) active(sampleRate int) bool {
	return s.enabled && muffleCenterHz < muffleMaxCenterRatio*float64(sampleRate)
}
