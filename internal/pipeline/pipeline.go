// Package pipeline implements the fixed-order stage chain that turns a dry
// buffer into its ambient rendition. Stages are pure: they never mutate their
// input and always return a buffer with the same sample rate and frame count.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrLengthChanged indicates a stage broke the length-preserving contract.
var ErrLengthChanged = errors.New("stage changed buffer length")

// Stage represents a single processing stage in the ambience pipeline.
// Parameters are bound when the stage is constructed.
type Stage interface {
	// Name identifies the stage in logs and errors.
	Name() string

	// Process transforms buf into a new buffer. buf must not be modified.
	Process(buf *Buffer) (*Buffer, error)
}

// ChannelStage is a Stage that treats every channel independently.
// The pipeline may run its channels concurrently.
type ChannelStage interface {
	Stage

	// ProcessChannel writes the processed form of src into dst.
	// dst and src have equal length and never alias.
	ProcessChannel(dst, src []float64, sampleRate int) error
}

// StageType identifies the type of processing stage.
type StageType int

const (
	// StageLowPass attenuates content above the preset cutoff.
	StageLowPass StageType = iota

	// StageGain applies the preset's fixed attenuation.
	StageGain

	// StageReverb adds synthetic room decay within the source length.
	StageReverb

	// StageMuffle dips the presence band around 2 kHz.
	StageMuffle

	// StageWiden scales the side channel of a stereo image.
	StageWiden
)

// String returns the stage type name.
func (t StageType) String() string {
	switch t {
	case StageLowPass:
		return "lowpass"
	case StageGain:
		return "gain"
	case StageReverb:
		return "reverb"
	case StageMuffle:
		return "muffle"
	case StageWiden:
		return "widen"
	default:
		return fmt.Sprintf("StageType(%d)", int(t))
	}
}

// Observer receives the wall time spent in each stage.
type Observer func(stage string, elapsed time.Duration)

// Pipeline runs an ordered list of stages over a buffer.
type Pipeline struct {
	stages   []Stage
	parallel bool
	observer Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithParallel enables concurrent per-channel processing for ChannelStages.
func WithParallel(enabled bool) Option {
	return func(p *Pipeline) {
		p.parallel = enabled
	}
}

// WithObserver installs a per-stage timing callback.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// New creates a pipeline from stages in execution order.
func New(stages []Stage, opts ...Option) *Pipeline {
	p := &Pipeline{
		stages: make([]Stage, 0, max(len(stages), defaultStageCapacity)),
	}
	p.stages = append(p.stages, stages...)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run passes buf through every stage. The input buffer is left untouched.
// ctx is checked before each stage and between channels; on cancellation
// the partially processed buffer is dropped and ctx.Err() is returned.
func (p *Pipeline) Run(ctx context.Context, buf *Buffer) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	current := buf
	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		next, err := p.runStage(ctx, stage, current)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Name(), err)
		}
		if !current.SameLayout(next) {
			return nil, fmt.Errorf("stage %d (%s): %w: %d frames @ %d Hz in, %d frames @ %d Hz out",
				i, stage.Name(), ErrLengthChanged,
				current.Frames(), current.SampleRate, next.Frames(), next.SampleRate)
		}
		if p.observer != nil {
			p.observer(stage.Name(), time.Since(start))
		}
		current = next
	}

	return current, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, buf *Buffer) (*Buffer, error) {
	cs, ok := stage.(ChannelStage)
	if !ok || !p.parallel || buf.NumChannels() <= monoChannels {
		return stage.Process(buf)
	}
	return MapChannelsParallel(ctx, buf, cs.ProcessChannel)
}

// ChannelFunc processes one channel of a buffer.
type ChannelFunc func(dst, src []float64, sampleRate int) error

// MapChannels applies fn to every channel sequentially and returns a new buffer.
func MapChannels(buf *Buffer, fn ChannelFunc) (*Buffer, error) {
	out := NewBuffer(buf.SampleRate, buf.NumChannels(), buf.Frames())
	for ch := range buf.Channels {
		if err := fn(out.Channels[ch], buf.Channels[ch], buf.SampleRate); err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return out, nil
}

// MapChannelsParallel is like MapChannels but runs channels concurrently.
// Each goroutine owns its destination slice, so results are bit-identical
// to the sequential form.
func MapChannelsParallel(ctx context.Context, buf *Buffer, fn ChannelFunc) (*Buffer, error) {
	out := NewBuffer(buf.SampleRate, buf.NumChannels(), buf.Frames())

	g, gctx := errgroup.WithContext(ctx)
	for ch := range buf.Channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(out.Channels[ch], buf.Channels[ch], buf.SampleRate); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
