package pipeline

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidBuffer indicates a malformed audio buffer.
var ErrInvalidBuffer = errors.New("invalid audio buffer")

// Buffer is a finite block of planar PCM audio.
// Samples are nominally in [-1, 1]; stages keep float headroom and never clamp.
type Buffer struct {
	// SampleRate is the sample rate in Hz.
	SampleRate int

	// Channels holds one slice per channel, all of equal length.
	Channels [][]float64
}

// NewBuffer allocates a silent buffer with the given layout.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	b := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float64, channels),
	}
	for ch := range b.Channels {
		b.Channels[ch] = make([]float64, frames)
	}
	return b
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the number of sample frames.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the exact playback duration of the buffer.
// Integer arithmetic keeps it identical for buffers with equal frame counts.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return FramesToDuration(b.Frames(), b.SampleRate)
}

// FramesToDuration converts a frame count at sampleRate to a duration.
func FramesToDuration(frames, sampleRate int) time.Duration {
	secs := frames / sampleRate
	rem := frames % sampleRate
	return time.Duration(secs)*time.Second +
		time.Duration(rem)*time.Second/time.Duration(sampleRate)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float64, len(b.Channels)),
	}
	for ch, data := range b.Channels {
		out.Channels[ch] = append([]float64(nil), data...)
	}
	return out
}

// SameLayout reports whether other has the same sample rate and frame count.
func (b *Buffer) SameLayout(other *Buffer) bool {
	return other != nil && b.SampleRate == other.SampleRate && b.Frames() == other.Frames()
}

// Validate checks that the buffer can be processed: a positive sample rate,
// one or two channels of equal non-zero length and only finite samples.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: buffer is nil", ErrInvalidBuffer)
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidBuffer, b.SampleRate)
	}

	if n := len(b.Channels); n < monoChannels || n > stereoChannels {
		return fmt.Errorf("%w: expected mono or stereo, got %d channels", ErrInvalidBuffer, n)
	}

	frames := b.Frames()
	if frames == 0 {
		return fmt.Errorf("%w: buffer has no frames", ErrInvalidBuffer)
	}

	for ch, data := range b.Channels {
		if len(data) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, expected %d", ErrInvalidBuffer, ch, len(data), frames)
		}
		for i, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: channel %d sample %d is not finite", ErrInvalidBuffer, ch, i)
			}
		}
	}

	return nil
}
