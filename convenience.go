package ambience

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/tphakala/simd/f64"
)

// maxValue returns the full-scale integer value for a PCM bit depth, or zero
// for unsupported depths.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return 0
	}
}

// FromIntBuffer converts a go-audio integer buffer (interleaved, mono or
// stereo) into a planar float Buffer scaled to [-1, 1].
func FromIntBuffer(b *audio.IntBuffer) (*Buffer, error) {
	if b == nil || b.Format == nil {
		return nil, fmt.Errorf("%w: missing PCM format", ErrInvalidAudioInput)
	}

	channels := b.Format.NumChannels
	if channels != monoChannels && channels != stereoChannels {
		return nil, fmt.Errorf("%w: expected mono or stereo, got %d channels", ErrInvalidAudioInput, channels)
	}
	if len(b.Data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not fill %d channels", ErrInvalidAudioInput, len(b.Data), channels)
	}

	bitDepth := intBufferBitDepth(b)
	maxVal := maxValue(bitDepth)
	if maxVal == 0 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidAudioInput, bitDepth)
	}
	invMaxVal := 1.0 / maxVal

	frames := len(b.Data) / channels
	out := NewBuffer(b.Format.SampleRate, channels, frames)
	for i := range frames {
		for ch := range channels {
			out.Channels[ch][i] = float64(b.Data[i*channels+ch]) * invMaxVal
		}
	}
	return out, nil
}

// ToIntBuffer converts buf to an interleaved go-audio integer buffer at the
// given bit depth. Samples are clamped to [-1, 1] before quantisation.
// Unsupported bit depths fall back to 16 bits.
func ToIntBuffer(buf *Buffer, bitDepth int) *audio.IntBuffer {
	maxVal := maxValue(bitDepth)
	if maxVal == 0 {
		bitDepth = defaultBitDepth
		maxVal = maxInt16
	}

	channels := buf.NumChannels()
	frames := buf.Frames()
	data := make([]int, frames*channels)
	for i := range frames {
		for ch := range channels {
			sample := buf.Channels[ch][i]
			if sample > 1.0 {
				sample = 1.0
			} else if sample < -1.0 {
				sample = -1.0
			}
			data[i*channels+ch] = int(math.Round(sample * maxVal))
		}
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

// Interleave packs planar channels into frame order: L0 R0 L1 R1 ...
// Channels must have equal length.
func Interleave(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}

	frames := len(channels[0])
	if len(channels) == stereoChannels {
		out := make([]float64, frames*stereoChannels)
		f64.Interleave2(out, channels[0], channels[1])
		return out
	}

	n := len(channels)
	out := make([]float64, frames*n)
	for i := range frames {
		for ch := range n {
			out[i*n+ch] = channels[ch][i]
		}
	}
	return out
}

// Deinterleave splits frame-ordered samples into numChannels planar slices.
// Trailing samples that do not fill a frame are dropped.
func Deinterleave(interleaved []float64, numChannels int) [][]float64 {
	if numChannels < 1 {
		return nil
	}

	frames := len(interleaved) / numChannels
	out := make([][]float64, numChannels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range numChannels {
			out[ch][i] = interleaved[i*numChannels+ch]
		}
	}
	return out
}

// BufferFromInterleaved builds a Buffer from frame-ordered samples.
func BufferFromInterleaved(interleaved []float64, sampleRate, numChannels int) (*Buffer, error) {
	if numChannels != monoChannels && numChannels != stereoChannels {
		return nil, fmt.Errorf("%w: expected mono or stereo, got %d channels", ErrInvalidAudioInput, numChannels)
	}
	if len(interleaved)%numChannels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not fill %d channels", ErrInvalidAudioInput, len(interleaved), numChannels)
	}
	return &Buffer{SampleRate: sampleRate, Channels: Deinterleave(interleaved, numChannels)}, nil
}
