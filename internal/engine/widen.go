package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-ambience/internal/pipeline"
)

// Widen scales the side component of a stereo image:
//
//	mid  = (L+R)/2
//	side = (L-R)/2 · width
//	L'   = mid + side
//	R'   = mid - side
//
// Mono input is upmixed to stereo with both channels equal to the source.
// The output is always stereo.
type Widen struct {
	width float64
}

// NewWiden creates a widening stage; width must be in [0, 4].
func NewWiden(width float64) (*Widen, error) {
	if math.IsNaN(width) || width < 0 || width > maxStereoWidth {
		return nil, fmt.Errorf("invalid stereo width: %g (must be in [0, %g])", width, maxStereoWidth)
	}
	return &Widen{width: width}, nil
}

// Name implements pipeline.Stage.
func (s *Widen) Name() string { return pipeline.StageWiden.String() }

// Width returns the side scale factor.
func (s *Widen) Width() float64 { return s.width }

// Process implements pipeline.Stage.
func (s *Widen) Process(buf *pipeline.Buffer) (*pipeline.Buffer, error) {
	out := pipeline.NewBuffer(buf.SampleRate, stereoChannels, buf.Frames())

	switch buf.NumChannels() {
	case 1:
		copy(out.Channels[0], buf.Channels[0])
		copy(out.Channels[1], buf.Channels[0])
	case stereoChannels:
		left, right := buf.Channels[0], buf.Channels[1]
		outL, outR := out.Channels[0], out.Channels[1]
		for i := range left {
			mid := (left[i] + right[i]) * midSideScale
			side := (left[i] - right[i]) * midSideScale * s.width
			outL[i] = mid + side
			outR[i] = mid - side
		}
	default:
		return nil, fmt.Errorf("widen: unsupported channel count %d", buf.NumChannels())
	}

	return out, nil
}
