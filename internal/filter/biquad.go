package filter

import (
	"fmt"
	"math"
)

// Biquad holds normalised second-order IIR coefficients (a0 == 1).
// The zero value is not a valid filter; use a design function.
type Biquad struct {
	B0, B1, B2 float64 // numerator
	A1, A2     float64 // denominator (a0 normalised to 1)
}

// PeakingParams describes an RBJ peaking-EQ band.
type PeakingParams struct {
	// CenterHz is the centre frequency in Hz.
	CenterHz float64

	// GainDB is the boost (positive) or cut (negative) at the centre.
	GainDB float64

	// Q controls the bandwidth; higher is narrower.
	Q float64

	// SampleRate in Hz.
	SampleRate int
}

// Validate checks if peaking parameters are valid.
func (p *PeakingParams) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", p.SampleRate)
	}

	nyquist := float64(p.SampleRate) / nyquistDivisor
	if p.CenterHz <= 0 || p.CenterHz >= nyquist {
		return fmt.Errorf("invalid centre frequency: %g Hz (must be in (0, %g))", p.CenterHz, nyquist)
	}

	if p.Q <= 0 {
		return fmt.Errorf("invalid Q: %g (must be positive)", p.Q)
	}

	return nil
}

// DesignPeaking designs a peaking-EQ biquad from the RBJ Audio EQ Cookbook:
//
//	A = 10^(gain/40), ω0 = 2π f0/fs, α = sin(ω0)/(2Q)
//	b = [1 + αA, -2cos ω0, 1 - αA]
//	a = [1 + α/A, -2cos ω0, 1 - α/A]
func DesignPeaking(params PeakingParams) (Biquad, error) {
	if err := params.Validate(); err != nil {
		return Biquad{}, err
	}

	a := math.Pow(10, params.GainDB/peakingGainDivisor)
	w0 := twoPi * params.CenterHz / float64(params.SampleRate)
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (windowNormalizationFactor * params.Q)

	a0 := 1 + alpha/a
	return Biquad{
		B0: (1 + alpha*a) / a0,
		B1: (-2 * cosW0) / a0,
		B2: (1 - alpha*a) / a0,
		A1: (-2 * cosW0) / a0,
		A2: (1 - alpha/a) / a0,
	}, nil
}

// Apply filters src into dst using Direct Form I with zero initial state.
// dst and src must have equal length; they may alias.
func (b Biquad) Apply(dst, src []float64) {
	var x1, x2, y1, y2 float64
	for i, x0 := range src {
		y0 := b.B0*x0 + b.B1*x1 + b.B2*x2 - b.A1*y1 - b.A2*y2

		x2 = x1
		x1 = x0
		y2 = y1
		y1 = y0

		dst[i] = y0
	}
}

// Response returns the complex frequency response H(e^jω) at freq Hz.
func (b Biquad) Response(freq float64, sampleRate int) complex128 {
	w := twoPi * freq / float64(sampleRate)
	z1 := complex(math.Cos(w), -math.Sin(w)) // e^-jω
	z2 := z1 * z1
	num := complex(b.B0, 0) + complex(b.B1, 0)*z1 + complex(b.B2, 0)*z2
	den := 1 + complex(b.A1, 0)*z1 + complex(b.A2, 0)*z2
	return num / den
}
