package filter

import (
	"fmt"
	"math"
)

// OnePole is a first-order RC low-pass: y[n] = y[n-1] + α(x[n] - y[n-1]).
type OnePole struct {
	// Alpha is the smoothing factor in (0, 1].
	Alpha float64
}

// DesignOnePoleLowPass designs an RC low-pass with the given cutoff.
//
//	RC = 1/(2π fc), dt = 1/fs, α = dt/(RC + dt)
//
// Cutoffs at or above Nyquist are clamped to Nyquist.
func DesignOnePoleLowPass(cutoffHz float64, sampleRate int) (OnePole, error) {
	if sampleRate <= 0 {
		return OnePole{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if cutoffHz <= 0 || math.IsNaN(cutoffHz) || math.IsInf(cutoffHz, 0) {
		return OnePole{}, fmt.Errorf("invalid cutoff frequency: %g Hz (must be positive)", cutoffHz)
	}

	nyquist := float64(sampleRate) / nyquistDivisor
	cutoffHz = math.Min(cutoffHz, nyquist)

	rc := 1.0 / (twoPi * cutoffHz)
	dt := 1.0 / float64(sampleRate)
	return OnePole{Alpha: dt / (rc + dt)}, nil
}

// Apply filters src into dst with zero initial state. dst and src may alias.
func (f OnePole) Apply(dst, src []float64) {
	var y float64
	for i, x := range src {
		y += f.Alpha * (x - y)
		dst[i] = y
	}
}

// Response returns the complex frequency response H(e^jω) = α / (1 - (1-α)e^-jω).
func (f OnePole) Response(freq float64, sampleRate int) complex128 {
	w := twoPi * freq / float64(sampleRate)
	z1 := complex(math.Cos(w), -math.Sin(w))
	return complex(f.Alpha, 0) / (1 - complex(1-f.Alpha, 0)*z1)
}
