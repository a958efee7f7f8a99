// Package testutil provides reusable test helpers for the ambience stages:
// signal generators, level measurements and testify-based assertions.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	SilenceRMS       = 1e-9
	DBTolerance      = 0.01
)

// Common test signal parameters.
const (
	SampleRateCD = 44100
	ToneFreq     = 1000.0
)

// spectrumScale converts a one-sided DFT magnitude to sine amplitude.
const spectrumScale = 2.0

// Sine returns n samples of a sine wave at freq Hz with the given amplitude.
func Sine(n int, freq, amplitude float64, sampleRate int) []float64 {
	out := make([]float64, n)
	omega := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(omega*float64(i))
	}
	return out
}

// Impulse returns n samples with a unit impulse at index 0.
func Impulse(n int) []float64 {
	out := make([]float64, n)
	if n > 0 {
		out[0] = 1
	}
	return out
}

// RMS returns the root-mean-square level of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(s, s) / float64(len(s)))
}

// Peak returns the largest absolute sample value in s.
func Peak(s []float64) float64 {
	var peak float64
	for _, v := range s {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// ToneAmplitude measures the amplitude of the freq Hz component of s.
// The measurement is exact when s holds an integer number of cycles.
func ToneAmplitude(s []float64, freq float64, sampleRate int) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, s)
	bin := int(math.Round(freq * float64(n) / float64(sampleRate)))
	if bin < 0 || bin >= len(coeffs) {
		return 0
	}
	return spectrumScale * cmplx.Abs(coeffs[bin]) / float64(n)
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertSlicesInDelta verifies two slices have equal length and matching elements.
func AssertSlicesInDelta(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > tolerance {
			return assert.Fail(t, "slices differ",
				"index %d: expected %g, got %g (tolerance %g)", i, expected[i], actual[i], tolerance)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertSilent verifies that the RMS level of s is below SilenceRMS.
func AssertSilent(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Less(t, RMS(s), SilenceRMS, msgAndArgs...)
}

