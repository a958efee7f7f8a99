// Package filter provides the IIR filter designs and window functions used by
// the ambience stages, together with helpers to evaluate their frequency
// response.
package filter

import (
	"math"

	"github.com/tphakala/go-audio-ambience/internal/mathutil"
)

// KaiserWindow generates a Kaiser window of the specified length and β parameter.
//
// The Kaiser window provides control over the trade-off between main lobe
// width and sidelobe level.
//
// Parameters:
//
//	length: Number of samples in the window
//	beta: Kaiser β parameter (typically 0-15)
//
// The window is symmetric: w[i] = w[length-1-i], and peaks at 1.0 in the centre.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	if length == 1 {
		window[0] = windowCenterTap
		return window
	}

	// w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(math.Max(0, 1.0-x*x))
		window[n] = mathutil.BesselI0(arg) / i0Beta
	}

	return window
}

// KaiserFadeOut returns the falling half of a Kaiser window: length samples
// going from 1.0 down towards the window's edge value.
// attenuation selects β via mathutil.KaiserBeta.
func KaiserFadeOut(length int, attenuation float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	full := KaiserWindow(2*length, mathutil.KaiserBeta(attenuation))
	fade := make([]float64, length)
	copy(fade, full[length:])
	return fade
}
