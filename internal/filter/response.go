package filter

import (
	"math"
	"math/cmplx"
)

// Responder is implemented by filters that can report their frequency response.
type Responder interface {
	Response(freq float64, sampleRate int) complex128
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (Hz, 0 to Nyquist)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse evaluates f at numPoints frequencies from DC up to
// (but excluding) Nyquist. numPoints <= 0 selects 512 points.
func ComputeFrequencyResponse(f Responder, sampleRate, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	nyquist := float64(sampleRate) / nyquistDivisor
	for k := range numPoints {
		freq := nyquist * float64(k) / float64(numPoints)
		h := f.Response(freq, sampleRate)

		response.Frequencies[k] = freq
		response.Magnitude[k] = cmplx.Abs(h)
		response.Phase[k] = cmplx.Phase(h)
	}

	return response
}

// MagnitudeAt returns |H| of f at freq Hz.
func MagnitudeAt(f Responder, freq float64, sampleRate int) float64 {
	return cmplx.Abs(f.Response(freq, sampleRate))
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
