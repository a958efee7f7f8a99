package mathutil

import "math"

// DBToLinear converts a level in decibels to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/dbAmplitudeFactor)
}

// LinearToDB converts a linear amplitude factor to decibels.
// Values at or below 1e-10 are floored to avoid -Inf.
func LinearToDB(amplitude float64) float64 {
	if amplitude < minAmplitude {
		amplitude = minAmplitude
	}
	return dbAmplitudeFactor * math.Log10(amplitude)
}

// DecayEnvelope returns the amplitude of an exponential envelope at time t
// (seconds) that has fallen by 60 dB after rt60 seconds.
func DecayEnvelope(t, rt60 float64) float64 {
	if rt60 <= 0 {
		return 0
	}
	return math.Exp(-rt60LogRatio * t / rt60)
}
