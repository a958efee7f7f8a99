package filter

import "math"

const (
	// Window normalization
	windowNormalizationFactor = 2.0

	// Center tap of a length-1 window
	windowCenterTap = 1.0

	// twoPi is used for angular frequency conversion
	twoPi = 2 * math.Pi

	// Nyquist factor: the highest representable frequency is fs/2
	nyquistDivisor = 2.0

	// RBJ cookbook: A = 10^(dBgain/40) for peaking filters
	peakingGainDivisor = 40.0

	// Default number of points for frequency response evaluation
	defaultResponsePoints = 512

	// Magnitude floor used when converting to decibels
	minMagnitude = 1e-10
	dbMultiplier = 20.0
)
