package main

// Response sweep
const (
	defaultResponsePoints = 16
	minResponseHz         = 20.0
	nyquistDivisor        = 2.0
	sweepTopRatio         = 0.99 // stop just below Nyquist
)

// Bit depths the encoder accepts
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
)

// Log file rotation
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// File permissions
const (
	logDirPerm = 0o755
)
