package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-audio-ambience/internal/testutil"
)

// TestBesselI0 tests BesselI0 against known values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		expected  float64
		tolerance float64
	}{
		{"Zero", 0.0, 1.0, 1e-15},
		{"Small positive", 0.5, 1.063483344, 1e-7},
		{"One", 1.0, 1.266065848, 1e-7},
		{"Two", 2.0, 2.279585307, 1e-7},
		{"Three", 3.0, 4.880792565, 1e-7},
		{"Boundary 3.75", 3.75, 9.118945994, 1e-7},
		{"Five", 5.0, 27.23987183, 1e-7},
		{"Ten", 10.0, 2815.716628, 1e-6},
		{"Small negative", -0.5, 1.063483344, 1e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BesselI0(tt.x)
			testutil.AssertRelativeError(t, tt.expected, result, tt.tolerance)
		})
	}
}

// TestBesselI0_Monotonic tests I₀(x) is monotonically increasing for x > 0.
func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 10.0; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev,
			"BesselI0 not monotonically increasing at x=%v: %v <= %v", x, curr, prev)
		prev = curr
	}
}

// TestKaiserBeta tests Kaiser beta calculation.
func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expectedMin float64
		expectedMax float64
	}{
		{"20dB", 20.0, 0.0, 0.1},
		{"50dB", 50.0, 4.5, 4.6},
		{"60dB", 60.0, 5.6, 5.7},
		{"80dB", 80.0, 7.8, 7.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beta := KaiserBeta(tt.attenuation)
			testutil.AssertInRange(t, beta, tt.expectedMin, tt.expectedMax)
		})
	}
}

func TestDBToLinear(t *testing.T) {
	tests := []struct {
		db   float64
		want float64
	}{
		{0, 1.0},
		{-6, 0.501187},
		{-10, 0.316228},
		{-12, 0.251189},
		{-20, 0.1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, DBToLinear(tt.db), 1e-6, "DBToLinear(%v)", tt.db)
	}
}

func TestLinearToDB_RoundTrip(t *testing.T) {
	for _, db := range []float64{-60, -12, -6, -0.5, 0} {
		assert.InDelta(t, db, LinearToDB(DBToLinear(db)), 1e-9)
	}

	// Zero is floored rather than -Inf.
	assert.InDelta(t, -200.0, LinearToDB(0), 1e-9)
}

func TestDecayEnvelope(t *testing.T) {
	assert.InDelta(t, 1.0, DecayEnvelope(0, 1.2), 1e-12)
	assert.InDelta(t, 0.001, DecayEnvelope(1.2, 1.2), 1e-9, "envelope should be -60 dB at rt60")
	assert.InDelta(t, 0.0316228, DecayEnvelope(0.25, 0.5), 1e-6, "envelope should be -30 dB at rt60/2")
	assert.Zero(t, DecayEnvelope(0.1, 0))
}

// BenchmarkBesselI0_Large benchmarks BesselI0 for large values.
func BenchmarkBesselI0_Large(b *testing.B) {
	x := 10.0
	for b.Loop() {
		_ = BesselI0(x)
	}
}
