package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-ambience/internal/pipeline"
	"github.com/tphakala/go-audio-ambience/internal/testutil"
	"github.com/tphakala/simd/f64"
)

// naiveConvolve is the reference causal, truncated convolution.
func naiveConvolve(src, ir []float64) []float64 {
	out := make([]float64, len(src))
	for n := range src {
		var sum float64
		for k := 0; k < len(ir) && k <= n; k++ {
			sum += src[n-k] * ir[k]
		}
		out[n] = sum
	}
	return out
}

func pseudoRandom(n int, seed uint64) []float64 {
	out := make([]float64, n)
	state := seed
	for i := range out {
		state = state*6364136223846793005 + 1442695040888963407
		out[i] = float64(int64(state>>11))/float64(1<<52) - 1
	}
	return out
}

func TestConvolveCausal_MatchesReference(t *testing.T) {
	tests := []struct {
		name   string
		srcLen int
		irLen  int
	}{
		{"short direct", 300, 17},
		{"direct ir longer than half", 300, 250},
		{"fft single block", 900, 400},
		{"fft many blocks", 5000, 700},
		{"fft ir equals input", 1200, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pseudoRandom(tt.srcLen, 1)
			ir := pseudoRandom(tt.irLen, 2)

			got := make([]float64, tt.srcLen)
			ConvolveCausal(got, src, ir)

			testutil.AssertSlicesInDelta(t, naiveConvolve(src, ir), got, 1e-9)
		})
	}
}

func TestConvolveCausal_ImpulseReturnsResponse(t *testing.T) {
	for _, irLen := range []int{50, 1000} {
		ir := pseudoRandom(irLen, 3)
		src := testutil.Impulse(2 * irLen)

		got := make([]float64, len(src))
		ConvolveCausal(got, src, ir)

		testutil.AssertSlicesInDelta(t, ir, got[:irLen], 1e-10)
		testutil.AssertSlicesInDelta(t, make([]float64, irLen), got[irLen:], 1e-10)
	}
}

func TestConvolveCausal_SilenceIsExact(t *testing.T) {
	ir := ImpulseResponse(2.5, testRate, 20000)
	src := make([]float64, 20000)
	got := make([]float64, len(src))
	ConvolveCausal(got, src, ir)

	for i, v := range got {
		require.Zero(t, v, "sample %d", i)
	}
}

func TestImpulseResponse_Shape(t *testing.T) {
	tests := []struct {
		name  string
		decay float64
	}{
		{"small room", 0.5},
		{"next room", 1.2},
		{"concert hall", 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := 10 * testRate
			h := ImpulseResponse(tt.decay, testRate, frames)

			assert.Len(t, h, int(math.Ceil(tt.decay*testRate)))
			assert.InDelta(t, 1.0, f64.DotProduct(h, h), 1e-9, "unit energy")
			testutil.AssertNoNaNOrInf(t, h)

			// The direct tap dominates.
			assert.InDelta(t, testutil.Peak(h), h[0], 0)

			// First early reflection sits 50 ms after the direct tap.
			reflection := int(math.Round(reflectionSpacingSeconds * testRate))
			assert.Greater(t, h[reflection], 0.1*h[0])

			// Tail ends far below the head.
			tail := h[len(h)-100:]
			assert.Less(t, testutil.Peak(tail), 0.01*h[0])
		})
	}
}

func TestImpulseResponse_Deterministic(t *testing.T) {
	a := ImpulseResponse(1.2, testRate, testRate*5)
	b := ImpulseResponse(1.2, testRate, testRate*5)
	assert.Equal(t, a, b)
}

func TestImpulseResponse_TruncatedToMaxLen(t *testing.T) {
	h := ImpulseResponse(2.5, testRate, 1000)
	assert.Len(t, h, 1000)
	assert.InDelta(t, 1.0, f64.DotProduct(h, h), 1e-9)

	single := ImpulseResponse(2.5, testRate, 1)
	assert.Equal(t, []float64{1}, single)

	assert.Nil(t, ImpulseResponse(1, testRate, 0))
}

func TestReverb_PreservesLength(t *testing.T) {
	rv, err := NewReverb(2.5)
	require.NoError(t, err)
	assert.Equal(t, "reverb", rv.Name())

	// Input shorter than the decay time.
	in := toneBuffer(2, testRate/2, 440, 0.5)
	out, err := rv.Process(in)
	require.NoError(t, err)

	assert.True(t, in.SameLayout(out))
	assert.Equal(t, 2, out.NumChannels())
}

func TestReverb_SilenceInSilenceOut(t *testing.T) {
	rv, err := NewReverb(1.2)
	require.NoError(t, err)

	in := pipeline.NewBuffer(testRate, 2, 2*testRate)
	out, err := rv.Process(in)
	require.NoError(t, err)

	for ch := range out.Channels {
		testutil.AssertSilent(t, out.Channels[ch])
	}
}

func TestReverb_StartsAtOffsetZero(t *testing.T) {
	rv, err := NewReverb(0.5)
	require.NoError(t, err)

	in := pipeline.NewBuffer(testRate, 1, testRate)
	in.Channels[0][0] = 1

	out, err := rv.Process(in)
	require.NoError(t, err)

	assert.Greater(t, out.Channels[0][0], 0.5, "no pre-delay: the dry impulse comes out first")
}

func TestReverb_Invalid(t *testing.T) {
	for _, decay := range []float64{0, -1, 10.5, math.NaN()} {
		_, err := NewReverb(decay)
		assert.Error(t, err, "decay %g", decay)
	}

	rv, err := NewReverb(1)
	require.NoError(t, err)
	assert.Error(t, rv.ProcessChannel(make([]float64, 4), make([]float64, 4), 0))
}

func BenchmarkReverb_ConcertHall(b *testing.B) {
	rv, err := NewReverb(2.5)
	require.NoError(b, err)
	in := toneBuffer(2, 5*testRate, 1000, 0.5)

	for b.Loop() {
		if _, err := rv.Process(in); err != nil {
			b.Fatal(err)
		}
	}
}
