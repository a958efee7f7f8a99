package engine

import (
	"math"
	"math/rand/v2"

	"github.com/tphakala/go-audio-ambience/internal/filter"
	"github.com/tphakala/go-audio-ambience/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// ImpulseResponse synthesises the room response for a decay time (RT60, in
// seconds) at sampleRate. The response is at most maxLen samples long and is
// normalised to unit energy.
//
// Layout:
//
//	h[0]               direct sound
//	h[i·50ms]          early reflections 0.3·0.7^i, i = 1..round(decay·10)
//	h[1:]              diffuse noise under exp(-6.908·t/decay)
//	last 5 % (<=4096)  Kaiser fade to avoid a hard cut
//
// The same arguments always produce the same response.
func ImpulseResponse(decaySeconds float64, sampleRate, maxLen int) []float64 {
	if maxLen <= 0 || sampleRate <= 0 {
		return nil
	}

	fs := float64(sampleRate)
	n := min(int(math.Ceil(decaySeconds*fs)), maxLen)
	n = max(n, 1)

	h := make([]float64, n)
	addDiffuseTail(h, decaySeconds, fs)
	h[0] = directTap
	addEarlyReflections(h, decaySeconds, fs)
	fadeTail(h)

	if energy := f64.DotProduct(h, h); energy > 0 {
		f64.Scale(h, h, 1/math.Sqrt(energy))
	}
	return h
}

func addDiffuseTail(h []float64, decaySeconds, fs float64) {
	rng := rand.New(rand.NewPCG(noiseSeedHi, noiseSeedLo))
	for i := 1; i < len(h); i++ {
		env := mathutil.DecayEnvelope(float64(i)/fs, decaySeconds)
		h[i] = (noiseScale*rng.Float64() - noiseOffset) * env
	}

	if energy := f64.DotProduct(h, h); energy > 0 {
		f64.Scale(h, h, math.Sqrt(diffuseEnergy/energy))
	}
}

func addEarlyReflections(h []float64, decaySeconds, fs float64) {
	count := int(math.Round(decaySeconds * reflectionsPerSecond))
	amp := reflectionGain
	for i := 1; i <= count; i++ {
		amp *= reflectionFalloff
		idx := int(math.Round(float64(i) * reflectionSpacingSeconds * fs))
		if idx >= len(h) {
			return
		}
		h[idx] += amp
	}
}

func fadeTail(h []float64) {
	fadeLen := min(int(float64(len(h))*tailFadeFraction), maxTailFadeSamples)
	if fadeLen <= 0 {
		return
	}

	offset := len(h) - fadeLen
	for i, w := range filter.KaiserFadeOut(fadeLen, tailFadeAttenuationDB) {
		h[offset+i] *= w
	}
}
