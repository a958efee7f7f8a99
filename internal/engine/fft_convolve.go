package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTConvolver performs causal overlap-save convolution with a fixed impulse
// response:
//
//	y[n] = Σ_k x[n-k]·h[k],  n ∈ [0, len(x))
//
// Samples before the start of x are zero and the tail past the end of x is
// discarded, so the output always has the input's length.
//
// Overlap-save method:
//  1. The input is read in blocks of fftSize samples that overlap by irLen-1
//  2. Each block yields blockSize = fftSize - irLen + 1 valid output samples
//  3. The first irLen-1 samples of each inverse transform are circular wrap and dropped
//
// A convolver owns its working buffers and must not be shared between goroutines.
type FFTConvolver struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int

	irFFT []complex128
	irLen int
	scale float64 // gonum's inverse transform is unnormalised

	block      []float64
	blockFFT   []complex128
	productFFT []complex128
	timeResult []float64
}

// NewFFTConvolver transforms ir once for reuse across Convolve calls.
// It returns nil for an empty response.
func NewFFTConvolver(ir []float64) *FFTConvolver {
	irLen := len(ir)
	if irLen == 0 {
		return nil
	}

	fftSize := defaultFFTBlockSize
	for fftSize < 2*irLen {
		fftSize *= 2
	}

	fft := fourier.NewFFT(fftSize)

	padded := make([]float64, fftSize)
	copy(padded, ir)

	fftLen := fftSize/fftHermitianDivisor + 1
	return &FFTConvolver{
		fft:        fft,
		fftSize:    fftSize,
		blockSize:  fftSize - irLen + 1,
		irFFT:      fft.Coefficients(nil, padded),
		irLen:      irLen,
		scale:      1.0 / float64(fftSize),
		block:      make([]float64, fftSize),
		blockFFT:   make([]complex128, fftLen),
		productFFT: make([]complex128, fftLen),
		timeResult: make([]float64, fftSize),
	}
}

// Convolve writes the causal convolution of src into dst.
// dst must be at least len(src) long and must not alias src.
func (c *FFTConvolver) Convolve(dst, src []float64) {
	n := len(src)
	if n == 0 || len(dst) < n {
		return
	}

	overlap := c.irLen - 1

	// Block b covers input positions [b·blockSize - overlap, b·blockSize - overlap + fftSize).
	for outIdx := 0; outIdx < n; outIdx += c.blockSize {
		clear(c.block)

		start := outIdx - overlap
		lo := max(start, 0)
		hi := min(start+c.fftSize, n)
		if hi > lo {
			copy(c.block[lo-start:], src[lo:hi])
		}

		c.blockFFT = c.fft.Coefficients(c.blockFFT, c.block)
		c128.Mul(c.productFFT, c.blockFFT, c.irFFT)
		c.timeResult = c.fft.Sequence(c.timeResult, c.productFFT)
		f64.Scale(c.timeResult, c.timeResult, c.scale)

		valid := min(c.blockSize, n-outIdx)
		copy(dst[outIdx:outIdx+valid], c.timeResult[overlap:overlap+valid])
	}
}

// ConvolveCausal computes y[n] = Σ_k src[n-k]·ir[k] for n ∈ [0, len(src)),
// using FFT overlap-save for long responses and SIMD dot products otherwise.
// dst must be at least len(src) long and must not alias src.
func ConvolveCausal(dst, src, ir []float64) {
	if len(ir) >= minKernelForFFT {
		if conv := NewFFTConvolver(ir); conv != nil {
			conv.Convolve(dst, src)
		}
		return
	}
	convolveDirect(dst, src, ir)
}

// convolveDirect evaluates each output as a dot product between a window of
// the zero-prefixed input and the time-reversed response.
func convolveDirect(dst, src, ir []float64) {
	irLen := len(ir)
	if irLen == 0 {
		clear(dst[:len(src)])
		return
	}

	reversed := make([]float64, irLen)
	for i, v := range ir {
		reversed[irLen-1-i] = v
	}

	padded := make([]float64, len(src)+irLen-1)
	copy(padded[irLen-1:], src)

	for n := range src {
		dst[n] = f64.DotProduct(padded[n:n+irLen], reversed)
	}
}
