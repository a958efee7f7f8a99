package engine

// Gain limits
const (
	// maxGainDB is the loudest gain a preset may apply; stages only attenuate.
	maxGainDB = 0.0
)

// Reverb limits
const (
	// maxDecaySeconds bounds the synthetic impulse response length.
	maxDecaySeconds = 10.0
)

// Impulse response shape
const (
	// Direct (dry) tap at t = 0
	directTap = 1.0

	// Early reflections land every 50 ms with amplitude 0.3·0.7^i.
	reflectionSpacingSeconds = 0.05
	reflectionGain           = 0.3
	reflectionFalloff        = 0.7
	reflectionsPerSecond     = 10.0

	// Energy of the diffuse noise tail before final normalisation
	diffuseEnergy = 0.08

	// Tail fade: last 5 % of the response, at most 4096 samples,
	// shaped by a Kaiser window designed for 60 dB.
	tailFadeFraction      = 0.05
	maxTailFadeSamples    = 4096
	tailFadeAttenuationDB = 60.0

	// Fixed PCG seed so the diffuse tail is identical on every call
	noiseSeedHi = 0x616d6269656e6365
	noiseSeedLo = 0x7265766572622121

	// Uniform noise in [-1, 1): 2·u - 1
	noiseScale  = 2.0
	noiseOffset = 1.0
)

// Muffling band
const (
	muffleCenterHz = 2000.0
	muffleGainDB   = -9.0
	muffleQ        = 0.9

	// The band is skipped when its centre is not below 0.45·fs.
	muffleMaxCenterRatio = 0.45
)

// Stereo image
const (
	maxStereoWidth = 4.0
	midSideScale   = 0.5
	stereoChannels = 2
)

// FFT convolution constants.
const (
	// Minimum kernel length to use FFT convolution (below this, direct is faster).
	// Benchmarking shows crossover around 400-500 taps with gonum FFT.
	minKernelForFFT = 400

	// Default FFT block size (power of 2 for efficiency)
	defaultFFTBlockSize = 512

	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	// Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2
)
