package pipeline

// Channel layout limits
const (
	monoChannels   = 1
	stereoChannels = 2
)

// Pipeline capacities
const (
	defaultStageCapacity = 5 // Filter, gain, reverb, muffle, widen
)
