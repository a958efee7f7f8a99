package ambience

// Channel layout
const (
	monoChannels   = 1
	stereoChannels = 2
)

// Sample format constants
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// PCM audio format tag in the WAV fmt chunk
	wavFormatPCM = 1

	defaultBitDepth = bitsPerSample16
)

// Preset validation limits
const (
	minCutoffHz     = 20.0
	maxCutoffHz     = 20000.0
	maxDecaySeconds = 10.0
	minGainDB       = -60.0
	maxGainDB       = 0.0
	minStereoWidth  = 0.0
	maxStereoWidth  = 4.0
)

// Built-in preset IDs.
const (
	// PresetSmallRoom is a small, lightly damped room.
	PresetSmallRoom = "small_room"

	// PresetConcertHall is a large hall with a long decay and a wide image.
	PresetConcertHall = "concert_hall"

	// PresetNextRoom is audio heard through a wall from an adjacent room.
	PresetNextRoom = "next_room"
)
