package main

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
	ambience "github.com/tphakala/go-audio-ambience"
)

// wavInput holds a decoded input file.
type wavInput struct {
	buffer   *ambience.Buffer
	bitDepth int
}

// readWAVInput opens, validates and fully decodes a WAV file.
func readWAVInput(path string) (*wavInput, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	bitDepth := int(decoder.BitDepth)
	if pcm.SourceBitDepth == 0 {
		pcm.SourceBitDepth = bitDepth
	}

	buf, err := ambience.FromIntBuffer(pcm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &wavInput{buffer: buf, bitDepth: bitDepth}, nil
}

// outputBitDepth picks the requested depth, or the input's when it is one the
// encoder supports.
func outputBitDepth(requested, input int) int {
	if requested != 0 {
		return requested
	}
	switch input {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return input
	default:
		return bitsPerSample16
	}
}

// writeOutput runs fn against a freshly created file at path. The file is
// removed when fn fails so no partial artifact is left behind.
func writeOutput(path string, fn func(f *os.File) error) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := fn(outputFile); err != nil {
		_ = outputFile.Close()
		_ = os.Remove(path)
		return err
	}

	if err := outputFile.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
