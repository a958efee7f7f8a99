package ambience

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// memorySink is an in-memory io.WriteSeeker. The WAV encoder seeks back to
// patch chunk sizes, so output is staged here before reaching the caller.
type memorySink struct {
	buf []byte
	pos int
}

var errNegativeOffset = errors.New("negative seek offset")

// Write implements io.Writer, overwriting or extending at the current offset.
func (m *memorySink) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		if end > cap(m.buf) {
			grown := make([]byte, end, max(end, 2*cap(m.buf)))
			copy(grown, m.buf)
			m.buf = grown
		} else {
			m.buf = m.buf[:end]
		}
	}
	copy(m.buf[m.pos:], p)
	m.pos = end
	return len(p), nil
}

// Seek implements io.Seeker.
func (m *memorySink) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(m.pos)
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}

	next := base + offset
	if next < 0 {
		return 0, errNegativeOffset
	}
	m.pos = int(next)
	return next, nil
}

// Bytes returns the staged content.
func (m *memorySink) Bytes() []byte {
	return m.buf
}

// encodeWAV writes buf as integer PCM WAV. Samples outside [-1, 1] are clamped
// here and nowhere else.
func encodeWAV(w io.WriteSeeker, buf *Buffer, bitDepth int) error {
	enc := wav.NewEncoder(w, buf.SampleRate, bitDepth, buf.NumChannels(), wavFormatPCM)

	if err := enc.Write(ToIntBuffer(buf, bitDepth)); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalise wav: %w", err)
	}
	return nil
}

// EncodeWAV encodes buf as WAV into w at the given bit depth (16, 24 or 32).
// Seeking is required to finalise the RIFF header.
func EncodeWAV(w io.WriteSeeker, buf *Buffer, bitDepth int) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAudioInput, err)
	}
	if maxValue(bitDepth) == 0 {
		return fmt.Errorf("%w: unsupported bit depth %d", ErrEncodingFailure, bitDepth)
	}
	if err := encodeWAV(w, buf, bitDepth); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingFailure, err)
	}
	return nil
}

// DecodeWAV reads a whole WAV stream into a Buffer.
func DecodeWAV(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV stream", ErrInvalidAudioInput)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: decode wav: %w", ErrInvalidAudioInput, err)
	}
	if pcm.SourceBitDepth == 0 {
		pcm.SourceBitDepth = int(dec.BitDepth)
	}
	return FromIntBuffer(pcm)
}

// intBufferBitDepth returns the source bit depth of b, defaulting to 16.
func intBufferBitDepth(b *audio.IntBuffer) int {
	if b.SourceBitDepth > 0 {
		return b.SourceBitDepth
	}
	return defaultBitDepth
}
