package ambience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tphakala/go-audio-ambience/internal/pipeline"
	"go.uber.org/zap"
)

// Buffer is a block of planar PCM audio: one []float64 per channel (mono or
// stereo) at SampleRate Hz, nominally in [-1, 1].
type Buffer = pipeline.Buffer

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	return pipeline.NewBuffer(sampleRate, channels, frames)
}

// Format selects the encoded output container.
type Format int

const (
	// FormatWAV writes RIFF/WAVE integer PCM.
	FormatWAV Format = iota
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Errors returned by the processor. Match them with errors.Is.
var (
	// ErrUnknownPreset indicates the requested preset id is not in the catalog.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrInvalidAudioInput indicates an empty, malformed or non-finite input buffer.
	ErrInvalidAudioInput = errors.New("invalid audio input")

	// ErrEncodingFailure indicates the processed audio could not be encoded or written.
	ErrEncodingFailure = errors.New("encoding failure")

	// ErrInvalidPreset indicates a preset failed validation or duplicates an id.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrInvalidConfig indicates invalid processor configuration.
	ErrInvalidConfig = errors.New("invalid processor configuration")
)

// Config holds processor configuration.
type Config struct {
	// Format is the output container. Only FormatWAV is supported.
	Format Format

	// BitDepth is the PCM sample size: 16, 24 or 32. Zero selects 16.
	BitDepth int

	// EnableParallel processes the channels of channel-independent stages
	// concurrently. Output is bit-identical to sequential processing.
	// Has no effect on mono audio.
	EnableParallel bool

	// Logger receives stage timings at debug level and failures at warn.
	// Nil disables logging.
	Logger *zap.Logger

	// Catalog provides the presets. Nil selects DefaultCatalog().
	Catalog *Catalog
}

// DefaultConfig returns the configuration used by the package-level Process.
func DefaultConfig() Config {
	return Config{
		Format:   FormatWAV,
		BitDepth: defaultBitDepth,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Format != FormatWAV {
		return fmt.Errorf("%w: unsupported output format %s", ErrInvalidConfig, c.Format)
	}

	switch c.BitDepth {
	case 0, bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("%w: bit depth must be %d, %d or %d, got %d",
			ErrInvalidConfig, bitsPerSample16, bitsPerSample24, bitsPerSample32, c.BitDepth)
	}

	return nil
}

// Result describes a completed run.
type Result struct {
	// PresetID is the preset that was applied.
	PresetID string

	// SampleRate of the output, equal to the input's.
	SampleRate int

	// Channels in the output. Always 2: mono input is upmixed.
	Channels int

	// Frames in the output, equal to the input's.
	Frames int

	// Duration of the output. Always equal to the input duration.
	Duration time.Duration

	// BytesWritten is the size of the encoded artifact written to the sink.
	BytesWritten int64

	// Output is the processed audio before encoding.
	Output *Buffer
}

// Processor applies ambience presets to audio buffers.
// It is safe for concurrent use.
type Processor struct {
	format   Format
	bitDepth int
	parallel bool
	logger   *zap.Logger
	catalog  *Catalog
}

// New creates a processor. A nil config selects DefaultConfig().
func New(config *Config) (*Processor, error) {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Processor{
		format:   cfg.Format,
		bitDepth: cfg.BitDepth,
		parallel: cfg.EnableParallel,
		logger:   cfg.Logger,
		catalog:  cfg.Catalog,
	}
	if p.bitDepth == 0 {
		p.bitDepth = defaultBitDepth
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.catalog == nil {
		p.catalog = DefaultCatalog()
	}
	return p, nil
}

// Catalog returns the processor's preset catalog.
func (p *Processor) Catalog() *Catalog {
	return p.catalog
}

// BitDepth returns the output sample size in bits.
func (p *Processor) BitDepth() int {
	return p.bitDepth
}

// Render applies the preset to in and returns the processed audio without
// encoding it. in is not modified.
func (p *Processor) Render(ctx context.Context, in *Buffer, presetID string) (*Buffer, error) {
	_, out, err := p.render(ctx, in, presetID)
	return out, err
}

// Process applies the preset to in, encodes the result and writes it to sink.
//
// The preset is resolved before the input is looked at. Encoding happens into
// a private buffer and sink only receives bytes once encoding has succeeded,
// so on any error nothing has been written to it. The returned Result always
// has the input's duration.
func (p *Processor) Process(ctx context.Context, in *Buffer, presetID string, sink io.Writer) (*Result, error) {
	preset, out, err := p.render(ctx, in, presetID)
	if err != nil {
		return nil, err
	}

	if sink == nil {
		return nil, fmt.Errorf("%w: no output writer", ErrEncodingFailure)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var mem memorySink
	if err := encodeWAV(&mem, out, p.bitDepth); err != nil {
		p.logger.Warn("encoding failed", zap.String("preset", preset.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailure, err)
	}

	n, err := sink.Write(mem.Bytes())
	if err != nil {
		p.logger.Warn("writing output failed", zap.String("preset", preset.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: write output: %w", ErrEncodingFailure, err)
	}

	result := &Result{
		PresetID:     preset.ID,
		SampleRate:   out.SampleRate,
		Channels:     out.NumChannels(),
		Frames:       out.Frames(),
		Duration:     out.Duration(),
		BytesWritten: int64(n),
		Output:       out,
	}

	p.logger.Debug("ambience applied",
		zap.String("preset", preset.ID),
		zap.Int("sample_rate", result.SampleRate),
		zap.Int("frames", result.Frames),
		zap.Duration("duration", result.Duration),
		zap.Int64("bytes", result.BytesWritten),
	)
	return result, nil
}

func (p *Processor) render(ctx context.Context, in *Buffer, presetID string) (Preset, *Buffer, error) {
	preset, err := p.catalog.Lookup(presetID)
	if err != nil {
		return Preset{}, nil, err
	}

	if err := in.Validate(); err != nil {
		return Preset{}, nil, fmt.Errorf("%w: %w", ErrInvalidAudioInput, err)
	}

	pl, err := buildPipeline(preset, p.parallel, p.observer(preset.ID))
	if err != nil {
		return Preset{}, nil, err
	}

	out, err := pl.Run(ctx, in)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return Preset{}, nil, ctxErr
		}
		p.logger.Warn("pipeline failed", zap.String("preset", preset.ID), zap.Error(err))
		return Preset{}, nil, fmt.Errorf("preset %s: %w", preset.ID, err)
	}

	if out.Duration() != in.Duration() || out.SampleRate != in.SampleRate {
		return Preset{}, nil, fmt.Errorf("preset %s: %w: %v in, %v out",
			preset.ID, pipeline.ErrLengthChanged, in.Duration(), out.Duration())
	}

	return preset, out, nil
}

func (p *Processor) observer(presetID string) pipeline.Observer {
	if !p.logger.Core().Enabled(zap.DebugLevel) {
		return nil
	}
	return func(stage string, elapsed time.Duration) {
		p.logger.Debug("stage complete",
			zap.String("preset", presetID),
			zap.String("stage", stage),
			zap.Duration("elapsed", elapsed),
		)
	}
}

// defaultProcessor backs the package-level Process.
var defaultProcessor = func() *Processor {
	p, err := New(nil)
	if err != nil {
		panic(err)
	}
	return p
}()

// Process applies a built-in preset with the default configuration
// (16-bit WAV, sequential processing, no logging).
func Process(ctx context.Context, in *Buffer, presetID string, sink io.Writer) (*Result, error) {
	return defaultProcessor.Process(ctx, in, presetID, sink)
}
