package ambience

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-ambience/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testRate = testutil.SampleRateCD

	// Steady-state measurement window for the 5 s tone tests.
	toneStart = 3 * testRate
	toneEnd   = 5 * testRate
)

// toneBuffer returns a buffer holding the same tone on every channel.
func toneBuffer(channels int, seconds, freq, amp float64) *Buffer {
	frames := int(seconds * testRate)
	buf := NewBuffer(testRate, channels, frames)
	tone := testutil.Sine(frames, freq, amp, testRate)
	for ch := range buf.Channels {
		copy(buf.Channels[ch], tone)
	}
	return buf
}

// stereoMix returns a stereo buffer with different content per channel.
func stereoMix(frames int) *Buffer {
	buf := NewBuffer(testRate, 2, frames)
	copy(buf.Channels[0], testutil.Sine(frames, 440, 0.4, testRate))
	copy(buf.Channels[1], testutil.Sine(frames, 1250, 0.3, testRate))
	return buf
}

func newTestProcessor(t *testing.T, cfg *Config) *Processor {
	t.Helper()
	p, err := New(cfg)
	require.NoError(t, err)
	return p
}

func TestProcess_SilenceThroughNextRoom(t *testing.T) {
	in := NewBuffer(testRate, 2, 10*testRate)

	var sink bytes.Buffer
	result, err := Process(context.Background(), in, PresetNextRoom, &sink)
	require.NoError(t, err)

	assert.Equal(t, PresetNextRoom, result.PresetID)
	assert.Equal(t, 10*time.Second, result.Duration)
	assert.Equal(t, 2, result.Channels)
	assert.Equal(t, testRate, result.SampleRate)
	assert.Equal(t, 10*testRate, result.Frames)
	assert.Equal(t, int64(sink.Len()), result.BytesWritten)

	for ch := range result.Output.Channels {
		testutil.AssertSilent(t, result.Output.Channels[ch])
	}

	decoded, err := DecodeWAV(bytes.NewReader(sink.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 10*testRate, decoded.Frames())
	assert.Equal(t, 2, decoded.NumChannels())
	assert.Equal(t, in.Duration(), decoded.Duration())
}

func TestProcess_ToneLevels(t *testing.T) {
	in := toneBuffer(2, 5, testutil.ToneFreq, 0.5)
	inAmp := testutil.ToneAmplitude(in.Channels[0][toneStart:toneEnd], testutil.ToneFreq, testRate)

	p := newTestProcessor(t, nil)
	levels := make(map[string]float64)
	for _, id := range []string{PresetSmallRoom, PresetNextRoom} {
		var sink bytes.Buffer
		result, err := p.Process(context.Background(), in, id, &sink)
		require.NoError(t, err, id)
		require.Equal(t, in.Duration(), result.Duration, id)

		out := result.Output.Channels[0][toneStart:toneEnd]
		testutil.AssertNoNaNOrInf(t, out, id)
		levels[id] = testutil.ToneAmplitude(out, testutil.ToneFreq, testRate) / inAmp
	}

	assert.Greater(t, levels[PresetSmallRoom], 0.35, "small room keeps the fundamental largely intact")
	assert.Less(t, levels[PresetNextRoom], levels[PresetSmallRoom]*0.75,
		"next room attenuates the fundamental measurably more (small %.3f, next %.3f)",
		levels[PresetSmallRoom], levels[PresetNextRoom])
}

func TestProcess_DurationInvariant(t *testing.T) {
	p := newTestProcessor(t, nil)

	for _, id := range DefaultCatalog().IDs() {
		for _, channels := range []int{1, 2} {
			in := NewBuffer(48000, channels, 12345)
			copy(in.Channels[0], testutil.Sine(12345, 300, 0.9, 48000))

			var sink bytes.Buffer
			result, err := p.Process(context.Background(), in, id, &sink)
			require.NoError(t, err, "%s/%d", id, channels)

			assert.Equal(t, in.Duration(), result.Duration, "%s/%d", id, channels)
			assert.Equal(t, in.Frames(), result.Output.Frames(), "%s/%d", id, channels)
			assert.Equal(t, 48000, result.Output.SampleRate, "%s/%d", id, channels)
			assert.Equal(t, 2, result.Output.NumChannels(), "%s/%d: output is stereo", id, channels)
		}
	}
}

func TestProcess_Deterministic(t *testing.T) {
	p := newTestProcessor(t, nil)
	in := stereoMix(2 * testRate)

	var first, second bytes.Buffer
	a, err := p.Process(context.Background(), in, PresetConcertHall, &first)
	require.NoError(t, err)
	b, err := p.Process(context.Background(), in, PresetConcertHall, &second)
	require.NoError(t, err)

	assert.Equal(t, a.Output.Channels, b.Output.Channels)
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestProcess_ParallelMatchesSequential(t *testing.T) {
	in := stereoMix(testRate)

	seq := newTestProcessor(t, nil)
	par := newTestProcessor(t, &Config{EnableParallel: true})

	for _, id := range DefaultCatalog().IDs() {
		want, err := seq.Render(context.Background(), in, id)
		require.NoError(t, err)
		got, err := par.Render(context.Background(), in, id)
		require.NoError(t, err)

		assert.Equal(t, want.Channels, got.Channels, id)
	}
}

func TestProcess_InputUntouched(t *testing.T) {
	in := stereoMix(4096)
	snapshot := in.Clone()

	_, err := Process(context.Background(), in, PresetNextRoom, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
}

func TestProcess_UnknownPreset(t *testing.T) {
	var sink bytes.Buffer

	result, err := Process(context.Background(), stereoMix(1024), "bathroom", &sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Nil(t, result)
	assert.Zero(t, sink.Len(), "nothing may be written for an unknown preset")

	// The preset is resolved before the input is inspected.
	_, err = Process(context.Background(), nil, "bathroom", &sink)
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Zero(t, sink.Len())
}

func TestProcess_InvalidInput(t *testing.T) {
	nanBuf := stereoMix(64)
	nanBuf.Channels[1][10] = math.NaN()

	infBuf := stereoMix(64)
	infBuf.Channels[0][0] = math.Inf(1)

	ragged := stereoMix(64)
	ragged.Channels[1] = ragged.Channels[1][:32]

	tests := []struct {
		name string
		buf  *Buffer
	}{
		{"nil", nil},
		{"no frames", NewBuffer(testRate, 2, 0)},
		{"zero sample rate", NewBuffer(0, 2, 64)},
		{"three channels", NewBuffer(testRate, 3, 64)},
		{"ragged channels", ragged},
		{"NaN sample", nanBuf},
		{"Inf sample", infBuf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sink bytes.Buffer
			result, err := Process(context.Background(), tt.buf, PresetSmallRoom, &sink)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidAudioInput)
			assert.Nil(t, result)
			assert.Zero(t, sink.Len())
		})
	}
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		p := newTestProcessor(t, &Config{EnableParallel: parallel})

		var sink bytes.Buffer
		result, err := p.Process(ctx, stereoMix(testRate), PresetConcertHall, &sink)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
		assert.Zero(t, sink.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestProcess_SinkFailure(t *testing.T) {
	_, err := Process(context.Background(), stereoMix(1024), PresetSmallRoom, failingWriter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncodingFailure)
	assert.Contains(t, err.Error(), "disk full")

	_, err = Process(context.Background(), stereoMix(1024), PresetSmallRoom, nil)
	assert.ErrorIs(t, err, ErrEncodingFailure)
}

func TestProcess_BitDepths(t *testing.T) {
	in := stereoMix(testRate / 4)

	for _, depth := range []int{16, 24, 32} {
		p := newTestProcessor(t, &Config{BitDepth: depth})
		assert.Equal(t, depth, p.BitDepth())

		var sink bytes.Buffer
		result, err := p.Process(context.Background(), in, PresetSmallRoom, &sink)
		require.NoError(t, err, "%d bit", depth)

		decoded, err := DecodeWAV(bytes.NewReader(sink.Bytes()))
		require.NoError(t, err, "%d bit", depth)
		assert.Equal(t, in.Frames(), decoded.Frames())

		// Quantisation error is bounded by half an LSB of the output depth.
		lsb := 1 / maxValue(depth)
		testutil.AssertSlicesInDelta(t, result.Output.Channels[0], decoded.Channels[0], lsb, "%d bit", depth)
	}
}

func TestProcess_CustomCatalog(t *testing.T) {
	catalog, err := DefaultCatalog().With(Preset{
		ID:                 "cathedral",
		DisplayName:        "Cathedral",
		LowPassCutoffHz:    4000,
		ReverbDecaySeconds: 6,
		GainReductionDB:    -8,
		StereoWidth:        2,
	})
	require.NoError(t, err)

	p := newTestProcessor(t, &Config{Catalog: catalog})
	assert.Same(t, catalog, p.Catalog())

	result, err := p.Process(context.Background(), stereoMix(testRate), "cathedral", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "cathedral", result.PresetID)

	_, err = Process(context.Background(), stereoMix(testRate), "cathedral", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownPreset, "default catalog must not see custom presets")
}

func TestProcess_LogsStages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := newTestProcessor(t, &Config{Logger: zap.New(core)})

	_, err := p.Process(context.Background(), stereoMix(2048), PresetNextRoom, &bytes.Buffer{})
	require.NoError(t, err)

	var stages []string
	for _, entry := range logs.FilterMessage("stage complete").All() {
		stages = append(stages, entry.ContextMap()["stage"].(string))
	}
	assert.Equal(t, []string{"lowpass", "gain", "reverb", "muffle", "widen"}, stages)
	assert.Equal(t, 1, logs.FilterMessage("ambience applied").Len())

	_, err = p.Process(context.Background(), stereoMix(2048), "nope", &bytes.Buffer{})
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero value", Config{}, false},
		{"24 bit", Config{BitDepth: 24}, false},
		{"32 bit parallel", Config{BitDepth: 32, EnableParallel: true}, false},
		{"8 bit", Config{BitDepth: 8}, true},
		{"unknown format", Config{Format: Format(7)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				_, newErr := New(&tt.cfg)
				assert.ErrorIs(t, newErr, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "wav", FormatWAV.String())
	assert.Equal(t, "Format(3)", Format(3).String())
}

func BenchmarkProcess_NextRoom(b *testing.B) {
	in := stereoMix(5 * testRate)
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			p, err := New(&Config{EnableParallel: parallel})
			require.NoError(b, err)
			for b.Loop() {
				if _, err := p.Render(context.Background(), in, PresetNextRoom); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
