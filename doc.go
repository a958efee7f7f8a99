// Package ambience renders dry audio as if it were heard in a room.
//
// A preset describes a listening space (a small room, a concert hall, the room
// next door) and the package turns it into a fixed chain of DSP stages:
//
//	low-pass → gain → reverb → muffling (optional) → stereo widening
//
// The processed audio always has exactly the same duration and sample rate as
// the input and starts at the same instant, so it can be laid back under the
// original video or timeline without any re-synchronisation. Reverb that would
// ring past the end of the input is truncated.
//
// # Quick Start
//
//	buf := ambience.NewBuffer(44100, 2, frames) // fill buf.Channels
//	out, err := os.Create("out.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer out.Close()
//
//	result, err := ambience.Process(ctx, buf, ambience.PresetNextRoom, out)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Duration) // == buf.Duration()
//
// For repeated use, build a [Processor] once with a [Config]:
//
//	p, err := ambience.New(&ambience.Config{
//	    BitDepth:       24,
//	    EnableParallel: true,
//	    Logger:         logger,
//	})
//
// # Presets
//
// Built-in presets are available from [DefaultCatalog]:
//
//   - [PresetSmallRoom]: 5 kHz cutoff, 0.5 s decay, -6 dB
//   - [PresetConcertHall]: 3.5 kHz cutoff, 2.5 s decay, -10 dB, wider image
//   - [PresetNextRoom]: 2.5 kHz cutoff, 1.2 s decay, -12 dB, muffled presence band
//
// Additional presets can be registered with [Catalog.With] or read from YAML
// with [LoadPresetFile].
//
// # Errors
//
// Failures are reported with sentinel errors that callers match with
// errors.Is: [ErrUnknownPreset], [ErrInvalidAudioInput], [ErrEncodingFailure],
// [ErrInvalidPreset] and [ErrInvalidConfig]. Nothing is written to the output
// writer unless the whole call succeeds.
//
// # Thread Safety
//
// A [Processor] holds no per-call state and may be shared between goroutines.
// Catalogs are immutable.
package ambience
