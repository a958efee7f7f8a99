package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	ambience "github.com/tphakala/go-audio-ambience"
	"github.com/tphakala/go-audio-ambience/internal/engine"
	"github.com/tphakala/go-audio-ambience/internal/filter"
	"github.com/tphakala/simd/cpu"
	"go.uber.org/zap"
)

// ProcessCmd applies a preset to one WAV file.
type ProcessCmd struct {
	Input    string `arg:"" type:"existingfile" help:"Input WAV file"`
	Output   string `arg:"" type:"path" help:"Output WAV file"`
	Preset   string `short:"r" default:"next_room" help:"Preset id (see 'ambience list')"`
	Bits     int    `short:"b" default:"0" help:"Output bit depth; 0 keeps the input depth"`
	Parallel bool   `default:"true" negatable:"" help:"Process stereo channels concurrently"`
}

// Run implements the process command.
func (c *ProcessCmd) Run(app *appContext) error {
	start := time.Now()

	// Resolve the preset before touching any files.
	preset, err := app.catalog.Lookup(c.Preset)
	if err != nil {
		return err
	}

	in, err := readWAVInput(c.Input)
	if err != nil {
		return err
	}
	app.logger.Debug("input decoded",
		zap.String("path", c.Input),
		zap.Int("sample_rate", in.buffer.SampleRate),
		zap.Int("channels", in.buffer.NumChannels()),
		zap.Int("bit_depth", in.bitDepth),
		zap.Duration("duration", in.buffer.Duration()),
		zap.String("simd", cpu.Info()),
	)

	processor, err := ambience.New(&ambience.Config{
		Format:         ambience.FormatWAV,
		BitDepth:       outputBitDepth(c.Bits, in.bitDepth),
		EnableParallel: c.Parallel,
		Logger:         app.logger,
		Catalog:        app.catalog,
	})
	if err != nil {
		return err
	}

	var result *ambience.Result
	err = writeOutput(c.Output, func(f *os.File) error {
		var procErr error
		result, procErr = processor.Process(context.Background(), in.buffer, preset.ID, f)
		return procErr
	})
	if err != nil {
		return err
	}

	app.logger.Info("ambience applied",
		zap.String("preset", result.PresetID),
		zap.String("output", c.Output),
		zap.Duration("duration", result.Duration),
		zap.Int("bit_depth", processor.BitDepth()),
		zap.Int64("bytes", result.BytesWritten),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// ListCmd prints the catalog.
type ListCmd struct{}

// Run implements the list command.
func (c *ListCmd) Run(app *appContext) error {
	return printPresets(app.stdout, app.catalog)
}

func printPresets(w io.Writer, catalog *ambience.Catalog) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Presets"))
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %-14s %-14s %9s %7s %7s %6s %s",
		"ID", "NAME", "CUTOFF", "DECAY", "GAIN", "WIDTH", "MUFFLED")))
	sb.WriteString("\n")

	for _, p := range catalog.Presets() {
		muffled := "no"
		if p.ExtraMuffling {
			muffled = "yes"
		}
		sb.WriteString("  ")
		sb.WriteString(idStyle.Render(fmt.Sprintf("%-14s", p.ID)))
		sb.WriteString(fmt.Sprintf(" %-14s %7.0fHz %6.2fs %5.1fdB %6.2f %s\n",
			p.DisplayName, p.LowPassCutoffHz, p.ReverbDecaySeconds, p.GainReductionDB, p.StereoWidth, muffled))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// ResponseCmd prints the combined magnitude response of a preset's filters.
type ResponseCmd struct {
	Preset string `short:"r" default:"next_room" help:"Preset id"`
	Rate   int    `default:"44100" help:"Sample rate in Hz"`
	Points int    `default:"16" help:"Number of log-spaced frequencies"`
}

// Run implements the response command.
func (c *ResponseCmd) Run(app *appContext) error {
	preset, err := app.catalog.Lookup(c.Preset)
	if err != nil {
		return err
	}

	rows, err := presetResponse(preset, c.Rate, c.Points)
	if err != nil {
		return err
	}
	return printResponse(app.stdout, preset, c.Rate, rows)
}

// responseRow is the response of each filter at one frequency, in dB.
type responseRow struct {
	freq     float64
	lowPass  float64
	muffle   float64
	combined float64
}

// presetResponse evaluates the preset's low-pass and muffling filters at
// log-spaced frequencies from 20 Hz to just below Nyquist.
func presetResponse(preset ambience.Preset, sampleRate, points int) ([]responseRow, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if points < 2 {
		points = defaultResponsePoints
	}

	stage, err := engine.NewLowPass(preset.LowPassCutoffHz)
	if err != nil {
		return nil, err
	}
	lp, err := stage.Design(sampleRate)
	if err != nil {
		return nil, err
	}

	bq, muffled, err := engine.NewMuffle(preset.ExtraMuffling).Design(sampleRate)
	if err != nil {
		return nil, err
	}

	top := float64(sampleRate) / nyquistDivisor * sweepTopRatio
	if top <= minResponseHz {
		return nil, fmt.Errorf("sample rate %d too low for a response sweep", sampleRate)
	}
	ratio := math.Pow(top/minResponseHz, 1/float64(points-1))

	rows := make([]responseRow, points)
	freq := minResponseHz
	for i := range rows {
		lpMag := filter.MagnitudeAt(lp, freq, sampleRate)
		muffleMag := 1.0
		if muffled {
			muffleMag = filter.MagnitudeAt(bq, freq, sampleRate)
		}
		rows[i] = responseRow{
			freq:     freq,
			lowPass:  filter.MagnitudeDB(lpMag),
			muffle:   filter.MagnitudeDB(muffleMag),
			combined: filter.MagnitudeDB(lpMag * muffleMag),
		}
		freq *= ratio
	}
	return rows, nil
}

func printResponse(w io.Writer, preset ambience.Preset, sampleRate int, rows []responseRow) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s @ %d Hz", preset.DisplayName, sampleRate)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("gain %.1f dB is applied on top of this response", preset.GainReductionDB)))
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %10s %10s %10s %10s", "FREQ", "LOWPASS", "MUFFLE", "TOTAL")))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %8.0fHz %8.2fdB %8.2fdB %8.2fdB\n", r.freq, r.lowPass, r.muffle, r.combined))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// VersionCmd prints build information.
type VersionCmd struct{}

// Run implements the version command.
func (c *VersionCmd) Run(app *appContext) error {
	_, err := fmt.Fprintf(app.stdout, "ambience %s (%s)\n", version, cpu.Info())
	return err
}
