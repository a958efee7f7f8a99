// Command ambience renders a WAV file as if it were heard in a room.
//
// Usage:
//
//	ambience process --preset next_room input.wav output.wav
//	ambience process --preset concert_hall --bits 24 input.wav output.wav
//	ambience list
//	ambience response --preset next_room --rate 48000
//
// Output keeps the exact duration and sample rate of the input, so it can be
// swapped in under the original video track. Extra presets can be loaded
// from YAML with --presets-file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	ambience "github.com/tphakala/go-audio-ambience"
	"go.uber.org/zap"
)

var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	LogFile     string `type:"path" help:"Also write JSON logs to this file (rotated)"`
	PresetsFile string `short:"p" type:"existingfile" help:"YAML file with additional presets"`

	Process  ProcessCmd  `cmd:"" help:"Apply an ambience preset to a WAV file"`
	List     ListCmd     `cmd:"" help:"List available presets"`
	Response ResponseCmd `cmd:"" help:"Print the frequency response of a preset's filters"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// appContext carries shared state into command Run methods.
type appContext struct {
	logger  *zap.Logger
	catalog *ambience.Catalog
	stdout  io.Writer
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("ambience"),
		kong.Description("Apply room ambience presets to WAV audio"),
		kong.UsageOnError(),
	)

	logger, err := newLogger(cli.Verbose, cli.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(cli.PresetsFile)
	if err != nil {
		logger.Error("loading presets failed", zap.Error(err))
		os.Exit(1)
	}

	app := &appContext{
		logger:  logger,
		catalog: catalog,
		stdout:  os.Stdout,
	}
	if err := ctx.Run(app); err != nil {
		logger.Error("command failed", zap.String("command", ctx.Command()), zap.Error(err))
		os.Exit(1)
	}
}

// loadCatalog returns the default catalog extended with presets from path.
func loadCatalog(path string) (*ambience.Catalog, error) {
	catalog := ambience.DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	presets, err := ambience.LoadPresetFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.With(presets...)
}
