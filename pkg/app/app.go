// Package app wires the conversion pipeline together: parse the MIDI file,
// schedule its events into notes, synthesize, normalize, and write the WAV.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"midisynth/pkg/cli"
	"midisynth/pkg/logger"
	"midisynth/pkg/sequence"
	"midisynth/pkg/smf"
	"midisynth/pkg/synth"
	"midisynth/pkg/wav"
)

// Application holds the parsed configuration and logger for one run.
type Application struct {
	config *cli.Config
	log    *slog.Logger
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run executes one conversion from the given command line arguments.
func (app *Application) Run(args []string) error {
	// 1. Parse the command line.
	config, err := cli.ParseArgs(args)
	if err != nil {
		if errors.Is(err, cli.ErrMissingArgument) {
			cli.PrintHelp()
		}
		return err
	}
	app.config = config

	if config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	// 2. Initialize logging.
	if err := logger.Init(config.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.Get()

	// 3. Run the pipeline.
	return app.convert()
}

// convert runs the pipeline stages in order. Every stage failure is fatal;
// nothing is written unless synthesis completes.
func (app *Application) convert() error {
	events, division, err := smf.ParseFile(app.config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to parse MIDI file: %w", err)
	}
	app.log.Info("MIDI parsed", "input", app.config.InputPath,
		"events", len(events), "division", division)

	notes, totalDuration := sequence.Schedule(events, division)
	if len(notes) == 0 {
		app.log.Warn("no notes found, nothing to synthesize",
			"input", app.config.InputPath)
		return nil
	}
	app.log.Info("events scheduled", "notes", len(notes),
		"duration_seconds", totalDuration)

	buffer := synth.Render(notes, totalDuration, app.config.SampleRate)
	app.log.Info("notes synthesized", "samples", len(buffer),
		"sample_rate", app.config.SampleRate)

	pcm := synth.Quantize(buffer)

	if err := wav.WriteFile(app.config.OutputPath, pcm, app.config.SampleRate); err != nil {
		return fmt.Errorf("failed to write WAV file: %w", err)
	}
	app.log.Info("WAV written", "output", app.config.OutputPath)

	return nil
}
