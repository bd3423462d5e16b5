// Package cli parses the midisynth command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrMissingArgument is returned when the input or output path is missing.
var ErrMissingArgument = errors.New("input and output paths are required")

// Config holds the settings parsed from the command line.
type Config struct {
	InputPath  string // path to the Standard MIDI File to read
	OutputPath string // path to the WAV file to write
	SampleRate int    // output sample rate in Hz
	LogLevel   string // log level (debug, info, warn, error)
	ShowHelp   bool   // help flag
}

// ParseArgs parses command line arguments into a Config.
// Flags may appear before or after the positional arguments.
func ParseArgs(args []string) (*Config, error) {
	// Reorder arguments: flags first, positionals last.
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("midisynth", flag.ContinueOnError)

	config := &Config{}

	fs.IntVar(&config.SampleRate, "sample-rate", 0, "output sample rate in Hz")
	fs.IntVar(&config.SampleRate, "r", 0, "output sample rate in Hz (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// Environment variables apply when the flag is left at its default.
	if config.SampleRate == 0 {
		if rateEnv := os.Getenv("SAMPLE_RATE"); rateEnv != "" {
			if r, err := strconv.Atoi(rateEnv); err == nil && r > 0 {
				config.SampleRate = r
			}
		}
	}
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.SampleRate < 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", config.SampleRate)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if config.ShowHelp {
		return config, nil
	}

	if fs.NArg() < 2 {
		return nil, ErrMissingArgument
	}
	config.InputPath = fs.Arg(0)
	config.OutputPath = fs.Arg(1)

	return config, nil
}

// reorderArgs places flags before positional arguments so that
// "midisynth in.mid out.wav -l debug" parses the same as
// "midisynth -l debug in.mid out.wav".
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// A value may follow (as in "-r 48000"); boolean flags take none.
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if arg != "-h" && arg != "--help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp writes the usage message to stderr.
func PrintHelp() {
	fmt.Fprintf(os.Stderr, `midisynth - render a Standard MIDI File to a 16-bit PCM WAV file

Usage:
  midisynth [options] <input.mid> <output.wav>

Arguments:
  input.mid     Standard MIDI File to read (ticks-per-quarter-note timing only)
  output.wav    WAV file to write (16-bit mono PCM)

Options:
  -r, --sample-rate <hz>      output sample rate (default: 44100)
  -l, --log-level <level>     log level: debug, info, warn, error (default: info)
  -h, --help                  show this help

Environment Variables:
  SAMPLE_RATE=<hz>            output sample rate
  LOG_LEVEL=<level>           log level

Examples:
  midisynth song.mid song.wav
  midisynth -l debug song.mid song.wav
  midisynth --sample-rate 22050 song.mid song.wav
`)
}
