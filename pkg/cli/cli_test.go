package cli

import (
	"errors"
	"testing"
)

// TestParseArgsPositional tests basic positional argument handling.
func TestParseArgsPositional(t *testing.T) {
	config, err := ParseArgs([]string{"in.mid", "out.wav"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if config.InputPath != "in.mid" {
		t.Errorf("InputPath = %q, want %q", config.InputPath, "in.mid")
	}
	if config.OutputPath != "out.wav" {
		t.Errorf("OutputPath = %q, want %q", config.OutputPath, "out.wav")
	}
	if config.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", config.SampleRate)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", config.LogLevel)
	}
}

// TestParseArgsMissingArguments tests that missing positionals are rejected.
func TestParseArgsMissingArguments(t *testing.T) {
	tests := [][]string{
		{},
		{"in.mid"},
		{"-l", "debug"},
	}
	for _, args := range tests {
		if _, err := ParseArgs(args); !errors.Is(err, ErrMissingArgument) {
			t.Errorf("ParseArgs(%v) error = %v, want ErrMissingArgument", args, err)
		}
	}
}

// TestParseArgsFlagsAfterPositionals tests argument reordering.
func TestParseArgsFlagsAfterPositionals(t *testing.T) {
	config, err := ParseArgs([]string{"in.mid", "out.wav", "-l", "debug", "-r", "22050"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	if config.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", config.SampleRate)
	}
	if config.InputPath != "in.mid" || config.OutputPath != "out.wav" {
		t.Errorf("positionals = %q, %q", config.InputPath, config.OutputPath)
	}
}

// TestParseArgsInvalidLogLevel tests log level validation.
func TestParseArgsInvalidLogLevel(t *testing.T) {
	if _, err := ParseArgs([]string{"-l", "loud", "in.mid", "out.wav"}); err == nil {
		t.Error("ParseArgs should reject invalid log level")
	}
}

// TestParseArgsHelp tests that help skips positional validation.
func TestParseArgsHelp(t *testing.T) {
	config, err := ParseArgs([]string{"-h"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if !config.ShowHelp {
		t.Error("ShowHelp should be true")
	}
}

// TestParseArgsEnvironment tests environment variable fallbacks.
func TestParseArgsEnvironment(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "48000")
	t.Setenv("LOG_LEVEL", "warn")

	config, err := ParseArgs([]string{"in.mid", "out.wav"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if config.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000 from environment", config.SampleRate)
	}
	if config.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn from environment", config.LogLevel)
	}
}

// TestParseArgsFlagOverridesEnvironment tests flag precedence over env vars.
func TestParseArgsFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "48000")

	config, err := ParseArgs([]string{"-r", "22050", "in.mid", "out.wav"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if config.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want flag value 22050", config.SampleRate)
	}
}
