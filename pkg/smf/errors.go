package smf

import "errors"

var (
	// ErrUnexpectedEOF is returned when the MIDI data ends mid-structure.
	ErrUnexpectedEOF = errors.New("unexpected end of MIDI data")

	// ErrInvalidFormat is returned when the MIDI file has an invalid structure.
	ErrInvalidFormat = errors.New("invalid MIDI file format")

	// ErrUnsupportedTiming is returned for files using SMPTE time division.
	ErrUnsupportedTiming = errors.New("SMPTE time division is not supported")
)
