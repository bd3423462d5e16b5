// Package smf parses Standard MIDI Files into timestamped note and tempo
// events. Only ticks-per-quarter-note time division is supported.
package smf

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Parse decodes every track of a Standard MIDI File and returns the note and
// tempo events of all tracks as one flat sequence, stable-sorted by ascending
// tick, together with the file's time division (ticks per quarter note).
//
// The relative order of events sharing a tick is unspecified and must not be
// relied on by callers. Any structural problem (bad header tag, SMPTE
// division, short read) aborts parsing with no partial result.
func Parse(r io.ReadSeeker) ([]Event, uint16, error) {
	br := &byteReader{r: r}

	var tag [4]byte
	if err := br.readFull(tag[:]); err != nil {
		return nil, 0, err
	}
	if string(tag[:]) != "MThd" {
		return nil, 0, fmt.Errorf("%w: missing MThd header", ErrInvalidFormat)
	}

	// Header length and format word are read but carry no information we use.
	if _, err := br.readUint32(); err != nil {
		return nil, 0, err
	}
	if _, err := br.readUint16(); err != nil {
		return nil, 0, err
	}
	numTracks, err := br.readUint16()
	if err != nil {
		return nil, 0, err
	}
	division, err := br.readUint16()
	if err != nil {
		return nil, 0, err
	}
	if division&0x8000 != 0 {
		return nil, 0, ErrUnsupportedTiming
	}

	var events []Event
	for t := 0; t < int(numTracks); t++ {
		events, err = parseTrack(br, events)
		if err != nil {
			return nil, 0, err
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Tick < events[j].Tick
	})

	return events, division, nil
}

// ParseFile opens and parses the named Standard MIDI File.
func ParseFile(path string) ([]Event, uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open MIDI file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// parseTrack scans forward to the next MTrk chunk, decodes exactly its
// declared byte count of events, and appends the decoded note and tempo
// events to events.
func parseTrack(br *byteReader, events []Event) ([]Event, error) {
	var tag [4]byte
	if err := br.readFull(tag[:]); err != nil {
		return nil, err
	}
	for string(tag[:]) != "MTrk" {
		// Unknown chunks are skipped by their declared length.
		skip, err := br.readUint32()
		if err != nil {
			return nil, err
		}
		if err := br.skip(skip); err != nil {
			return nil, err
		}
		if err := br.readFull(tag[:]); err != nil {
			return nil, err
		}
	}

	trackLen, err := br.readUint32()
	if err != nil {
		return nil, err
	}
	trackStart, err := br.pos()
	if err != nil {
		return nil, err
	}
	trackEnd := trackStart + int64(trackLen)

	var absTick uint32
	var runningStatus byte

	for {
		pos, err := br.pos()
		if err != nil {
			return nil, err
		}
		if pos >= trackEnd {
			break
		}

		delta, err := br.readVarLen()
		if err != nil {
			return nil, err
		}
		absTick += delta

		b, err := br.readByte()
		if err != nil {
			return nil, err
		}

		var status byte
		if b >= 0x80 {
			status = b
			runningStatus = status
		} else {
			// Running status: the byte just read is the first data byte of an
			// event reusing the previous status. Put it back.
			status = runningStatus
			if err := br.rewindByte(); err != nil {
				return nil, err
			}
		}

		switch {
		case status == 0xFF:
			var done bool
			events, done, err = parseMetaEvent(br, events, absTick, trackEnd)
			if err != nil {
				return nil, err
			}
			if done {
				// End of track reached; parseMetaEvent left us at trackEnd.
				return events, nil
			}
		case status == 0xF0 || status == 0xF7:
			// SysEx: the payload length is itself a variable-length quantity.
			length, err := br.readVarLen()
			if err != nil {
				return nil, err
			}
			if err := br.skip(length); err != nil {
				return nil, err
			}
		default:
			events, err = parseVoiceMessage(br, events, absTick, status)
			if err != nil {
				return nil, err
			}
		}
	}

	return events, nil
}

// parseMetaEvent decodes one 0xFF meta event. A SetTempo event is appended to
// events; an end-of-track marker seeks to trackEnd and reports done=true.
func parseMetaEvent(br *byteReader, events []Event, absTick uint32, trackEnd int64) ([]Event, bool, error) {
	metaType, err := br.readByte()
	if err != nil {
		return nil, false, err
	}
	length, err := br.readVarLen()
	if err != nil {
		return nil, false, err
	}

	switch {
	case metaType == 0x51 && length == 3:
		var tbytes [3]byte
		if err := br.readFull(tbytes[:]); err != nil {
			return nil, false, err
		}
		micros := uint32(tbytes[0])<<16 | uint32(tbytes[1])<<8 | uint32(tbytes[2])
		events = append(events, Event{
			Tick:        absTick,
			Kind:        SetTempo,
			TempoMicros: micros,
		})
		return events, false, nil
	case metaType == 0x2F:
		// End of track: any remaining declared bytes are ignored.
		if err := br.seekTo(trackEnd); err != nil {
			return nil, false, err
		}
		return events, true, nil
	default:
		if err := br.skip(length); err != nil {
			return nil, false, err
		}
		return events, false, nil
	}
}

// parseVoiceMessage decodes one channel voice message. Note-on and note-off
// messages are appended to events; other voice messages are consumed
// structurally to keep the byte stream aligned but produce no event.
func parseVoiceMessage(br *byteReader, events []Event, absTick uint32, status byte) ([]Event, error) {
	cmd := status & 0xF0
	channel := status & 0x0F

	switch cmd {
	case 0x90: // Note On; velocity 0 means note off by convention
		key, err := br.readByte()
		if err != nil {
			return nil, err
		}
		vel, err := br.readByte()
		if err != nil {
			return nil, err
		}
		kind := NoteOn
		if vel == 0 {
			kind = NoteOff
		}
		events = append(events, Event{
			Tick:     absTick,
			Kind:     kind,
			Channel:  channel,
			Key:      key,
			Velocity: vel,
		})
	case 0x80: // Note Off
		key, err := br.readByte()
		if err != nil {
			return nil, err
		}
		vel, err := br.readByte()
		if err != nil {
			return nil, err
		}
		events = append(events, Event{
			Tick:     absTick,
			Kind:     NoteOff,
			Channel:  channel,
			Key:      key,
			Velocity: vel,
		})
	case 0xC0, 0xD0: // Program change, channel pressure: one data byte
		if err := br.skip(1); err != nil {
			return nil, err
		}
	default: // All other voice messages carry two data bytes
		if err := br.skip(2); err != nil {
			return nil, err
		}
	}

	return events, nil
}
