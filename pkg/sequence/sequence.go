// Package sequence resolves tick-timed MIDI events into notes with
// continuous start times and durations in seconds.
package sequence

import (
	"midisynth/pkg/smf"
)

// defaultMicrosPerBeat is the MIDI default tempo of 120 BPM, in effect until
// the first SetTempo event.
const defaultMicrosPerBeat = 500000.0

// tailSeconds is reserved after the last event so the release of the final
// notes can decay.
const tailSeconds = 1.0

// Note is a fully time-resolved musical event.
type Note struct {
	Start    float64 // seconds from the beginning of the file
	Duration float64 // seconds, always > 0
	Key      uint8
	Velocity uint8
	Channel  uint8
}

// Schedule walks the tick-sorted events in a single forward pass, converting
// delta ticks to seconds under the running tempo, and pairs note-on with
// note-off events into Notes. It returns the notes and the total duration in
// seconds (time of the last event plus a one second tail).
//
// A note-on for a (channel, key) that is already sounding closes the existing
// note first and retriggers it. A note-off with no matching note-on is a
// no-op. Notes still sounding after the last event are dropped. Zero-length
// notes are never emitted.
//
// Notes are appended in the order they are closed, which is generally not
// sorted by start time: a note that starts early but ends late is emitted
// late. Callers that need start-time order must sort explicitly.
func Schedule(events []smf.Event, division uint16) ([]Note, float64) {
	var notes []Note

	currentTime := 0.0
	var currentTick uint32
	microsPerBeat := defaultMicrosPerBeat

	// Active-note table: start time per (channel, key), -1 when silent.
	var activeStart [16][128]float64
	var activeVelocity [16][128]uint8
	for c := range activeStart {
		for k := range activeStart[c] {
			activeStart[c][k] = -1
		}
	}

	for _, e := range events {
		// Advance time before handling the event, so tempo changes between
		// two note events show up proportionally in elapsed time.
		if deltaTicks := e.Tick - currentTick; deltaTicks > 0 {
			secondsPerTick := (microsPerBeat / 1_000_000.0) / float64(division)
			currentTime += float64(deltaTicks) * secondsPerTick
			currentTick = e.Tick
		}

		switch e.Kind {
		case smf.SetTempo:
			microsPerBeat = float64(e.TempoMicros)

		case smf.NoteOn:
			if e.Key > 127 {
				continue
			}
			// Retrigger: close the sounding note as if a note-off occurred
			// here, then open a fresh one.
			if activeStart[e.Channel][e.Key] >= 0 {
				notes = closeNote(notes, &activeStart[e.Channel][e.Key],
					activeVelocity[e.Channel][e.Key], e, currentTime)
			}
			activeStart[e.Channel][e.Key] = currentTime
			activeVelocity[e.Channel][e.Key] = e.Velocity

		case smf.NoteOff:
			if e.Key > 127 {
				continue
			}
			if activeStart[e.Channel][e.Key] >= 0 {
				notes = closeNote(notes, &activeStart[e.Channel][e.Key],
					activeVelocity[e.Channel][e.Key], e, currentTime)
				activeStart[e.Channel][e.Key] = -1
			}
		}
	}

	return notes, currentTime + tailSeconds
}

// closeNote emits the note sounding at *start if its duration is positive.
// The velocity is the one recorded at note-on time, not the closing event's.
func closeNote(notes []Note, start *float64, velocity uint8, e smf.Event, now float64) []Note {
	duration := now - *start
	if duration <= 0 {
		return notes
	}
	return append(notes, Note{
		Start:    *start,
		Duration: duration,
		Key:      e.Key,
		Velocity: velocity,
		Channel:  e.Channel,
	})
}
