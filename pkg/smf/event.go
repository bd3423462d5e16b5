package smf

// EventKind identifies the kind of a decoded MIDI event.
type EventKind int

const (
	// NoteOn is a note-on event with a non-zero velocity.
	NoteOn EventKind = iota
	// NoteOff is a note-off event, or a note-on with velocity zero.
	NoteOff
	// SetTempo is a tempo change meta event.
	SetTempo
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case SetTempo:
		return "SetTempo"
	default:
		return "Unknown"
	}
}

// Event is one decoded MIDI occurrence at an absolute tick position.
// Channel, Key and Velocity are meaningful for NoteOn and NoteOff;
// TempoMicros (microseconds per quarter note) is meaningful for SetTempo.
// Events are never mutated after creation.
type Event struct {
	Tick        uint32
	Kind        EventKind
	Channel     uint8
	Key         uint8
	Velocity    uint8
	TempoMicros uint32
}
