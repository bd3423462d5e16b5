// Package synth renders notes into a PCM waveform by additive synthesis of
// harmonically related sine partials shaped by an attack/release envelope.
package synth

import (
	"math"

	"midisynth/pkg/sequence"
)

// DefaultSampleRate is the sample rate of the emitted waveform.
const DefaultSampleRate = 44100

const (
	// attackSeconds is the linear 0→1 attack ramp length.
	attackSeconds = 0.05
	// releaseSeconds is the linear 1→0 release window after the nominal
	// note duration.
	releaseSeconds = 0.1
	// headroom scales every note so that pre-normalization sums rarely clip.
	headroom = 0.3
	// partialNorm is roughly the sum of the partial amplitudes, bringing the
	// raw harmonic sum back near unit scale.
	partialNorm = 1.9
)

// Channel 9 (percussion) is rendered as a fixed short tone burst, not
// pitched: the notated key and duration are ignored.
const (
	percussionChannel  = 9
	percussionFreq     = 100.0
	percussionDuration = 0.05
)

// partialAmps are the relative amplitudes of harmonics 1..4.
var partialAmps = [4]float64{1.0, 0.5, 0.3, 0.1}

// semitoneRatio[s] is 2^(s/12) for s in 0..11.
var semitoneRatio [12]float64

func init() {
	for s := range semitoneRatio {
		semitoneRatio[s] = math.Pow(2, float64(s)/12)
	}
}

// Frequency returns the equal-tempered frequency in Hz for a MIDI key,
// 440 * 2^((key-69)/12), with A4 (key 69) at 440 Hz. The octave shift is
// applied as an exact power of two, so Frequency(key+12) is exactly twice
// Frequency(key).
func Frequency(key uint8) float64 {
	n := int(key) - 69
	octave := n / 12
	semitone := n % 12
	if semitone < 0 {
		semitone += 12
		octave--
	}
	return math.Ldexp(440*semitoneRatio[semitone], octave)
}

// Render mixes every note into a freshly allocated accumulation buffer of
// ceil(totalDuration*sampleRate) samples and returns it. Writes past the end
// of the buffer are truncated, never out of bounds.
func Render(notes []sequence.Note, totalDuration float64, sampleRate int) []float64 {
	totalSamples := int(math.Ceil(totalDuration * float64(sampleRate)))
	buffer := make([]float64, totalSamples)

	for _, n := range notes {
		renderNote(buffer, n, sampleRate)
	}

	return buffer
}

// renderNote adds one note's waveform into the shared buffer.
func renderNote(buffer []float64, n sequence.Note, sampleRate int) {
	isPercussion := n.Channel == percussionChannel

	freq := Frequency(n.Key)
	duration := n.Duration
	if isPercussion {
		freq = percussionFreq
		duration = percussionDuration
	}
	amp := float64(n.Velocity) / 127.0 * headroom

	rate := float64(sampleRate)
	nyquist := rate / 2

	startSample := int(n.Start * rate)
	if startSample >= len(buffer) {
		return
	}
	endSample := startSample + int((duration+releaseSeconds)*rate)
	if endSample > len(buffer) {
		endSample = len(buffer)
	}

	for t := 0; startSample+t < endSample; t++ {
		timeInNote := float64(t) / rate

		var sample float64
		if isPercussion {
			sample = math.Sin(2 * math.Pi * freq * timeInNote)
		} else {
			// Harmonics at or above Nyquist are omitted to avoid aliasing.
			for i, pa := range partialAmps {
				harmonic := freq * float64(i+1)
				if harmonic < nyquist {
					sample += pa * math.Sin(2*math.Pi*harmonic*timeInNote)
				}
			}
			sample /= partialNorm
		}

		env := 1.0
		if timeInNote < attackSeconds {
			env = timeInNote / attackSeconds
		} else if timeInNote > duration {
			env = 1.0 - (timeInNote-duration)/releaseSeconds
			if env < 0 {
				env = 0
			}
		}

		buffer[startSample+t] += sample * amp * env
	}
}
