// Package wav serializes 16-bit mono PCM samples as a canonical RIFF/WAVE
// file.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// header is the 44-byte canonical PCM WAV header, written little-endian.
type header struct {
	RIFFTag       [4]byte
	FileSize      uint32 // total file size minus the first 8 bytes
	WAVETag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32 // 16 for PCM
	AudioFormat   uint16 // 1 = PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * bytes per sample
	BlockAlign    uint16 // NumChannels * bytes per sample
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32 // sample count * bytes per sample
}

// Write serializes samples as a 16-bit mono PCM WAV stream at the given
// sample rate.
func Write(w io.Writer, samples []int16, sampleRate int) error {
	dataSize := uint32(len(samples)) * 2

	h := header{
		RIFFTag:       [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      36 + dataSize,
		WAVETag:       [4]byte{'W', 'A', 'V', 'E'},
		FmtTag:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		DataTag:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}

	return nil
}

// WriteFile writes samples to the named file as a 16-bit mono PCM WAV file.
func WriteFile(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}

	if err := Write(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
