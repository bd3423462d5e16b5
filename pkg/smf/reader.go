package smf

import (
	"io"
)

// byteReader reads big-endian primitives and MIDI variable-length quantities
// from a seekable byte source. Any short read is reported as ErrUnexpectedEOF;
// there is no partial-result mode.
type byteReader struct {
	r io.ReadSeeker
}

// readFull fills p or fails with ErrUnexpectedEOF.
func (br *byteReader) readFull(p []byte) error {
	if _, err := io.ReadFull(br.r, p); err != nil {
		return ErrUnexpectedEOF
	}
	return nil
}

// readByte reads a single byte.
func (br *byteReader) readByte() (byte, error) {
	var buf [1]byte
	if err := br.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// readUint16 reads a big-endian 16-bit unsigned integer.
func (br *byteReader) readUint16() (uint16, error) {
	var buf [2]byte
	if err := br.readFull(buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// readUint32 reads a big-endian 32-bit unsigned integer.
func (br *byteReader) readUint32() (uint32, error) {
	var buf [4]byte
	if err := br.readFull(buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// readVarLen reads a MIDI variable-length quantity: each byte contributes
// 7 bits, with the continuation flag in bit 7.
func (br *byteReader) readVarLen() (uint32, error) {
	var value uint32
	for {
		c, err := br.readByte()
		if err != nil {
			return 0, err
		}
		value = value<<7 | uint32(c&0x7F)
		if c&0x80 == 0 {
			return value, nil
		}
	}
}

// rewindByte seeks one byte backwards, so that a data byte consumed during
// running-status lookahead is re-read as payload.
func (br *byteReader) rewindByte() error {
	_, err := br.r.Seek(-1, io.SeekCurrent)
	return err
}

// skip advances past n bytes without decoding them.
func (br *byteReader) skip(n uint32) error {
	_, err := br.r.Seek(int64(n), io.SeekCurrent)
	return err
}

// pos reports the current offset from the start of the source.
func (br *byteReader) pos() (int64, error) {
	return br.r.Seek(0, io.SeekCurrent)
}

// seekTo moves to an absolute offset.
func (br *byteReader) seekTo(offset int64) error {
	_, err := br.r.Seek(offset, io.SeekStart)
	return err
}
