package format_v1

import (
	"encoding/binary"
	"fmt"

	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
)

// Header is the fixed 12-byte preamble of a bundle
type Header struct {
	// Identification (4 bytes)
	Magic   uint16 // 0xFFAB
	Version uint16 // 0x0001

	// Metadata block (8 bytes)
	FrameCount uint16 // Number of frames in the index table
	Width      uint16 // Shared frame width in pixels
	Height     uint16 // Shared frame height in pixels
	FormatCode uint16 // ASTC block size code
}

// Pack serializes the header to bytes
func (h *Header) Pack() []byte {
	buf := make([]byte, PreambleSize)

	binary.BigEndian.PutUint16(buf[0:2], h.Magic)
	binary.BigEndian.PutUint16(buf[2:4], h.Version)
	binary.BigEndian.PutUint16(buf[4:6], h.FrameCount)
	binary.BigEndian.PutUint16(buf[6:8], h.Width)
	binary.BigEndian.PutUint16(buf[8:10], h.Height)
	binary.BigEndian.PutUint16(buf[10:12], h.FormatCode)

	return buf
}

// Unpack deserializes the header from the start of data. Only the length is
// checked here; Validate checks the values.
func (h *Header) Unpack(data []byte) error {
	if len(data) < PreambleSize {
		return fmt.Errorf("%w: got %d bytes, need %d", ffaberrors.ErrTooShort, len(data), PreambleSize)
	}

	h.Magic = binary.BigEndian.Uint16(data[0:2])
	h.Version = binary.BigEndian.Uint16(data[2:4])
	h.FrameCount = binary.BigEndian.Uint16(data[4:6])
	h.Width = binary.BigEndian.Uint16(data[6:8])
	h.Height = binary.BigEndian.Uint16(data[8:10])
	h.FormatCode = binary.BigEndian.Uint16(data[10:12])

	return nil
}

// Validate checks magic, version and format code, in that order.
func (h *Header) Validate() (Format, error) {
	if h.Magic != Magic {
		return FormatInvalid, fmt.Errorf("%w: got 0x%04X, expected 0x%04X", ffaberrors.ErrInvalidMagic, h.Magic, Magic)
	}
	if h.Version != Version {
		return FormatInvalid, fmt.Errorf("%w: got 0x%04X, expected 0x%04X", ffaberrors.ErrInvalidVersion, h.Version, Version)
	}
	return FormatFromCode(h.FormatCode)
}
