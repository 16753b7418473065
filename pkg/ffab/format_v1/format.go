package format_v1

import (
	"fmt"

	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
)

// Format is an ASTC block size, stored in the bundle as a 16-bit code.
type Format uint16

const (
	FormatInvalid Format = 0x0000

	ASTC4x4   Format = 0x0001
	ASTC5x4   Format = 0x0002
	ASTC5x5   Format = 0x0003
	ASTC6x5   Format = 0x0004
	ASTC6x6   Format = 0x0005
	ASTC8x5   Format = 0x0006
	ASTC8x6   Format = 0x0007
	ASTC8x8   Format = 0x0008
	ASTC10x5  Format = 0x0009
	ASTC10x6  Format = 0x000A
	ASTC10x8  Format = 0x000B
	ASTC10x10 Format = 0x000C
	ASTC12x10 Format = 0x000D
	ASTC12x12 Format = 0x000E
)

type blockSize struct {
	name string
	x, y uint8
}

var blockSizes = map[Format]blockSize{
	ASTC4x4:   {"4x4", 4, 4},
	ASTC5x4:   {"5x4", 5, 4},
	ASTC5x5:   {"5x5", 5, 5},
	ASTC6x5:   {"6x5", 6, 5},
	ASTC6x6:   {"6x6", 6, 6},
	ASTC8x5:   {"8x5", 8, 5},
	ASTC8x6:   {"8x6", 8, 6},
	ASTC8x8:   {"8x8", 8, 8},
	ASTC10x5:  {"10x5", 10, 5},
	ASTC10x6:  {"10x6", 10, 6},
	ASTC10x8:  {"10x8", 10, 8},
	ASTC10x10: {"10x10", 10, 10},
	ASTC12x10: {"12x10", 12, 10},
	ASTC12x12: {"12x12", 12, 12},
}

// Formats lists every supported format in code order.
var Formats = []Format{
	ASTC4x4, ASTC5x4, ASTC5x5, ASTC6x5, ASTC6x6, ASTC8x5, ASTC8x6,
	ASTC8x8, ASTC10x5, ASTC10x6, ASTC10x8, ASTC10x10, ASTC12x10, ASTC12x12,
}

// FormatFromCode validates a raw format code.
func FormatFromCode(code uint16) (Format, error) {
	f := Format(code)
	if !f.Valid() {
		return FormatInvalid, fmt.Errorf("%w: 0x%04X", ffaberrors.ErrUnknownFormat, code)
	}
	return f, nil
}

// ParseFormat maps a block size name such as "6x6" to its Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if blockSizes[f].name == name {
			return f, nil
		}
	}
	return FormatInvalid, fmt.Errorf("%w: %q", ffaberrors.ErrUnknownFormat, name)
}

// Valid reports whether f is one of the 14 known block sizes.
func (f Format) Valid() bool {
	_, ok := blockSizes[f]
	return ok
}

// Code returns the on-disk format code.
func (f Format) Code() uint16 {
	return uint16(f)
}

// BlockSize returns the block footprint in texels.
func (f Format) BlockSize() (x, y uint8) {
	b := blockSizes[f]
	return b.x, b.y
}

func (f Format) String() string {
	if b, ok := blockSizes[f]; ok {
		return b.name
	}
	return fmt.Sprintf("unknown(0x%04X)", uint16(f))
}

// ASTCHeader regenerates the 16-byte .astc file header that the encoder strips
// from each payload. Dimensions are 24-bit little-endian; z is always 1.
func ASTCHeader(width, height uint16, f Format) [ASTCHeaderSize]byte {
	var h [ASTCHeaderSize]byte
	bx, by := f.BlockSize()

	copy(h[0:4], ASTCMagic[:])
	h[4] = bx
	h[5] = by
	h[6] = 1
	putUint24(h[7:10], uint32(width))
	putUint24(h[10:13], uint32(height))
	putUint24(h[13:16], 1)
	return h
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
