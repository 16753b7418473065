package format_v1

// Core format constants that never change

const (
	// Magic is the first two bytes of every bundle
	Magic = 0xFFAB

	// Version is the only container version this package reads
	Version = 0x0001

	// Fixed sizes - part of the format specification
	HeaderSize     = 4  // magic (2) + version (2)
	MetaSize       = 8  // frame count, width, height, format code
	PreambleSize   = 12 // HeaderSize + MetaSize
	IndexEntrySize = 12 // offset (8) + length (4)
	ASTCHeaderSize = 16 // stripped from every payload, regenerated on export
)

// ASTCMagic starts every standalone .astc file.
var ASTCMagic = [4]byte{0x13, 0xAB, 0xA1, 0x5C}

// DataStart returns the offset of the frame-data region for a bundle with
// frameCount frames.
func DataStart(frameCount int) int {
	return PreambleSize + frameCount*IndexEntrySize
}
