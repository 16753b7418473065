package errors

import (
	"errors"
	"fmt"
)

var (
	// Format errors 📦
	ErrFormat           = errors.New("❌ malformed FFAB bundle")
	ErrTooShort         = fmt.Errorf("%w: source shorter than header", ErrFormat)
	ErrInvalidMagic     = fmt.Errorf("%w: invalid magic", ErrFormat)
	ErrInvalidVersion   = fmt.Errorf("%w: unsupported version", ErrFormat)
	ErrUnknownFormat    = fmt.Errorf("%w: unknown ASTC format code", ErrFormat)
	ErrIndexTruncated   = fmt.Errorf("%w: index table truncated", ErrFormat)
	ErrFrameOutOfBounds = fmt.Errorf("%w: frame range outside data region", ErrFormat)
	ErrFrameOverlap     = fmt.Errorf("%w: frame ranges overlap or go backwards", ErrFormat)

	// Lookup errors 🔍
	ErrIndex             = errors.New("❌ frame index error")
	ErrInvalidFrameIndex = fmt.Errorf("%w: index out of range", ErrIndex)

	// Playback errors ⏱️
	ErrClockInvariant = errors.New("❌ negative running time after pause accounting")

	// Resource errors 🗃️
	ErrDecodeFailed = errors.New("❌ bundle decode failed")
	ErrNoMember     = errors.New("❌ archive member not found")
)
