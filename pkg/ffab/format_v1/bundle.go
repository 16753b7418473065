package format_v1

import (
	"fmt"

	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
)

// Bundle is decoded FFAB metadata plus a view over the source bytes.
// It is immutable once Decode returns and safe for concurrent use.
type Bundle struct {
	Version    uint16
	FrameCount uint16
	Width      uint16
	Height     uint16
	Format     Format
	Index      []IndexEntry

	// data is the whole source; frames are sliced from it without copying.
	data []byte
	// keep holds whatever owns data when it lives outside the Go heap.
	keep any
}

// FrameData returns the payload of frame i. The returned slice aliases the
// source and must not be modified.
func (b *Bundle) FrameData(i int) ([]byte, error) {
	if i < 0 || i >= len(b.Index) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ffaberrors.ErrInvalidFrameIndex, i, len(b.Index))
	}
	e := b.Index[i]
	return b.data[e.Offset:e.End():e.End()], nil
}

// DataStart returns the offset of the frame-data region.
func (b *Bundle) DataStart() int {
	return DataStart(int(b.FrameCount))
}

// DataRegion returns the frame-data region of the source.
func (b *Bundle) DataRegion() []byte {
	return b.data[b.DataStart():]
}

// Size returns the length of the underlying source.
func (b *Bundle) Size() int {
	return len(b.data)
}

// ASTCFile returns frame i as a standalone .astc file. Unlike FrameData this
// copies the payload.
func (b *Bundle) ASTCFile(i int) ([]byte, error) {
	payload, err := b.FrameData(i)
	if err != nil {
		return nil, err
	}
	header := ASTCHeader(b.Width, b.Height, b.Format)
	out := make([]byte, 0, ASTCHeaderSize+len(payload))
	out = append(out, header[:]...)
	return append(out, payload...), nil
}
