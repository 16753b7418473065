package format_v1

import (
	"encoding/binary"
	"fmt"
)

// IndexEntry locates one frame payload. Offset is absolute within the bundle.
type IndexEntry struct {
	Offset uint64 `json:"offset" yaml:"offset"`
	Length uint32 `json:"length" yaml:"length"`
}

// End returns the first byte past the payload.
func (e IndexEntry) End() uint64 {
	return e.Offset + uint64(e.Length)
}

// Pack serializes the entry to exactly 12 bytes
func (e IndexEntry) Pack() []byte {
	buf := make([]byte, IndexEntrySize)
	binary.BigEndian.PutUint64(buf[0:8], e.Offset)
	binary.BigEndian.PutUint32(buf[8:12], e.Length)
	return buf
}

// UnpackIndexEntry deserializes an entry from 12 bytes
func UnpackIndexEntry(data []byte) (IndexEntry, error) {
	if len(data) != IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("invalid index entry size: expected %d, got %d", IndexEntrySize, len(data))
	}
	return IndexEntry{
		Offset: binary.BigEndian.Uint64(data[0:8]),
		Length: binary.BigEndian.Uint32(data[8:12]),
	}, nil
}
