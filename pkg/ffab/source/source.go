// Package source provides the byte sources bundles are decoded from.
package source

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// Source is a read-only, randomly addressable run of bytes with a stable
// identity. Bytes must return the same slice for the life of the source and
// callers must not modify it.
type Source interface {
	Bytes() []byte
	Identity() uint64
}

// Locate derives the identity of the resource stored at offset inside
// container. Uses first 8 bytes of SHA256 as little-endian integer.
func Locate(container string, offset int64) uint64 {
	hash := sha256.Sum256([]byte(container + "@" + strconv.FormatInt(offset, 10)))
	return binary.LittleEndian.Uint64(hash[:8])
}

// MemorySource is a Source over an in-memory buffer.
type MemorySource struct {
	name string
	data []byte
	id   uint64
}

// Memory wraps data. Two memory sources with the same name share an identity.
func Memory(name string, data []byte) *MemorySource {
	return &MemorySource{
		name: name,
		data: data,
		id:   Locate("mem:"+name, 0),
	}
}

func (m *MemorySource) Bytes() []byte    { return m.data }
func (m *MemorySource) Identity() uint64 { return m.id }
func (m *MemorySource) Name() string     { return m.name }
