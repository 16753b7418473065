package source

import "runtime"

// Retainer is implemented by sources whose bytes live outside the Go heap.
// While the value returned by Retain is reachable, the slice returned by
// Bytes stays valid, even after the source has been closed.
type Retainer interface {
	Retain() any
}

// mapping owns a mapped region. The region is unmapped once the mapping
// becomes unreachable, so anything holding it may keep reading.
type mapping struct {
	data []byte
}

func newMapping(data []byte, unmap func([]byte) error) *mapping {
	m := &mapping{data: data}
	if unmap != nil {
		runtime.AddCleanup(m, func(data []byte) { _ = unmap(data) }, data)
	}
	return m
}
