package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSource is a Source over a whole file, memory mapped where supported.
type FileSource struct {
	path    string
	data    []byte
	id      uint64
	mapping *mapping
}

// OpenFile maps path read-only. The mapping outlives Close for as long as a
// value obtained from Retain, such as a decoded bundle, still holds it.
func OpenFile(path string) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", abs)
	}

	data, unmap, err := mapFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", abs, err)
	}

	return &FileSource{
		path:    abs,
		data:    data,
		id:      Locate(abs, 0),
		mapping: newMapping(data, unmap),
	}, nil
}

func (f *FileSource) Bytes() []byte    { return f.data }
func (f *FileSource) Identity() uint64 { return f.id }
func (f *FileSource) Path() string     { return f.path }

// Retain returns the owner of the mapping, or nil once closed.
func (f *FileSource) Retain() any {
	if f.mapping == nil {
		return nil
	}
	return f.mapping
}

// Close drops the source's hold on the mapping. Bytes returns nil afterwards;
// the region is unmapped when no retained reference remains.
func (f *FileSource) Close() error {
	f.mapping = nil
	f.data = nil
	return nil
}
