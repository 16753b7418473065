package source

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
)

// Archive is a tar file whose regular-file members are served as sources.
// Uncompressed archives stay mapped and members are zero-copy views into the
// mapping; gzip and bzip2 archives are inflated into memory once and the
// compressed file is released straight away.
type Archive struct {
	path        string
	id          uint64
	file        *FileSource
	keep        any
	data        []byte
	compression Compression
	members     map[string]*MemberSource
	order       []string
}

// MemberSource is one archive member. Its identity is derived from the
// member's data offset in the archive, so every handle to the same member
// shares it.
type MemberSource struct {
	name   string
	offset int64
	data   []byte
	id     uint64
	keep   any
}

func (m *MemberSource) Bytes() []byte    { return m.data }
func (m *MemberSource) Identity() uint64 { return m.id }
func (m *MemberSource) Name() string     { return m.name }
func (m *MemberSource) Offset() int64    { return m.offset }

// Retain returns the archive mapping backing the member, or nil when the
// member lives in inflated memory.
func (m *MemberSource) Retain() any { return m.keep }

// OpenArchive maps a tar file, inflating it if compressed, and indexes its
// members.
func OpenArchive(path string, logger hclog.Logger) (*Archive, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	file, err := OpenFile(path)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		path:        file.Path(),
		id:          file.Identity(),
		compression: DetectCompression(file.Bytes()),
		members:     make(map[string]*MemberSource),
	}

	if a.compression == CompressionNone {
		a.file = file
		a.keep = file.Retain()
		a.data = file.Bytes()
	} else {
		logger.Debug("🗜️ Inflating archive", "path", a.path, "compression", a.compression.String())
		data, err := Decompress(a.compression, file.Bytes())
		file.Close()
		if err != nil {
			return nil, err
		}
		a.data = data
	}

	if err := a.scan(logger); err != nil {
		a.Close()
		return nil, err
	}

	logger.Debug("🗃️ Indexed archive", "path", a.path, "members", len(a.order), "compression", a.compression.String())
	return a, nil
}

func (a *Archive) scan(logger hclog.Logger) error {
	data := a.data
	br := bytes.NewReader(data)
	tr := tar.NewReader(br)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		// After Next the reader sits on the first byte of the member data.
		offset := int64(len(data)) - int64(br.Len())
		if hdr.Size < 0 || offset+hdr.Size > int64(len(data)) {
			return fmt.Errorf("tar member %s overruns archive", hdr.Name)
		}

		m := &MemberSource{
			name:   hdr.Name,
			offset: offset,
			data:   data[offset : offset+hdr.Size : offset+hdr.Size],
			id:     Locate(a.path, offset),
			keep:   a.keep,
		}
		if _, dup := a.members[hdr.Name]; !dup {
			a.order = append(a.order, hdr.Name)
		}
		// Later entries replace earlier ones, as with tar extraction.
		a.members[hdr.Name] = m

		logger.Trace("📂 Archive member", "name", hdr.Name, "offset", offset, "size", hdr.Size)
	}
}

// Member returns a handle for the named member.
func (a *Archive) Member(name string) (*MemberSource, error) {
	m, ok := a.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ffaberrors.ErrNoMember, name)
	}
	return &MemberSource{name: m.name, offset: m.offset, data: m.data, id: m.id, keep: m.keep}, nil
}

// Members lists member names in archive order.
func (a *Archive) Members() []string {
	return append([]string(nil), a.order...)
}

// Identity returns the identity of the archive file itself.
func (a *Archive) Identity() uint64 {
	return a.id
}

// Compression reports how the archive file was wrapped.
func (a *Archive) Compression() Compression {
	return a.compression
}

// Close drops the archive's hold on its mapping. Member handles and bundles
// decoded from them keep the mapping alive while they are reachable.
func (a *Archive) Close() error {
	a.keep = nil
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}
