// Package gresource builds and reads GResource bundles, the resource archives
// GIO loads with g_resource_new_from_data.
package gresource

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"os"

	"github.com/diamondburned/gtkicons/gvdb"
	"github.com/pkg/errors"
)

// FlagCompressed marks a zlib-compressed entry.
const FlagCompressed = 1 << 0

// valueType is the GVariant type of every entry: uncompressed size, flags and
// the stored bytes.
const valueType = "(uuay)"

// FileData is a single file to be stored in a bundle.
type FileData struct {
	// Path is the absolute resource path, e.g. /org/example/icons/a.svg.
	Path string
	// Data is the file content before preprocessing.
	Data []byte
	// Compressed stores the content zlib-compressed.
	Compressed bool
	// StripBlanks runs the content through the xml-stripblanks
	// preprocessor.
	StripBlanks bool
}

// NewFileData creates a FileData from in-memory content.
func NewFileData(path string, data []byte, compressed, stripBlanks bool) FileData {
	return FileData{
		Path:        path,
		Data:        data,
		Compressed:  compressed,
		StripBlanks: stripBlanks,
	}
}

// FromFile creates a FileData by reading file from disk.
func FromFile(path, file string, compressed, stripBlanks bool) (FileData, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return FileData{}, errors.Wrap(err, "Failed to read resource file")
	}
	return NewFileData(path, b, compressed, stripBlanks), nil
}

// value encodes f into the serialized (uuay) tuple.
func (f FileData) value() ([]byte, error) {
	content := f.Data

	if f.StripBlanks {
		b, err := StripBlanks(content)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to preprocess %s", f.Path)
		}
		content = b
	}

	size := len(content)
	var flags uint32

	if f.Compressed {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(content); err != nil {
			return nil, errors.Wrapf(err, "Failed to compress %s", f.Path)
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrapf(err, "Failed to compress %s", f.Path)
		}
		content = buf.Bytes()
		flags |= FlagCompressed
	} else {
		// Uncompressed data carries a trailing NUL that is not counted in
		// the size, so it can be used as a C string in place.
		content = append(content[:len(content):len(content)], 0)
	}

	v := make([]byte, 8, 8+len(content))
	binary.LittleEndian.PutUint32(v[0:], uint32(size))
	binary.LittleEndian.PutUint32(v[4:], flags)
	v = append(v, content...)

	return v, nil
}

// Build serializes files into a GResource bundle. Paths must be unique.
func Build(files []FileData) ([]byte, error) {
	b := gvdb.NewBuilder()

	for _, f := range files {
		if len(f.Path) == 0 || f.Path[0] != '/' {
			return nil, errors.Errorf("resource path %q is not absolute", f.Path)
		}

		v, err := f.value()
		if err != nil {
			return nil, err
		}

		if err := b.Insert(f.Path, valueType, v); err != nil {
			return nil, errors.Wrap(err, "Failed to add resource")
		}
	}

	data, err := b.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build resource bundle")
	}

	return data, nil
}

// Resource is a parsed GResource bundle.
type Resource struct {
	table *gvdb.Table
}

// Read parses a GResource bundle.
func Read(data []byte) (*Resource, error) {
	t, err := gvdb.Open(data)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open resource bundle")
	}
	return &Resource{table: t}, nil
}

// Files returns the paths of all files in the bundle, sorted.
func (r *Resource) Files() ([]string, error) {
	keys, err := r.table.Keys()
	if err != nil {
		return nil, err
	}

	files := keys[:0]
	for _, k := range keys {
		if len(k) > 0 && k[len(k)-1] != '/' {
			files = append(files, k)
		}
	}

	return files, nil
}

// Children returns the entries directly below the directory dir. Directories
// end with a slash.
func (r *Resource) Children(dir string) ([]string, error) {
	return r.table.List(dir)
}

// Entry describes a stored file.
type Entry struct {
	Path       string
	Size       int // uncompressed
	StoredSize int
	Flags      uint32
}

// Stat returns the metadata of the file at path.
func (r *Resource) Stat(path string) (Entry, error) {
	e, _, err := r.entry(path)
	return e, err
}

func (r *Resource) entry(path string) (Entry, []byte, error) {
	typ, v, err := r.table.Lookup(path)
	if err != nil {
		return Entry{}, nil, err
	}
	if typ != valueType {
		return Entry{}, nil, errors.Errorf("%s has type %s, not %s", path, typ, valueType)
	}
	if len(v) < 8 {
		return Entry{}, nil, errors.Wrapf(gvdb.ErrInvalid, "%s has a truncated value", path)
	}

	e := Entry{
		Path:       path,
		Size:       int(binary.LittleEndian.Uint32(v[0:])),
		Flags:      binary.LittleEndian.Uint32(v[4:]),
		StoredSize: len(v) - 8,
	}

	return e, v[8:], nil
}

// Open returns the uncompressed content of the file at path.
func (r *Resource) Open(path string) ([]byte, error) {
	e, content, err := r.entry(path)
	if err != nil {
		return nil, err
	}

	if e.Flags&FlagCompressed == 0 {
		if len(content) < e.Size {
			return nil, errors.Wrapf(gvdb.ErrInvalid, "%s is shorter than its size", path)
		}
		return content[:e.Size], nil
	}

	z, err := zlib.NewReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decompress %s", path)
	}
	defer z.Close()

	b, err := io.ReadAll(z)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decompress %s", path)
	}
	if len(b) != e.Size {
		return nil, errors.Wrapf(gvdb.ErrInvalid, "%s decompressed to %d bytes, expected %d", path, len(b), e.Size)
	}

	return b, nil
}
