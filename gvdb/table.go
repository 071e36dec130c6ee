package gvdb

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrInvalid is returned for data that is not a well-formed GVariant
	// database.
	ErrInvalid = errors.New("invalid gvdb data")
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("key not found")
)

type hashItem struct {
	hash     uint32
	parent   uint32
	keyStart uint32
	keySize  uint16
	typ      byte
	start    uint32
	end      uint32
}

// Table is a read-only view over the root hash table of a database.
type Table struct {
	data    []byte
	buckets []uint32
	items   []hashItem
}

// Open parses the header and root hash table of data. The returned table
// references data without copying it.
func Open(data []byte) (*Table, error) {
	if len(data) < headerSize {
		return nil, errors.Wrap(ErrInvalid, "short header")
	}

	le := binary.LittleEndian
	if le.Uint32(data[0:]) != signature0 || le.Uint32(data[4:]) != signature1 {
		return nil, errors.Wrap(ErrInvalid, "bad signature")
	}

	start, end := le.Uint32(data[16:]), le.Uint32(data[20:])
	table, err := slice(data, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "root table")
	}
	if start%4 != 0 || len(table) < 8 {
		return nil, errors.Wrap(ErrInvalid, "misaligned or truncated root table")
	}

	nBloom := uint64(le.Uint32(table) & (1<<27 - 1))
	nBuckets := uint64(le.Uint32(table[4:]))

	rest := uint64(len(table) - 8)
	if (nBloom+nBuckets)*4 > rest {
		return nil, errors.Wrap(ErrInvalid, "truncated hash table")
	}
	rest -= (nBloom + nBuckets) * 4
	if rest%hashItemSize != 0 {
		return nil, errors.Wrap(ErrInvalid, "hash items are not a whole number")
	}

	t := &Table{
		data:    data,
		buckets: make([]uint32, nBuckets),
		items:   make([]hashItem, rest/hashItemSize),
	}

	off := 8 + 4*int(nBloom)
	for i := range t.buckets {
		t.buckets[i] = le.Uint32(table[off+4*i:])
	}

	off += 4 * int(nBuckets)
	for i := range t.items {
		b := table[off+hashItemSize*i:]
		t.items[i] = hashItem{
			hash:     le.Uint32(b[0:]),
			parent:   le.Uint32(b[4:]),
			keyStart: le.Uint32(b[8:]),
			keySize:  le.Uint16(b[12:]),
			typ:      b[14],
			start:    le.Uint32(b[16:]),
			end:      le.Uint32(b[20:]),
		}
	}

	return t, nil
}

func slice(data []byte, start, end uint32) ([]byte, error) {
	if start > end || uint64(end) > uint64(len(data)) {
		return nil, errors.Wrapf(ErrInvalid, "pointer %d..%d out of range", start, end)
	}
	return data[start:end], nil
}

// Len returns the number of items in the table.
func (t *Table) Len() int {
	return len(t.items)
}

func (t *Table) basename(it hashItem) (string, error) {
	b, err := slice(t.data, it.keyStart, it.keyStart+uint32(it.keySize))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// fullKey resolves the key of item i by walking its parents.
func (t *Table) fullKey(i uint32) (string, error) {
	var key string

	for depth := 0; i != noParent; depth++ {
		if depth > len(t.items) || int(i) >= len(t.items) {
			return "", errors.Wrap(ErrInvalid, "broken parent chain")
		}

		name, err := t.basename(t.items[i])
		if err != nil {
			return "", err
		}

		key = name + key
		i = t.items[i].parent
	}

	return key, nil
}

// Keys returns the full key of every item, sorted.
func (t *Table) Keys() ([]string, error) {
	keys := make([]string, len(t.items))
	for i := range t.items {
		k, err := t.fullKey(uint32(i))
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}

	sort.Strings(keys)
	return keys, nil
}

func (t *Table) lookup(key string, typ byte) (hashItem, bool) {
	if len(t.buckets) == 0 || len(t.items) == 0 {
		return hashItem{}, false
	}

	hash := Hash(key)
	bucket := hash % uint32(len(t.buckets))

	first := t.buckets[bucket]
	last := uint32(len(t.items))
	if int(bucket) < len(t.buckets)-1 && t.buckets[bucket+1] < last {
		last = t.buckets[bucket+1]
	}

	for i := first; i < last; i++ {
		it := t.items[i]
		if it.hash != hash || it.typ != typ {
			continue
		}
		if k, err := t.fullKey(i); err == nil && k == key {
			return it, true
		}
	}

	return hashItem{}, false
}

// Lookup returns the GVariant type and serialized data stored under key.
func (t *Table) Lookup(key string) (typ string, data []byte, err error) {
	it, ok := t.lookup(key, typeValue)
	if !ok {
		return "", nil, errors.Wrapf(ErrNotFound, "%q", key)
	}

	v, err := slice(t.data, it.start, it.end)
	if err != nil {
		return "", nil, err
	}

	typ, data, ok = unvariant(v)
	if !ok {
		return "", nil, errors.Wrapf(ErrInvalid, "value of %q is not a variant", key)
	}

	return typ, data, nil
}

// List returns the names of the children of the directory key, relative to
// key and sorted.
func (t *Table) List(key string) ([]string, error) {
	it, ok := t.lookup(key, typeList)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "directory %q", key)
	}

	b, err := slice(t.data, it.start, it.end)
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, errors.Wrapf(ErrInvalid, "list of %q is misaligned", key)
	}

	names := make([]string, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		child := binary.LittleEndian.Uint32(b[i:])
		if int(child) >= len(t.items) {
			return nil, errors.Wrapf(ErrInvalid, "list of %q points past the table", key)
		}

		name, err := t.basename(t.items[child])
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}
