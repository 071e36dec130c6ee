package gvdb

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/pkg/errors"
)

type item struct {
	key      string
	typ      string
	value    []byte // child data of the variant; nil for directories
	parent   *item
	children []*item

	index  uint32
	bucket uint32
	hash   uint32
}

// Builder assembles a GVariant database in memory.
type Builder struct {
	items map[string]*item
}

// NewBuilder creates an empty database builder.
func NewBuilder() *Builder {
	return &Builder{
		items: map[string]*item{},
	}
}

// Len returns the number of items, including implicit directories.
func (b *Builder) Len() int {
	return len(b.items)
}

// Insert stores data of the GVariant type typ under key. Directory items are
// created for every '/'-terminated prefix of key.
func (b *Builder) Insert(key, typ string, data []byte) error {
	if key == "" {
		return errors.New("empty key")
	}
	if typ == "" {
		return errors.Errorf("key %q has no value type", key)
	}
	if len(key) > math.MaxUint16 {
		return errors.Errorf("key %q is too long", key)
	}

	if it, ok := b.items[key]; ok && it.typ != "" {
		return errors.Errorf("key %q inserted twice", key)
	} else if ok {
		return errors.Errorf("key %q is already a directory", key)
	}

	it := &item{key: key, typ: typ, value: data}
	b.items[key] = it
	b.link(it)

	return nil
}

func (b *Builder) link(it *item) {
	key, ok := parentKey(it.key)
	if !ok {
		return
	}

	parent, ok := b.items[key]
	if !ok {
		parent = &item{key: key}
		b.items[key] = parent
		b.link(parent)
	}

	it.parent = parent
	parent.children = append(parent.children, it)
}

type fileBuilder struct {
	buf []byte
}

func (f *fileBuilder) allocate(align, size int) int {
	for len(f.buf)%align != 0 {
		f.buf = append(f.buf, 0)
	}
	offset := len(f.buf)
	f.buf = append(f.buf, make([]byte, size)...)
	return offset
}

func (f *fileBuilder) putUint32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(f.buf[offset:], v)
}

func (f *fileBuilder) putPointer(offset int, start, end int) {
	f.putUint32(offset, uint32(start))
	f.putUint32(offset+4, uint32(end))
}

// Bytes serializes the database. The output is deterministic for a given set
// of inserted keys.
func (b *Builder) Bytes() ([]byte, error) {
	items := make([]*item, 0, len(b.items))
	for _, it := range b.items {
		items = append(items, it)
	}

	nBuckets := uint32(len(items))
	for _, it := range items {
		it.hash = Hash(it.key)
		it.bucket = it.hash % nBuckets
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].bucket != items[j].bucket {
			return items[i].bucket < items[j].bucket
		}
		return items[i].key < items[j].key
	})

	for n, it := range items {
		it.index = uint32(n)
		children := it.children
		sort.Slice(children, func(i, j int) bool {
			return children[i].key < children[j].key
		})
	}

	f := fileBuilder{}
	f.allocate(1, headerSize)

	tableSize := 8 + 4*len(items) + hashItemSize*len(items)
	table := f.allocate(4, tableSize)

	f.putUint32(table, bloomShift<<27)
	f.putUint32(table+4, nBuckets)

	buckets := table + 8
	var next int
	for bucket := uint32(0); bucket < nBuckets; bucket++ {
		f.putUint32(buckets+4*int(bucket), uint32(next))
		for next < len(items) && items[next].bucket == bucket {
			next++
		}
	}

	hashItems := buckets + 4*len(items)

	for _, it := range items {
		at := hashItems + hashItemSize*int(it.index)

		parent := uint32(noParent)
		basename := it.key
		if it.parent != nil {
			parent = it.parent.index
			basename = it.key[len(it.parent.key):]
		}

		keyStart := f.allocate(1, len(basename))
		copy(f.buf[keyStart:], basename)

		var valueStart, valueEnd int
		var typ byte

		switch {
		case it.typ != "":
			v := variant(it.typ, it.value)
			valueStart = f.allocate(8, len(v))
			valueEnd = valueStart + len(v)
			copy(f.buf[valueStart:], v)
			typ = typeValue

		case len(it.children) > 0:
			valueStart = f.allocate(4, 4*len(it.children))
			valueEnd = valueStart + 4*len(it.children)
			for i, child := range it.children {
				f.putUint32(valueStart+4*i, child.index)
			}
			typ = typeList

		default:
			return nil, errors.Errorf("key %q has neither value nor children", it.key)
		}

		f.putUint32(at, it.hash)
		f.putUint32(at+4, parent)
		f.putUint32(at+8, uint32(keyStart))
		binary.LittleEndian.PutUint16(f.buf[at+12:], uint16(len(basename)))
		f.buf[at+14] = typ
		f.buf[at+15] = 0
		f.putPointer(at+16, valueStart, valueEnd)
	}

	if uint64(len(f.buf)) > math.MaxUint32 {
		return nil, errors.New("database exceeds 4 GiB")
	}

	f.putUint32(0, signature0)
	f.putUint32(4, signature1)
	f.putUint32(8, 0)  // version
	f.putUint32(12, 0) // options
	f.putPointer(16, table, table+tableSize)

	return f.buf, nil
}
