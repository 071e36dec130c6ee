// Package gvdb reads and writes GVariant databases, the on-disk hash table
// format GLib uses for GResource bundles.
//
// Only what GResource needs is supported: a single root hash table without a
// bloom filter, '/'-separated keys linked to their parent directories, values
// stored as serialized variants and directory items stored as child lists.
package gvdb

import "strings"

const (
	signature0 = 0x72615647 // "GVar"
	signature1 = 0x746e6169 // "iant"

	headerSize   = 24
	hashItemSize = 24
	bloomShift   = 5

	noParent = 0xffffffff

	typeValue = 'v'
	typeList  = 'L'
	typeHash  = 'H'
)

// Hash returns the hash of key as computed by gvdb. Bytes are sign-extended
// the way the C implementation treats a signed char.
func Hash(key string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(key); i++ {
		h = h*33 + uint32(int32(int8(key[i])))
	}
	return h
}

// parentKey returns the directory key that contains key, e.g. "/a/" for
// "/a/b" and "/a/b/". The root "/" has no parent.
func parentKey(key string) (string, bool) {
	if len(key) <= 1 {
		return "", false
	}

	i := strings.LastIndexByte(key[:len(key)-1], '/')
	if i < 0 {
		return "", false
	}

	return key[:i+1], true
}

// variant serializes data of the given GVariant type into a variant ('v')
// value: the child data, a NUL byte, then the child's type string.
func variant(typ string, data []byte) []byte {
	v := make([]byte, 0, len(data)+1+len(typ))
	v = append(v, data...)
	v = append(v, 0)
	v = append(v, typ...)
	return v
}

// unvariant splits a serialized variant into its type string and child data.
func unvariant(v []byte) (typ string, data []byte, ok bool) {
	for i := len(v) - 1; i >= 0; i-- {
		if v[i] == 0 {
			return string(v[i+1:]), v[:i], i+1 < len(v)
		}
	}
	return "", nil, false
}
