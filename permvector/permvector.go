// Package permvector maps sorted rank to original relation position, with
// an optional fingerprint lane, both bit-packed into one byte buffer.
package permvector

import (
	"bytes"
	"unsafe"

	"lsindex/bitpack"
	"lsindex/fingerprint"
)

// Pair couples a key with its position in the original relation. Build
// consumes pairs sorted ascending by key, ties in ascending Pos order.
type Pair struct {
	Key uint64
	Pos uint64
}

// Keys is a read-only view of the key component of a sorted pair buffer.
// It satisfies the model training contract without copying the keys out.
type Keys []Pair

func (k Keys) Len() int        { return len(k) }
func (k Keys) At(i int) uint64 { return k[i].Key }

// Entry is the stored value at one rank.
type Entry struct {
	Pos   uint64
	Print uint64
}

// Vector is the built permutation store. Buffer layout:
// [offsets lane][fingerprint lane][slop]. A nil *Vector acts empty.
type Vector struct {
	data    []byte
	offsets bitpack.Reader
	prints  bitpack.Reader
	fp      fingerprint.Fingerprinter
	n       int
}

// Build packs the positions of the sorted pairs, and their fingerprints
// when fp is enabled. Lane widths are the minimum for the stored values.
func Build(sorted []Pair, fp fingerprint.Fingerprinter) *Vector {
	n := len(sorted)

	offsets := make([]uint64, n)
	var prints []uint64
	if fp.Enabled() {
		prints = make([]uint64, n)
	}
	for i, p := range sorted {
		offsets[i] = p.Pos
		if fp.Enabled() {
			prints[i] = fp.Fingerprint(p.Key)
		}
	}

	offWidth := bitpack.MaxWidth(offsets)
	buf := bitpack.Append(nil, offsets, offWidth)

	printsBase := len(buf)
	var printsWidth uint8
	if fp.Enabled() {
		printsWidth = bitpack.MaxWidth(prints)
		buf = bitpack.Append(buf, prints, printsWidth)
	}
	buf = bitpack.PutSlop(buf)

	v := &Vector{data: buf, fp: fp, n: n}
	v.offsets = bitpack.NewReader(buf, 0, offWidth)
	if fp.Enabled() {
		v.prints = bitpack.NewReader(buf, printsBase, printsWidth)
	}
	return v
}

// Size returns the number of stored ranks.
func (v *Vector) Size() int {
	if v == nil {
		return 0
	}
	return v.n
}

// At returns the entry at rank i. i must be in [0, Size()).
func (v *Vector) At(i int) Entry {
	e := Entry{Pos: v.offsets.Get(i)}
	if v.fp.Enabled() {
		e.Print = v.prints.Get(i)
	}
	return e
}

// Fingerprint returns the query-side fingerprint for key.
func (v *Vector) Fingerprint(key uint64) uint64 {
	return v.fp.Fingerprint(key)
}

// Test reports whether key matches the fingerprint bits stored in e.
func (v *Vector) Test(key uint64, e Entry) bool {
	return v.fp.Test(key, e.Print)
}

// FingerprintEnabled reports whether the fingerprint lane exists.
func (v *Vector) FingerprintEnabled() bool {
	if v == nil {
		return false
	}
	return v.fp.Enabled()
}

// ByteSize returns the resident memory of the vector in bytes.
func (v *Vector) ByteSize() int {
	if v == nil {
		return 0
	}
	return int(unsafe.Sizeof(*v)) + len(v.data)
}

// Equal is byte-exact buffer equality plus size equality.
func (v *Vector) Equal(o *Vector) bool {
	if v == nil || o == nil {
		return v.Size() == o.Size()
	}
	return v.n == o.n && bytes.Equal(v.data, o.data)
}
