package competitors

import (
	"encoding/binary"
	"unsafe"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Radix indexes the relation with an immutable radix tree over big-endian
// key bytes, so byte order matches numeric order and lower-bound queries
// come from the tree's SeekLowerBound.
type Radix struct {
	tree *iradix.Tree
	n    int
}

func radixKey(key uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], key)
	return b[:]
}

// NewRadix builds the radix-tree competitor over data. Duplicate keys
// share one leaf carrying their positions in insertion order.
func NewRadix(data []uint64) *Radix {
	txn := iradix.New().Txn()
	for i, k := range data {
		kb := radixKey(k)
		if v, ok := txn.Get(kb); ok {
			txn.Insert(kb, append(v.([]uint64), uint64(i)))
		} else {
			txn.Insert(kb, []uint64{uint64(i)})
		}
	}
	return &Radix{tree: txn.Commit(), n: len(data)}
}

func (r *Radix) Lookup(key uint64) (uint64, bool) {
	v, ok := r.tree.Get(radixKey(key))
	if !ok {
		return 0, false
	}
	return v.([]uint64)[0], true
}

func (r *Radix) LowerBound(key uint64) (uint64, bool) {
	it := r.tree.Root().Iterator()
	it.SeekLowerBound(radixKey(key))
	_, v, ok := it.Next()
	if !ok {
		return 0, false
	}
	return v.([]uint64)[0], true
}

// Positions returns every position holding key, in insertion order.
func (r *Radix) Positions(key uint64) []uint64 {
	v, ok := r.tree.Get(radixKey(key))
	if !ok {
		return nil
	}
	return v.([]uint64)
}

func (r *Radix) ByteSize() int {
	// The tree doesn't expose its allocation; estimate per-leaf node and
	// slice overhead plus the stored positions.
	return int(unsafe.Sizeof(*r)) + r.tree.Len()*96 + 8*r.n
}

func (r *Radix) Name() string { return "radix" }
