package competitors

import "unsafe"

// Hash is the equality-only competitor: a plain map from key to its
// positions in insertion order. No ordering, so no lower-bound surface.
type Hash struct {
	m map[uint64][]uint64
	n int
}

// NewHash builds the hash competitor over data.
func NewHash(data []uint64) *Hash {
	m := make(map[uint64][]uint64)
	for i, k := range data {
		m[k] = append(m[k], uint64(i))
	}
	return &Hash{m: m, n: len(data)}
}

func (h *Hash) Lookup(key uint64) (uint64, bool) {
	ps, ok := h.m[key]
	if !ok {
		return 0, false
	}
	return ps[0], true
}

// Positions returns every position holding key, in insertion order.
func (h *Hash) Positions(key uint64) []uint64 { return h.m[key] }

func (h *Hash) ByteSize() int {
	// Rough estimate: bucket + slice header per distinct key plus the
	// stored positions.
	return int(unsafe.Sizeof(*h)) + len(h.m)*48 + 8*h.n
}

func (h *Hash) Name() string { return "hash" }
