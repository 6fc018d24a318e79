package competitors

import (
	"sort"
	"unsafe"

	"golang.org/x/exp/slices"
)

// Sorted is the baseline: a fully sorted (key, position) array probed by
// binary search. No model, no error window, two machine words per entry.
type Sorted struct {
	keys []uint64
	pos  []uint64
}

type sortedEntry struct {
	key uint64
	pos uint64
}

// NewSorted builds the sorted baseline over data.
func NewSorted(data []uint64) *Sorted {
	entries := make([]sortedEntry, len(data))
	for i, k := range data {
		entries[i] = sortedEntry{key: k, pos: uint64(i)}
	}
	slices.SortStableFunc(entries, func(a, b sortedEntry) bool {
		return a.key < b.key
	})

	s := &Sorted{
		keys: make([]uint64, len(entries)),
		pos:  make([]uint64, len(entries)),
	}
	for i, e := range entries {
		s.keys[i] = e.key
		s.pos[i] = e.pos
	}
	return s
}

func (s *Sorted) lowerBound(key uint64) int {
	return sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= key })
}

func (s *Sorted) Lookup(key uint64) (uint64, bool) {
	i := s.lowerBound(key)
	if i < len(s.keys) && s.keys[i] == key {
		return s.pos[i], true
	}
	return 0, false
}

func (s *Sorted) LowerBound(key uint64) (uint64, bool) {
	i := s.lowerBound(key)
	if i < len(s.keys) {
		return s.pos[i], true
	}
	return 0, false
}

// Positions returns every position holding key, in insertion order.
func (s *Sorted) Positions(key uint64) []uint64 {
	var out []uint64
	for i := s.lowerBound(key); i < len(s.keys) && s.keys[i] == key; i++ {
		out = append(out, s.pos[i])
	}
	return out
}

func (s *Sorted) ByteSize() int {
	return int(unsafe.Sizeof(*s)) + 8*len(s.keys) + 8*len(s.pos)
}

func (s *Sorted) Name() string { return "sorted-array" }
