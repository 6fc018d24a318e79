// Package competitors holds the conventional secondary indexes the
// learned index is benchmarked and cross-checked against. Each takes the
// same unsorted relation and answers position queries by key.
package competitors

// Index is the query surface shared by all competitors: the smallest
// original position holding key, if any.
type Index interface {
	Name() string
	ByteSize() int
	Lookup(key uint64) (pos uint64, ok bool)
}

// OrderedIndex additionally answers lower-bound queries: the position of
// the first occurrence of the smallest indexed key not less than key.
type OrderedIndex interface {
	Index
	LowerBound(key uint64) (pos uint64, ok bool)
}
