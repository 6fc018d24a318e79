package lsi

import "lsindex/permvector"

// Iter is a random-access iterator over ranks of the fitted permutation.
// Dereferencing with Pos yields the original-relation position at that
// rank. The past-the-end iterator has rank equal to the index size and
// signals "not found" for equality lookups. Iterators are invalidated by
// re-fitting the index.
type Iter struct {
	v    *permvector.Vector
	rank int
}

// Valid reports whether the iterator addresses a stored rank.
func (it Iter) Valid() bool { return it.rank < it.v.Size() }

// Pos returns the original-relation position at the current rank.
func (it Iter) Pos() uint64 { return it.v.At(it.rank).Pos }

// Rank returns the sorted rank this iterator addresses.
func (it Iter) Rank() int { return it.rank }

// Next returns the iterator advanced by one rank.
func (it Iter) Next() Iter { it.rank++; return it }

// Add returns the iterator advanced by n ranks (n may be negative).
func (it Iter) Add(n int) Iter { it.rank += n; return it }

// Sub returns the rank distance between two iterators.
func (it Iter) Sub(o Iter) int { return it.rank - o.rank }

// Eq is rank equality plus identity of the underlying permutation.
func (it Iter) Eq(o Iter) bool { return it.rank == o.rank && it.v == o.v }
