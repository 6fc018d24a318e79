package permvector

// Iter is a random-access iterator over ranks [0, Size()). It is a value
// type; arithmetic returns new iterators. Dereference with Entry().
type Iter struct {
	v    *Vector
	rank int
}

// Begin returns the iterator at rank 0.
func (v *Vector) Begin() Iter { return Iter{v: v, rank: 0} }

// End returns the past-the-end iterator.
func (v *Vector) End() Iter { return Iter{v: v, rank: v.Size()} }

// Rank returns the rank this iterator addresses.
func (it Iter) Rank() int { return it.rank }

// Valid reports whether the iterator addresses a stored rank.
func (it Iter) Valid() bool { return it.rank < it.v.Size() }

// Entry dereferences the iterator.
func (it Iter) Entry() Entry { return it.v.At(it.rank) }

// Next returns the iterator advanced by one rank.
func (it Iter) Next() Iter { it.rank++; return it }

// Add returns the iterator advanced by n ranks (n may be negative).
func (it Iter) Add(n int) Iter { it.rank += n; return it }

// Sub returns the rank distance between two iterators over one vector.
func (it Iter) Sub(o Iter) int { return it.rank - o.rank }

// Eq is rank equality plus identity of the underlying vector.
func (it Iter) Eq(o Iter) bool { return it.rank == o.rank && it.v == o.v }
