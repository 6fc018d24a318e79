// Package model defines the learned CDF contract the index trains and
// queries, plus two reference implementations.
package model

// KeySource is a random-access view of the sorted key sequence used for
// training. Implementations must present keys in ascending order.
type KeySource interface {
	Len() int
	At(i int) uint64
}

// Model approximates the CDF of a sorted key multiset. Train is called
// exactly once per fit with the sorted keys; Predict maps a key to an
// approximate rank in [0, Len). Predictions need not be exact; the index
// measures the worst error after training and searches around it.
type Model interface {
	Train(keys KeySource)
	Predict(key uint64) uint64
	ByteSize() int
	Name() string
}

// clampRank converts a raw prediction to a rank in [0, n), saturating on
// both ends. n == 0 always yields 0.
func clampRank(p float64, n uint64) uint64 {
	if n == 0 || !(p > 0) {
		return 0
	}
	r := uint64(p)
	if r >= n {
		return n - 1
	}
	return r
}
