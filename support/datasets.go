// Package support generates the datasets and probing sets used by tests
// and the benchmark harness. All generation is seeded and deterministic.
package support

import "math/rand"

// Sequential returns the keys start, start+1, ..., start+n-1 in order.
func Sequential(n int, start uint64) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = start + uint64(i)
	}
	return keys
}

// Shuffled returns a seeded random permutation of keys, leaving the input
// untouched.
func Shuffled(keys []uint64, seed int64) []uint64 {
	out := make([]uint64, len(keys))
	copy(out, keys)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Uniform returns n keys drawn uniformly from [0, max), or from the full
// uint64 range when max is 0. Duplicates occur naturally.
func Uniform(n int, max uint64, seed int64) []uint64 {
	r := rand.New(rand.NewSource(seed))
	keys := make([]uint64, n)
	for i := range keys {
		if max == 0 {
			keys[i] = r.Uint64()
		} else {
			keys[i] = r.Uint64() % max
		}
	}
	return keys
}

// SquaredDuplicates pushes i*i between 1 and 10 times for each i in
// [0, n), then shuffles. The quadratic key distribution stresses linear
// models; the duplicate runs stress tie handling.
func SquaredDuplicates(n int, seed int64) []uint64 {
	r := rand.New(rand.NewSource(seed))
	var keys []uint64
	for i := 0; i < n; i++ {
		k := uint64(i) * uint64(i)
		for c := r.Uint64()%10 + 1; c > 0; c-- {
			keys = append(keys, k)
		}
	}
	r.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}

// Gapped returns n distinct increasing keys with probabilistic holes:
// every key advances by at least one and keeps advancing while a draw
// lands below gapPercent, so roughly gapPercent/100 of the key space is
// missing. Shuffle before fitting for an unsorted relation.
func Gapped(n int, gapPercent int, seed int64) []uint64 {
	r := rand.New(rand.NewSource(seed))
	keys := make([]uint64, n)
	num := uint64(0)
	for i := range keys {
		num++
		for r.Intn(100) < gapPercent {
			num++
		}
		keys[i] = num
	}
	return keys
}

// Holdout splits keys into a fitted prefix of the given ratio and the
// held-out remainder.
func Holdout(keys []uint64, ratio float64) (fit, held []uint64) {
	cut := int(float64(len(keys)) * ratio)
	if cut > len(keys) {
		cut = len(keys)
	}
	return keys[:cut], keys[cut:]
}
