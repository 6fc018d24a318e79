// Package lsi implements a learned secondary index: equality and
// lower-bound lookups over an unsorted uint64 relation, served by a
// learned CDF model and a bit-packed rank-to-position permutation.
//
// The index never copies the relation. Callers pass the same slice, in
// the same order, to Fit and to every lookup, and keep it alive and
// unmodified for the life of the index.
package lsi

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"lsindex/fingerprint"
	"lsindex/model"
	"lsindex/permvector"
	"lsindex/utils"
)

type config struct {
	fpWidth     uint8
	forceLinear bool
}

// Option configures index construction.
type Option func(*config)

// WithFingerprintWidth stores width-bit key fingerprints beside each rank
// and switches lookups to the fingerprint-filtered linear scan. Width 0
// (the default) disables the fingerprint lane.
func WithFingerprintWidth(width uint8) Option {
	return func(c *config) { c.fpWidth = width }
}

// WithLinearSearch forces the linear scan even without fingerprints.
// Useful when the model error is small enough that a scan beats the
// branchy binary search.
func WithLinearSearch() Option {
	return func(c *config) { c.forceLinear = true }
}

// Index is the learned secondary index. The zero state (after New) is an
// empty index; populate it with exactly one Fit, then query read-only.
//
// After Fit the index is logically immutable and safe for concurrent
// readers. The two debug counters are atomics so that the read-only
// lookup stays race-free while writing telemetry.
type Index struct {
	pv          *permvector.Vector
	model       model.Model
	runs        *keyRuns
	maxErr      uint64
	fp          fingerprint.Fingerprinter
	forceLinear bool

	baseAccesses   atomic.Uint64
	falsePositives atomic.Uint64
}

// New constructs an empty index around the given model. Configuration
// errors (fingerprint width out of range, missing model) surface here.
func New(m model.Model, opts ...Option) (*Index, error) {
	if m == nil {
		return nil, fmt.Errorf("lsi: model must not be nil")
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	fp, err := fingerprint.New(c.fpWidth)
	if err != nil {
		return nil, fmt.Errorf("lsi: %w", err)
	}
	return &Index{model: m, fp: fp, forceLinear: c.forceLinear}, nil
}

// Fit builds the index over data. Any previous fit is replaced and its
// iterators are invalidated. Uses O(N) auxiliary memory for the sorted
// (key, position) buffer; O(N log N) time.
func (ix *Index) Fit(data []uint64) {
	pairs := make([]permvector.Pair, len(data))
	for i, k := range data {
		pairs[i] = permvector.Pair{Key: k, Pos: uint64(i)}
	}
	// Stable: equal keys keep ascending original-position order, which is
	// what makes duplicate enumeration deterministic.
	slices.SortStableFunc(pairs, func(a, b permvector.Pair) bool {
		return a.Key < b.Key
	})

	ix.pv = permvector.Build(pairs, ix.fp)
	ix.model.Train(permvector.Keys(pairs))

	// The error is measured against the first rank of each key, so the
	// search interval is guaranteed to contain the first occurrence.
	var maxErr uint64
	lb := 0
	for j := range pairs {
		if pairs[lb].Key != pairs[j].Key {
			lb = j
		}
		pred := ix.model.Predict(pairs[j].Key)
		first := uint64(lb)
		err := max(pred, first) - min(pred, first)
		maxErr = max(maxErr, err)
	}
	ix.maxErr = maxErr

	ix.runs = buildKeyRuns(pairs)
}

// Lookup returns an iterator at the first rank holding key, or End() if
// the relation does not contain it. Advancing the iterator enumerates all
// positions of key in original-insertion order, then keys above it.
func (ix *Index) Lookup(data []uint64, key uint64) Iter {
	return ix.lookup(data, key, false)
}

// LowerBound returns an iterator at the first rank whose value is not
// less than key, or End() if every indexed value is smaller.
func (ix *Index) LowerBound(data []uint64, key uint64) Iter {
	return ix.lookup(data, key, true)
}

func (ix *Index) lookup(data []uint64, key uint64, lowerbound bool) Iter {
	n := uint64(ix.pv.Size())
	pred := ix.model.Predict(key)

	// Saturating interval around the prediction. The subtraction must not
	// wrap: lo = pred - min(pred, maxErr).
	lo := pred - min(pred, ix.maxErr)
	hi := min(pred+ix.maxErr+1, n)

	if ix.forceLinear || ix.fp.Enabled() {
		i := lo
		if lowerbound {
			// Fingerprints are only valid for equality; a scanned rank
			// whose key differs still matters for ordering.
			for ; i < hi; i++ {
				e := ix.pv.At(int(i))
				ix.baseAccesses.Add(1)
				if data[e.Pos] >= key {
					break
				}
				ix.falsePositives.Add(1)
			}
			return ix.lowerBoundWalk(data, key, i, n)
		}
		if ix.fp.Enabled() {
			want := ix.fp.Fingerprint(key)
			for ; i < hi; i++ {
				e := ix.pv.At(int(i))
				if e.Print != want {
					continue
				}
				ix.baseAccesses.Add(1)
				if data[e.Pos] >= key {
					break
				}
				ix.falsePositives.Add(1)
			}
		} else {
			for ; i < hi; i++ {
				e := ix.pv.At(int(i))
				ix.baseAccesses.Add(1)
				if data[e.Pos] >= key {
					break
				}
				ix.falsePositives.Add(1)
			}
		}
		return ix.equalityCheck(data, key, i, n)
	}

	// Binary search on the clamped interval. falsePositives is not
	// maintained on this path; the counter is linear-mode telemetry.
	for lo < hi {
		mid := lo + (hi-lo)/2
		ix.baseAccesses.Add(1)
		if data[ix.pv.At(int(mid)).Pos] < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lowerbound {
		return ix.lowerBoundWalk(data, key, lo, n)
	}
	return ix.equalityCheck(data, key, lo, n)
}

// lowerBoundWalk finishes a lower-bound lookup: the bounded search may
// stop short when the key is absent and predicted far off, so walk until
// the first value not less than key.
func (ix *Index) lowerBoundWalk(data []uint64, key uint64, i, n uint64) Iter {
	for i < n {
		ix.baseAccesses.Add(1)
		if data[ix.pv.At(int(i)).Pos] >= key {
			break
		}
		i++
	}
	return Iter{v: ix.pv, rank: int(i)}
}

// equalityCheck verifies that the rank the search stopped at actually
// holds key; anything else is a miss.
func (ix *Index) equalityCheck(data []uint64, key uint64, i, n uint64) Iter {
	if i >= n {
		return ix.End()
	}
	ix.baseAccesses.Add(1)
	if data[ix.pv.At(int(i)).Pos] != key {
		return ix.End()
	}
	return Iter{v: ix.pv, rank: int(i)}
}

// Begin returns the iterator at rank 0.
func (ix *Index) Begin() Iter { return Iter{v: ix.pv, rank: 0} }

// End returns the past-the-end iterator; it doubles as "not found".
func (ix *Index) End() Iter { return Iter{v: ix.pv, rank: ix.pv.Size()} }

// MaxError is the largest |model(key) - first_rank(key)| observed at fit
// time; it bounds the lookup search window.
func (ix *Index) MaxError() uint64 { return ix.maxErr }

// DistinctKeys returns the number of distinct keys in the fitted data.
func (ix *Index) DistinctKeys() int {
	if ix.runs == nil {
		return 0
	}
	return ix.runs.distinct()
}

// Count returns how many positions hold key, in O(lookup) time via the
// key-run dictionary.
func (ix *Index) Count(data []uint64, key uint64) int {
	it := ix.Lookup(data, key)
	if !it.Valid() {
		return 0
	}
	start, end := ix.runs.runBounds(uint64(it.Rank()))
	return int(end - start)
}

// BaseDataAccesses counts reads of the base relation performed by
// lookups. Debug telemetry; accumulates across fits.
func (ix *Index) BaseDataAccesses() uint64 { return ix.baseAccesses.Load() }

// FalsePositiveAccesses counts linear-mode base reads whose value was
// below the searched key: candidates the model interval included but
// that were not the answer. Not maintained by the binary-search mode.
func (ix *Index) FalsePositiveAccesses() uint64 { return ix.falsePositives.Load() }

// ModelByteSize is the model's self-reported size.
func (ix *Index) ModelByteSize() int { return ix.model.ByteSize() }

// PermVectorByteSize is the permutation store's resident size.
func (ix *Index) PermVectorByteSize() int { return ix.pv.ByteSize() }

// ByteSize is the total index size: max error plus model plus
// permutation vector.
func (ix *Index) ByteSize() int {
	return 8 + ix.ModelByteSize() + ix.PermVectorByteSize()
}

// MemReport breaks the resident memory down per component.
func (ix *Index) MemReport() utils.MemReport {
	r := utils.MemReport{
		Name:       ix.Name(),
		TotalBytes: ix.ByteSize() + ix.runs.byteSize(),
	}
	r.AddChild(ix.model.Name(), ix.ModelByteSize())
	r.AddChild("permvector", ix.PermVectorByteSize())
	r.AddChild("keyruns", ix.runs.byteSize())
	return r
}

// Name encodes the model name, fingerprint width and forced-linear flag.
func (ix *Index) Name() string {
	return fmt.Sprintf("LSI<%s, %d, %t>", ix.model.Name(), ix.fp.Width(), ix.forceLinear)
}
