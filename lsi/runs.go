package lsi

import (
	"github.com/hillbig/rsdic"

	"lsindex/permvector"
)

// keyRuns marks which ranks start a new key run, backed by a rank/select
// dictionary. Equal keys occupy a contiguous rank range, so run index
// arithmetic gives distinct-key counts and duplicate counts without
// touching the base relation.
type keyRuns struct {
	bv   *rsdic.RSDic
	ones uint64
}

func buildKeyRuns(sorted []permvector.Pair) *keyRuns {
	bv := rsdic.New()
	for j := range sorted {
		bv.PushBack(j == 0 || sorted[j].Key != sorted[j-1].Key)
	}
	r := &keyRuns{bv: bv}
	if bv.Num() > 0 {
		r.ones = bv.Rank(bv.Num(), true)
	}
	return r
}

// distinct returns the number of key runs.
func (r *keyRuns) distinct() int { return int(r.ones) }

// runBounds returns the rank interval [start, end) of the key run
// containing rank. rank must be a stored rank.
func (r *keyRuns) runBounds(rank uint64) (uint64, uint64) {
	ri := r.bv.Rank(rank+1, true) // 1-based index of the containing run
	start := r.bv.Select(ri-1, true)
	end := r.bv.Num()
	if ri < r.ones {
		end = r.bv.Select(ri, true)
	}
	return start, end
}

func (r *keyRuns) byteSize() int {
	if r == nil {
		return 0
	}
	// RSDic doesn't expose its allocation; estimate bits/8 plus overhead.
	return int(r.bv.Num()/8) + 64
}
