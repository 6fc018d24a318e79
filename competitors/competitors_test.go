package competitors

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testData(r *rand.Rand, n int, keyRange uint64) []uint64 {
	data := make([]uint64, n)
	for i := range data {
		data[i] = r.Uint64() % keyRange
	}
	return data
}

func oracleFirst(data []uint64) map[uint64]uint64 {
	first := make(map[uint64]uint64)
	for i, k := range data {
		if _, ok := first[k]; !ok {
			first[k] = uint64(i)
		}
	}
	return first
}

func oracleAll(data []uint64) map[uint64][]uint64 {
	all := make(map[uint64][]uint64)
	for i, k := range data {
		all[k] = append(all[k], uint64(i))
	}
	return all
}

func TestLookupAgainstOracle(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	data := testData(r, 10000, 4000)
	first := oracleFirst(data)

	indexes := []Index{NewSorted(data), NewRadix(data), NewHash(data)}
	for _, ix := range indexes {
		for k, want := range first {
			pos, ok := ix.Lookup(k)
			require.True(t, ok, "%s key %d", ix.Name(), k)
			require.Equal(t, want, pos, "%s key %d", ix.Name(), k)
		}
		for i := 0; i < 1000; i++ {
			k := 4000 + r.Uint64()%4000
			_, ok := ix.Lookup(k)
			require.False(t, ok, "%s absent key %d", ix.Name(), k)
		}
	}
}

func TestPositionsInInsertionOrder(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	data := testData(r, 5000, 250)
	all := oracleAll(data)

	sorted := NewSorted(data)
	radix := NewRadix(data)
	hash := NewHash(data)
	for k, want := range all {
		require.Equal(t, want, sorted.Positions(k), "sorted key %d", k)
		require.Equal(t, want, radix.Positions(k), "radix key %d", k)
		require.Equal(t, want, hash.Positions(k), "hash key %d", k)
	}
}

func TestLowerBoundAgreement(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	data := testData(r, 10000, 1<<30)
	sorted := NewSorted(data)
	radix := NewRadix(data)

	maxKey := data[0]
	for _, k := range data {
		maxKey = max(maxKey, k)
	}

	for i := 0; i < 5000; i++ {
		k := r.Uint64() % (1 << 31)
		sPos, sOK := sorted.LowerBound(k)
		rPos, rOK := radix.LowerBound(k)
		require.Equal(t, sOK, rOK, "key %d", k)
		if sOK {
			require.Equal(t, sPos, rPos, "key %d", k)
			require.GreaterOrEqual(t, data[sPos], k)
		} else {
			require.Greater(t, k, maxKey)
		}
	}
}

func TestByteSizesReported(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	data := testData(r, 1000, 500)
	for _, ix := range []Index{NewSorted(data), NewRadix(data), NewHash(data)} {
		require.Positive(t, ix.ByteSize(), ix.Name())
		require.NotEmpty(t, ix.Name())
	}
}
