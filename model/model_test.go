package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

type sliceKeys []uint64

func (s sliceKeys) Len() int        { return len(s) }
func (s sliceKeys) At(i int) uint64 { return s[i] }

func sortedRandom(r *rand.Rand, n int, max uint64) sliceKeys {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = r.Uint64() % max
	}
	slices.Sort(keys)
	return keys
}

func TestLinearOnSequentialKeys(t *testing.T) {
	t.Parallel()

	keys := make(sliceKeys, 10000)
	for i := range keys {
		keys[i] = 20000 + uint64(i)
	}

	m := NewLinear()
	m.Train(keys)

	for i, k := range keys {
		pred := m.Predict(k)
		diff := max(pred, uint64(i)) - min(pred, uint64(i))
		require.LessOrEqual(t, diff, uint64(1), "key %d", k)
	}
}

func TestLinearConstantKeys(t *testing.T) {
	t.Parallel()

	keys := make(sliceKeys, 100)
	for i := range keys {
		keys[i] = 7
	}

	m := NewLinear()
	m.Train(keys)

	pred := m.Predict(7)
	require.Less(t, pred, uint64(len(keys)))
}

func TestLinearUntrained(t *testing.T) {
	t.Parallel()

	m := NewLinear()
	require.Zero(t, m.Predict(123))

	m.Train(sliceKeys(nil))
	require.Zero(t, m.Predict(123))
}

func TestPredictionsStayInRange(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	for _, m := range []Model{NewLinear(), NewRMI(64)} {
		keys := sortedRandom(r, 5000, 1<<40)
		m.Train(keys)

		probes := []uint64{0, 1, keys[0], keys[len(keys)-1], ^uint64(0)}
		for i := 0; i < 1000; i++ {
			probes = append(probes, r.Uint64())
		}
		for _, k := range probes {
			require.Less(t, m.Predict(k), uint64(keys.Len()), "%s key %d", m.Name(), k)
		}
	}
}

func TestRMIOnQuadraticKeys(t *testing.T) {
	t.Parallel()

	// RMI segments should track a smooth curve far better than one line.
	keys := make(sliceKeys, 20000)
	for i := range keys {
		keys[i] = uint64(i) * uint64(i)
	}

	linear := NewLinear()
	linear.Train(keys)
	rmi := NewRMI(256)
	rmi.Train(keys)

	maxErr := func(m Model) uint64 {
		var worst uint64
		for i, k := range keys {
			pred := m.Predict(k)
			err := max(pred, uint64(i)) - min(pred, uint64(i))
			worst = max(worst, err)
		}
		return worst
	}

	require.Less(t, maxErr(rmi), maxErr(linear))
}

func TestRMIEmptyBuckets(t *testing.T) {
	t.Parallel()

	// Two far-apart clusters leave most buckets empty; predictions for
	// keys that land in the gap must stay in range.
	keys := make(sliceKeys, 0, 200)
	for i := 0; i < 100; i++ {
		keys = append(keys, uint64(i))
	}
	for i := 0; i < 100; i++ {
		keys = append(keys, 1<<40+uint64(i))
	}

	m := NewRMI(128)
	m.Train(keys)

	for _, k := range []uint64{200, 1 << 20, 1 << 39} {
		require.Less(t, m.Predict(k), uint64(len(keys)))
	}
}

func TestRMIDegenerateFanout(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	keys := sortedRandom(r, 1000, 1<<20)

	one := NewRMI(0) // clamped to 1
	one.Train(keys)
	line := NewLinear()
	line.Train(keys)

	for i := 0; i < 100; i++ {
		k := r.Uint64() % (1 << 20)
		require.Equal(t, line.Predict(k), one.Predict(k))
	}
}

func TestNamesAndSizes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "linear", NewLinear().Name())
	require.Equal(t, "rmi", NewRMI(16).Name())

	require.Positive(t, NewLinear().ByteSize())

	small := NewRMI(4)
	big := NewRMI(4096)
	keys := sliceKeys{1, 2, 3}
	small.Train(keys)
	big.Train(keys)
	require.Less(t, small.ByteSize(), big.ByteSize())
}
