package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomValues(r *rand.Rand, n int, width uint8) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		switch {
		case width == 0:
			values[i] = 0
		case width == 64:
			values[i] = r.Uint64()
		default:
			values[i] = r.Uint64() & ((uint64(1) << width) - 1)
		}
	}
	return values
}

func TestRoundTripAllWidths(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	for width := uint8(0); width <= 64; width++ {
		// 257 elements cross several word boundaries at every width.
		values := randomValues(r, 257, width)

		buf := Append(nil, values, width)
		require.Len(t, buf, ByteLen(len(values), width), "width %d", width)
		buf = PutSlop(buf)

		reader := NewReader(buf, 0, width)
		for i, want := range values {
			require.Equal(t, want, reader.Get(i), "width %d index %d", width, i)
		}
	}
}

func TestStraddlingWideValues(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	// Widths above 57 need the second word read; make every element the
	// maximum representable value so dropped bits would be visible.
	for width := uint8(57); width <= 64; width++ {
		for _, n := range []int{1, 2, 3, 7, 100} {
			values := make([]uint64, n)
			for i := range values {
				if width == 64 {
					values[i] = ^uint64(0)
				} else {
					values[i] = (uint64(1) << width) - 1
				}
				if i%2 == 1 {
					values[i] = r.Uint64() & values[0]
				}
			}

			buf := PutSlop(Append(nil, values, width))
			reader := NewReader(buf, 0, width)
			for i, want := range values {
				require.Equal(t, want, reader.Get(i), "width %d n %d index %d", width, n, i)
			}
		}
	}
}

func TestWidthFor(t *testing.T) {
	t.Parallel()
	require.Equal(t, uint8(0), WidthFor(0))
	require.Equal(t, uint8(1), WidthFor(1))
	require.Equal(t, uint8(2), WidthFor(2))
	require.Equal(t, uint8(2), WidthFor(3))
	require.Equal(t, uint8(8), WidthFor(255))
	require.Equal(t, uint8(9), WidthFor(256))
	require.Equal(t, uint8(64), WidthFor(^uint64(0)))
}

func TestMaxWidth(t *testing.T) {
	t.Parallel()
	require.Equal(t, uint8(0), MaxWidth(nil))
	require.Equal(t, uint8(0), MaxWidth([]uint64{0, 0, 0}))
	require.Equal(t, uint8(10), MaxWidth([]uint64{1, 1023, 12}))
}

func TestTwoLanesOneBuffer(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	first := randomValues(r, 1000, 17)
	second := randomValues(r, 1000, 5)

	buf := Append(nil, first, 17)
	secondBase := len(buf)
	buf = Append(buf, second, 5)
	buf = PutSlop(buf)

	firstReader := NewReader(buf, 0, 17)
	secondReader := NewReader(buf, secondBase, 5)
	for i := range first {
		require.Equal(t, first[i], firstReader.Get(i))
		require.Equal(t, second[i], secondReader.Get(i))
	}
}

func TestZeroWidthLane(t *testing.T) {
	t.Parallel()
	buf := Append(nil, []uint64{0, 0, 0, 0}, 0)
	require.Empty(t, buf)

	reader := NewReader(PutSlop(buf), 0, 0)
	for i := 0; i < 4; i++ {
		require.Zero(t, reader.Get(i))
	}
}

func TestByteLen(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0, ByteLen(0, 13))
	require.Equal(t, 0, ByteLen(7, 0))
	require.Equal(t, 1, ByteLen(1, 1))
	require.Equal(t, 1, ByteLen(8, 1))
	require.Equal(t, 2, ByteLen(9, 1))
	require.Equal(t, 8, ByteLen(1, 64))
	require.Equal(t, 15, ByteLen(2, 58))
}
