package model

import "unsafe"

type segment struct {
	slope     float64
	intercept float64
}

// RMI is a two-layer recursive model: the root layer maps a key linearly
// onto one of fanout buckets, each holding its own least-squares line over
// the ranks that fell into it. Empty buckets predict their boundary rank.
type RMI struct {
	seg    []segment
	minKey uint64
	scale  float64
	n      uint64
	fanout int
}

// NewRMI returns an untrained RMI with the given fanout (minimum 1).
func NewRMI(fanout int) *RMI {
	if fanout < 1 {
		fanout = 1
	}
	return &RMI{fanout: fanout}
}

func (m *RMI) Train(keys KeySource) {
	n := keys.Len()
	m.n = uint64(n)
	m.seg = make([]segment, m.fanout)
	m.scale = 0
	if n == 0 {
		return
	}

	m.minKey = keys.At(0)
	maxKey := keys.At(n - 1)
	if maxKey > m.minKey {
		m.scale = float64(m.fanout) / float64(maxKey-m.minKey)
	}

	// Keys are sorted, so each bucket owns a contiguous rank range.
	start := 0
	for b := 0; b < m.fanout; b++ {
		end := start
		for end < n && m.bucket(keys.At(end)) == b {
			end++
		}
		if end == start {
			m.seg[b] = segment{intercept: float64(start)}
		} else {
			m.seg[b] = fitLine(keys, start, end)
		}
		start = end
	}
}

func (m *RMI) bucket(key uint64) int {
	if key <= m.minKey {
		return 0
	}
	b := int(float64(key-m.minKey) * m.scale)
	if b >= m.fanout {
		b = m.fanout - 1
	}
	return b
}

// fitLine runs a mean-centered least squares of rank over key on the rank
// range [start, end).
func fitLine(keys KeySource, start, end int) segment {
	cnt := float64(end - start)
	var meanX, meanY float64
	for i := start; i < end; i++ {
		meanX += float64(keys.At(i))
		meanY += float64(i)
	}
	meanX /= cnt
	meanY /= cnt

	var cov, varX float64
	for i := start; i < end; i++ {
		dx := float64(keys.At(i)) - meanX
		cov += dx * (float64(i) - meanY)
		varX += dx * dx
	}
	if varX == 0 {
		return segment{intercept: meanY}
	}
	slope := cov / varX
	return segment{slope: slope, intercept: meanY - slope*meanX}
}

func (m *RMI) Predict(key uint64) uint64 {
	if m.n == 0 {
		return 0
	}
	s := m.seg[m.bucket(key)]
	return clampRank(s.slope*float64(key)+s.intercept, m.n)
}

func (m *RMI) ByteSize() int {
	return int(unsafe.Sizeof(*m)) + len(m.seg)*int(unsafe.Sizeof(segment{}))
}

func (m *RMI) Name() string { return "rmi" }
