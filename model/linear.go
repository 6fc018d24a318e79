package model

import "unsafe"

// Linear fits a single least-squares line rank = slope*key + intercept
// over the whole key sequence. Cheap to store and evaluate; the max error
// grows with how far the key distribution bends away from a line.
type Linear struct {
	slope     float64
	intercept float64
	n         uint64
}

// NewLinear returns an untrained linear model.
func NewLinear() *Linear { return &Linear{} }

func (m *Linear) Train(keys KeySource) {
	n := keys.Len()
	m.n = uint64(n)
	m.slope, m.intercept = 0, 0
	if n == 0 {
		return
	}

	// Mean-centered accumulation; the naive sum-of-squares formula loses
	// all precision for large clustered keys.
	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += float64(keys.At(i))
		meanY += float64(i)
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX float64
	for i := 0; i < n; i++ {
		dx := float64(keys.At(i)) - meanX
		cov += dx * (float64(i) - meanY)
		varX += dx * dx
	}

	if varX == 0 {
		m.intercept = meanY
		return
	}
	m.slope = cov / varX
	m.intercept = meanY - m.slope*meanX
}

func (m *Linear) Predict(key uint64) uint64 {
	return clampRank(m.slope*float64(key)+m.intercept, m.n)
}

func (m *Linear) ByteSize() int { return int(unsafe.Sizeof(*m)) }

func (m *Linear) Name() string { return "linear" }
