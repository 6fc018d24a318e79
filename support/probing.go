package support

import "math/rand"

// ProbeKind selects how a probing set relates to the indexed keys.
type ProbeKind int

const (
	// ProbeExisting draws probes uniformly from the indexed keys.
	ProbeExisting ProbeKind = iota
	// ProbeAbsent draws probes that are guaranteed not to be indexed.
	ProbeAbsent
)

// ProbingSet returns m probe keys for the given relation. Absent probes
// are rejection-sampled against the key set.
func ProbingSet(keys []uint64, m int, kind ProbeKind, seed int64) []uint64 {
	r := rand.New(rand.NewSource(seed))
	probes := make([]uint64, 0, m)

	switch kind {
	case ProbeExisting:
		for i := 0; i < m; i++ {
			probes = append(probes, keys[r.Intn(len(keys))])
		}
	case ProbeAbsent:
		present := make(map[uint64]struct{}, len(keys))
		for _, k := range keys {
			present[k] = struct{}{}
		}
		for len(probes) < m {
			k := r.Uint64()
			if _, ok := present[k]; ok {
				continue
			}
			probes = append(probes, k)
		}
	}
	return probes
}
