package utils

import (
	"fmt"
	"os"
	"sync"
)

var (
	statsFile = "probe_stats.csv"
	statsMu   sync.Mutex
)

// LogProbeStats appends one CSV row of lookup counters for a benchmark
// run, writing the header when the file is fresh. Rows accumulate across
// runs for offline comparison; ClearStats starts over.
func LogProbeStats(runName string, baseAccesses, falsePositives uint64) {
	statsMu.Lock()
	defer statsMu.Unlock()

	_, statErr := os.Stat(statsFile)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(statsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	if fresh {
		fmt.Fprintln(f, "run,base_accesses,false_positives")
	}
	fmt.Fprintf(f, "%s,%d,%d\n", runName, baseAccesses, falsePositives)
}

// ClearStats removes the accumulated probe stats file.
func ClearStats() {
	statsMu.Lock()
	defer statsMu.Unlock()
	os.Remove(statsFile)
}
