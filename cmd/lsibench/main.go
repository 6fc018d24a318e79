// lsibench builds a learned secondary index over a synthetic dataset,
// drives a probing set through it and reports sizes, throughput and the
// debug counters. Optionally runs the competitor indexes side by side.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"lsindex/competitors"
	"lsindex/errutil"
	"lsindex/lsi"
	"lsindex/model"
	"lsindex/support"
	"lsindex/utils"
)

func main() {
	var (
		n          = flag.Int("n", 1000000, "Relation size")
		dataset    = flag.String("dataset", "seq", "Dataset: seq|gapped|uniform|squares")
		modelName  = flag.String("model", "linear", "Model: linear|rmi")
		fanout     = flag.Int("fanout", 1024, "RMI fanout")
		fpWidth    = flag.Uint("fingerprint", 0, "Fingerprint width in bits (0 disables)")
		forceLin   = flag.Bool("force-linear", false, "Force linear search")
		probes     = flag.Int("probes", 1000000, "Probe count")
		probeKind  = flag.String("probe-kind", "existing", "Probe kind: existing|absent")
		seed       = flag.Int64("seed", 42, "Base RNG seed")
		compare    = flag.Bool("competitors", false, "Also run the competitor indexes")
		jsonReport = flag.Bool("json", false, "Emit the memory report as JSON")
		clearStats = flag.Bool("clear-stats", false, "Drop the accumulated probe stats file first")
	)
	flag.Parse()

	if *clearStats {
		utils.ClearStats()
	}

	data := makeDataset(*dataset, *n, *seed)

	var opts []lsi.Option
	if *fpWidth > 0 {
		opts = append(opts, lsi.WithFingerprintWidth(uint8(*fpWidth)))
	}
	if *forceLin {
		opts = append(opts, lsi.WithLinearSearch())
	}
	ix, err := lsi.New(makeModel(*modelName, *fanout), opts...)
	errutil.FatalIf(err)

	buildStart := time.Now()
	ix.Fit(data)
	buildTime := time.Since(buildStart)

	kind := support.ProbeExisting
	if *probeKind == "absent" {
		kind = support.ProbeAbsent
	}
	probeKeys := support.ProbingSet(data, *probes, kind, *seed+1)

	fmt.Printf("%s over %s(n=%d), %d %s probes\n",
		ix.Name(), *dataset, len(data), len(probeKeys), *probeKind)
	fmt.Printf("build: %v, max error: %d, distinct keys: %d\n",
		buildTime, ix.MaxError(), ix.DistinctKeys())

	bar := progressbar.Default(int64(len(probeKeys)))
	hits := 0
	probeStart := time.Now()
	for i, k := range probeKeys {
		if ix.Lookup(data, k).Valid() {
			hits++
		}
		if i%8192 == 0 {
			bar.Add(8192)
		}
	}
	probeTime := time.Since(probeStart)
	bar.Finish()

	fmt.Printf("probe: %v total, %v/op, %d hits\n",
		probeTime, probeTime/time.Duration(max(len(probeKeys), 1)), hits)
	fmt.Printf("base accesses: %s, false positives: %s\n",
		humanize.Comma(int64(ix.BaseDataAccesses())),
		humanize.Comma(int64(ix.FalsePositiveAccesses())))
	fmt.Printf("size: %s (model %s, permvector %s)\n",
		humanize.Bytes(uint64(ix.ByteSize())),
		humanize.Bytes(uint64(ix.ModelByteSize())),
		humanize.Bytes(uint64(ix.PermVectorByteSize())))
	if *jsonReport {
		fmt.Println(ix.MemReport().JSON())
	} else {
		fmt.Print(ix.MemReport().String())
	}

	utils.LogProbeStats(
		fmt.Sprintf("%s/%s/%d", *dataset, ix.Name(), len(data)),
		ix.BaseDataAccesses(), ix.FalsePositiveAccesses())

	if *compare {
		runCompetitors(data, probeKeys)
	}
}

func runCompetitors(data, probeKeys []uint64) {
	indexes := []competitors.Index{
		competitors.NewSorted(data),
		competitors.NewRadix(data),
		competitors.NewHash(data),
	}
	fmt.Printf("competitors: %s\n", strings.Join(
		utils.Map(indexes, func(c competitors.Index) string { return c.Name() }), ", "))

	for _, c := range indexes {
		hits := 0
		start := time.Now()
		for _, k := range probeKeys {
			if _, ok := c.Lookup(k); ok {
				hits++
			}
		}
		elapsed := time.Since(start)
		fmt.Printf("%-12s %v/op, %d hits, %s\n",
			c.Name(), elapsed/time.Duration(max(len(probeKeys), 1)), hits,
			humanize.Bytes(uint64(c.ByteSize())))
	}
}

func makeDataset(name string, n int, seed int64) []uint64 {
	switch name {
	case "seq":
		return support.Shuffled(support.Sequential(n, 20000), seed)
	case "gapped":
		return support.Shuffled(support.Gapped(n, 10, seed), seed+1)
	case "uniform":
		return support.Uniform(n, uint64(n)*10, seed)
	case "squares":
		return support.SquaredDuplicates(n, seed)
	default:
		fail("unknown dataset %q", name)
		return nil
	}
}

func makeModel(name string, fanout int) model.Model {
	switch name {
	case "linear":
		return model.NewLinear()
	case "rmi":
		return model.NewRMI(fanout)
	default:
		fail("unknown model %q", name)
		return nil
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
