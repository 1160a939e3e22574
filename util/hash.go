package util

import "github.com/spaolacci/murmur3"

// PlotID derives the identifier embedded in chart file names from a
// (benchmark, dataset, objective) triple. The same triple always maps to the
// same value, so re-running a benchmark overwrites its charts instead of
// accumulating new files.
func PlotID(benchmark, dataset, objective string) uint64 {
	h := murmur3.New64()
	for _, s := range []string{benchmark, dataset, objective} {
		if _, err := h.Write([]byte(s)); err != nil {
			panic(err)
		}
		// separator keeps ("ab","c") and ("a","bc") apart
		if _, err := h.Write([]byte{0}); err != nil {
			panic(err)
		}
	}
	return h.Sum64()
}
