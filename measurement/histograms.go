// Package measurement records solver completion times into HdrHistograms
// and exports the full latency spectrum per solver alongside the charts.
package measurement

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/olekukonko/tablewriter"
	"github.com/pingcap/errors"
)

// histogram bounds: one microsecond to one hour, three significant figures.
const (
	minRecordable = int64(1)
	maxRecordable = int64(time.Hour / time.Microsecond)
)

type histogram struct {
	hist *hdrhistogram.Histogram
}

func newHistogram() *histogram {
	return &histogram{hist: hdrhistogram.New(minRecordable, maxRecordable, 3)}
}

func (h *histogram) Measure(seconds float64) {
	us := int64(seconds * float64(time.Second/time.Microsecond))
	if us < minRecordable {
		us = minRecordable
	}
	if us > maxRecordable {
		us = maxRecordable
	}
	// in-range values cannot fail to record
	_ = h.hist.RecordValue(us)
}

func (h *histogram) Summary() []string {
	toSec := func(us int64) string { return fmt.Sprintf("%.3f", float64(us)/1e6) }
	return []string{
		fmt.Sprintf("%d", h.hist.TotalCount()),
		fmt.Sprintf("%.3f", h.hist.Mean()/1e6),
		toSec(h.hist.Min()),
		toSec(h.hist.ValueAtQuantile(50)),
		toSec(h.hist.ValueAtQuantile(90)),
		toSec(h.hist.ValueAtQuantile(99)),
		toSec(h.hist.Max()),
	}
}

// Histograms aggregates completion times per solver.
type Histograms struct {
	histograms map[string]*histogram
}

func NewHistograms() *Histograms {
	return &Histograms{histograms: make(map[string]*histogram)}
}

// Measure records one completion time (in seconds) for a solver.
func (h *Histograms) Measure(solver string, seconds float64) {
	opM, ok := h.histograms[solver]
	if !ok {
		opM = newHistogram()
		h.histograms[solver] = opM
	}
	opM.Measure(seconds)
}

func (h *Histograms) solvers() []string {
	keys := make([]string, 0, len(h.histograms))
	for k := range h.histograms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Output renders a per-solver summary table.
func (h *Histograms) Output(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Solver", "Count", "Mean(s)", "Min(s)", "P50(s)", "P90(s)", "P99(s)", "Max(s)"})
	for _, solver := range h.solvers() {
		table.Append(append([]string{solver}, h.histograms[solver].Summary()...))
	}
	table.Render()
}

// ExportPercentiles writes the full latency spectrum for each solver in
// percentile output format into dir, one file per solver.
func (h *Histograms) ExportPercentiles(dir string) error {
	for _, solver := range h.solvers() {
		outFile := filepath.Join(dir, fmt.Sprintf("%s-percentiles.txt", solver))
		fmt.Printf("Exporting the full latency spectrum for solver '%s' into file: %s.\n", solver, outFile)
		f, err := os.Create(outFile)
		if err != nil {
			return errors.Annotatef(err, "create percentile output file %s", outFile)
		}
		w := bufio.NewWriter(f)
		if _, err = h.histograms[solver].hist.PercentilesPrint(w, 1, 1.0); err != nil {
			f.Close()
			return errors.Annotatef(err, "print percentiles for %s", solver)
		}
		if err = w.Flush(); err != nil {
			f.Close()
			return errors.Trace(err)
		}
		if err = f.Close(); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
