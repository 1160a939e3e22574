package plotting

import (
	stderrors "errors"
	"log"

	"github.com/pingcap/errors"

	"github.com/pbarbarant/benchopt/results"
)

// RenderAll walks the cross product of datasets and objectives present in
// the table and produces every requested chart kind for each slice, with
// eps as the histogram precision threshold. Kinds it does not recognize are
// skipped; a failing chart does not stop the remaining ones. All charts
// that did render are returned together with the combined error of those
// that did not.
func RenderAll(table results.Table, benchmark string, kinds []string, outDir string, eps float64) ([]RenderedChart, error) {
	var charts []RenderedChart
	var failures []error

	for _, dataset := range table.Datasets() {
		name := dataset
		byDataset := table.Filter(func(o results.Observation) bool { return o.Dataset == name })
		for _, objective := range byDataset.Objectives() {
			slice := byDataset.Slice(dataset, objective)
			if len(slice) == 0 {
				// cannot derive an optimum; skip this pair, keep going
				log.Printf("skipping %v", &results.EmptySliceError{Dataset: dataset, Objective: objective})
				continue
			}
			for _, kind := range kinds {
				var chart RenderedChart
				var err error
				switch kind {
				case KindConvergenceCurve:
					chart, err = ConvergencePlot(slice, benchmark, outDir)
				case KindHistogram:
					chart, err = HistogramPlot(slice, benchmark, outDir, eps)
				default:
					continue
				}
				if err != nil {
					failures = append(failures, errors.Annotatef(err, "%s for dataset %s, objective %s", kind, dataset, objective))
					continue
				}
				log.Printf("saved %s", chart.Path)
				charts = append(charts, chart)
			}
		}
	}
	return charts, stderrors.Join(failures...)
}
