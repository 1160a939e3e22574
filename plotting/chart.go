// Package plotting turns a raw benchmark result table into the two
// standardized chart types: the convergence curve and the completion-time
// histogram. Aggregation is pure computation over the in-memory table;
// rendering goes through gonum/plot and writes one PDF per chart.
package plotting

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/pbarbarant/benchopt/results"
	"github.com/pbarbarant/benchopt/util"
)

// Chart kinds recognized by the driver.
const (
	KindConvergenceCurve = "convergence_curve"
	KindHistogram        = "histogram"
)

// RenderedChart is a drawn figure plus the file it was saved to.
type RenderedChart struct {
	Kind      string
	Dataset   string
	Objective string
	Figure    *plot.Plot
	Path      string
}

// chartPath builds the deterministic output file name for one chart: the
// kind prefix plus the unsigned plot identifier of the (benchmark, dataset,
// objective) triple.
func chartPath(outDir, kind, benchmark, dataset, objective string) string {
	id := util.PlotID(benchmark, dataset, objective)
	return filepath.Join(outDir, fmt.Sprintf("%s_%d.pdf", kind, id))
}

func newChart(dataset, objective string) *plot.Plot {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s\nData: %s", objective, dataset)
	p.Title.Padding = vg.Points(10)
	p.Title.TextStyle.Font.Size = 14

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(10)
	p.Legend.YOffs = vg.Points(-5)
	return p
}

func addHorizontalLine(p *plot.Plot, yValue float64, label string, clr color.Color) {
	horizontalLine, err := plotter.NewLine(plotter.XYs{{X: p.X.Min, Y: yValue}, {X: p.X.Max, Y: yValue}})
	if err != nil {
		panic(err)
	}
	horizontalLine.Color = clr
	horizontalLine.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	labels, _ := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: p.X.Max, Y: yValue}},
		Labels: []string{label},
	})
	labels.TextStyle[0].Color = clr
	labels.TextStyle[0].YAlign = text.YCenter
	labels.TextStyle[0].XAlign = text.XLeft
	labels.Offset = vg.Point{X: 3, Y: 0}

	p.Add(horizontalLine)
	p.Add(labels)
}

// groupByStopVal splits a solver's rows by progress marker. Keys come back
// in ascending order.
func groupByStopVal(rows results.Table) ([]float64, map[float64]results.Table) {
	groups := make(map[float64]results.Table)
	var keys []float64
	for _, o := range rows {
		if _, ok := groups[o.StopVal]; !ok {
			keys = append(keys, o.StopVal)
		}
		groups[o.StopVal] = append(groups[o.StopVal], o)
	}
	sort.Float64s(keys)
	return keys, groups
}

// quantile computes the p-th quantile with linear interpolation between the
// two nearest order statistics, matching how the result tables were
// aggregated before.
func quantile(p float64, values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

func median(values []float64) float64 {
	return quantile(0.5, values)
}

func times(rows results.Table) []float64 {
	out := make([]float64, len(rows))
	for i, o := range rows {
		out[i] = o.Time
	}
	return out
}

func objs(rows results.Table) []float64 {
	out := make([]float64, len(rows))
	for i, o := range rows {
		out[i] = o.Obj
	}
	return out
}
