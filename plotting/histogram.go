package plotting

import (
	"image/color"
	"log"
	"math"

	"github.com/pingcap/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pbarbarant/benchopt/results"
)

// ToleranceEps is the default precision threshold of the completion-time
// histogram.
const ToleranceEps = 1e-6

// Tolerance is the terminal outcome of the histogram derivation for one
// solver: either the earliest progress marker at which every run beat the
// precision threshold, or the fact that no marker did.
type Tolerance struct {
	// Reached reports whether some stop_val group had all runs under the
	// threshold.
	Reached bool
	// StopVal is the smallest qualifying progress marker. Only meaningful
	// when Reached.
	StopVal float64
	// MeanTime is the mean elapsed time of the runs at StopVal.
	MeanTime float64
	// Times holds the individual run times at StopVal, for overlay markers.
	Times []float64
	// MaxTime is the largest time observed anywhere in the slice, used as
	// the bar height placeholder when the threshold was never reached.
	MaxTime float64
	// Eps is the precision threshold the derivation used.
	Eps float64
}

// AggregateHistogram finds, per solver, the earliest progress marker whose
// worst run still beats the precision threshold c_star = min(obj) + eps.
// Requiring the group's worst run under the threshold is deliberately
// stricter than "first run to cross": it is robust to outlier-fast noisy
// runs.
func AggregateHistogram(slice results.Table, eps float64) (map[string]Tolerance, error) {
	if len(slice) == 0 {
		return nil, &results.EmptySliceError{}
	}
	cStar := slice.MinObj() + eps
	maxTime := slice.MaxTime()

	outcomes := make(map[string]Tolerance)
	for _, solver := range slice.Solvers() {
		name := solver
		rows := slice.Filter(func(o results.Observation) bool { return o.Solver == name })
		stopVals, groups := groupByStopVal(rows)

		reached := false
		var earliest float64
		for _, stopVal := range stopVals {
			worst := math.Inf(-1)
			for _, o := range groups[stopVal] {
				worst = math.Max(worst, o.Obj)
			}
			if worst < cStar {
				reached = true
				earliest = stopVal
				break
			}
		}
		if !reached {
			outcomes[solver] = Tolerance{MaxTime: maxTime, Eps: eps}
			continue
		}
		t := times(groups[earliest])
		outcomes[solver] = Tolerance{
			Reached:  true,
			StopVal:  earliest,
			MeanTime: stat.Mean(t, nil),
			Times:    t,
			MaxTime:  maxTime,
			Eps:      eps,
		}
	}
	return outcomes, nil
}

// barSlot returns the center position and width of the bar for solver index
// i among n solvers. Slots depend only on n: width 1/(n+2), left-padded by
// 1.5 slot-widths for the first solver.
func barSlot(i, n int) (x, width float64) {
	width = 1 / float64(n+2)
	return (float64(i) + 1.5) * width, width
}

// HistogramPlot renders the completion-time histogram for one (dataset,
// objective) slice and saves it under the output directory. Solvers that
// never reached the threshold get a white placeholder bar annotated "Did not
// converge".
func HistogramPlot(slice results.Table, benchmark, outDir string, eps float64) (RenderedChart, error) {
	chart := RenderedChart{Kind: KindHistogram}
	outcomes, err := AggregateHistogram(slice, eps)
	if err != nil {
		return chart, errors.Trace(err)
	}
	chart.Dataset = slice[0].Dataset
	chart.Objective = slice[0].Objective
	chart.Path = chartPath(outDir, "histogram", benchmark, chart.Dataset, chart.Objective)

	solvers := slice.Solvers()
	colors, err := Palette(len(solvers), SpreadInterior)
	if err != nil {
		return chart, errors.Trace(err)
	}

	p := newChart(chart.Dataset, chart.Objective)
	p.Y.Label.Text = "Time [sec]"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}
	p.X.Min = 0
	p.X.Max = 1

	// the log axis needs a strictly positive floor below every bar
	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for _, outcome := range outcomes {
		height := outcome.MeanTime
		if !outcome.Reached {
			height = outcome.MaxTime
		}
		if height > 0 {
			yMin = math.Min(yMin, height)
		}
		yMax = math.Max(yMax, height)
		for _, t := range outcome.Times {
			if t > 0 {
				yMin = math.Min(yMin, t)
			}
			yMax = math.Max(yMax, t)
		}
	}
	if math.IsInf(yMin, 1) {
		yMin, yMax = 1e-3, 1
	}
	p.Y.Min = yMin / 10
	p.Y.Max = yMax * 2

	ticks := make([]plot.Tick, len(solvers))
	for i, solver := range solvers {
		xi, width := barSlot(i, len(solvers))
		ticks[i] = plot.Tick{Value: xi, Label: solver}

		outcome := outcomes[solver]
		if !outcome.Reached {
			log.Printf("solver %s did not reach precision %g", solver, outcome.Eps)
			height := math.Max(outcome.MaxTime, p.Y.Min)
			if err := addBar(p, xi, width, p.Y.Min, height, color.White, true); err != nil {
				return chart, errors.Trace(err)
			}
			annotate(p, xi, math.Sqrt(p.Y.Min*height), "Did not converge")
			continue
		}
		// instantaneous runs would fall off the log axis; pin them to the floor
		height := math.Max(outcome.MeanTime, p.Y.Min)
		if err := addBar(p, xi, width, p.Y.Min, height, colors[i].Color(), false); err != nil {
			return chart, errors.Trace(err)
		}

		// overlay the individual run times at the selected marker
		sampleXYs := make(plotter.XYs, len(outcome.Times))
		for j, t := range outcome.Times {
			sampleXYs[j] = plotter.XY{X: xi, Y: math.Max(t, p.Y.Min)}
		}
		samples, err := plotter.NewScatter(sampleXYs)
		if err != nil {
			return chart, errors.Trace(err)
		}
		samples.GlyphStyle = draw.GlyphStyle{Color: color.Black, Radius: vg.Points(4), Shape: draw.PlusGlyph{}}
		p.Add(samples)
	}

	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	if err := p.Save(8*vg.Inch, 6*vg.Inch, chart.Path); err != nil {
		return chart, errors.Annotatef(err, "save %s", chart.Path)
	}
	chart.Figure = p
	return chart, nil
}

// addBar draws one vertical bar as a filled rectangle from the axis floor.
func addBar(p *plot.Plot, x, width, bottom, height float64, fill color.Color, outline bool) error {
	rect, err := plotter.NewPolygon(plotter.XYs{
		{X: x - width/2, Y: bottom},
		{X: x - width/2, Y: height},
		{X: x + width/2, Y: height},
		{X: x + width/2, Y: bottom},
	})
	if err != nil {
		return errors.Trace(err)
	}
	rect.Color = fill
	if outline {
		rect.LineStyle.Color = color.Black
		rect.LineStyle.Width = vg.Points(1)
	} else {
		rect.LineStyle.Width = 0
	}
	p.Add(rect)
	return nil
}

func annotate(p *plot.Plot, x, y float64, label string) {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{label},
	})
	if err != nil {
		return
	}
	labels.TextStyle[0].Color = color.Black
	labels.TextStyle[0].XAlign = text.XCenter
	labels.TextStyle[0].YAlign = text.YCenter
	labels.TextStyle[0].Rotation = math.Pi / 2
	p.Add(labels)
}
