package plotting

import (
	"image/color"
	"math"

	"github.com/pingcap/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pbarbarant/benchopt/results"
)

// ConvergenceEps is the numerical floor of meaningful distinction from the
// optimum. The per-slice optimum is offset below the observed minimum by
// this amount, so the plotted objective gap stays strictly positive on the
// log axis.
const ConvergenceEps = 1e-10

// ConvergencePoint is one derived sample of a solver's convergence curve:
// the central tendency and spread of elapsed time at one progress marker,
// and the median objective gap to the slice optimum.
type ConvergencePoint struct {
	StopVal    float64
	TimeMedian float64
	TimeQ1     float64
	TimeQ9     float64
	ObjGap     float64
}

// AggregateConvergence groups each solver's rows by progress marker and
// derives the series plotted as the convergence curve. Points come back in
// ascending stop_val order.
func AggregateConvergence(slice results.Table) (map[string][]ConvergencePoint, error) {
	if len(slice) == 0 {
		return nil, &results.EmptySliceError{}
	}
	cStar := slice.MinObj() - ConvergenceEps

	curves := make(map[string][]ConvergencePoint)
	for _, solver := range slice.Solvers() {
		name := solver
		rows := slice.Filter(func(o results.Observation) bool { return o.Solver == name })
		stopVals, groups := groupByStopVal(rows)

		points := make([]ConvergencePoint, 0, len(stopVals))
		for _, stopVal := range stopVals {
			group := groups[stopVal]
			t := times(group)
			points = append(points, ConvergencePoint{
				StopVal:    stopVal,
				TimeMedian: median(t),
				TimeQ1:     quantile(0.1, t),
				TimeQ9:     quantile(0.9, t),
				ObjGap:     median(objs(group)) - cStar,
			})
		}
		curves[solver] = points
	}
	return curves, nil
}

// ConvergencePlot renders the convergence curve for one (dataset, objective)
// slice and saves it under the output directory.
func ConvergencePlot(slice results.Table, benchmark, outDir string) (RenderedChart, error) {
	chart := RenderedChart{Kind: KindConvergenceCurve}
	curves, err := AggregateConvergence(slice)
	if err != nil {
		return chart, errors.Trace(err)
	}
	chart.Dataset = slice[0].Dataset
	chart.Objective = slice[0].Objective
	chart.Path = chartPath(outDir, "convergence", benchmark, chart.Dataset, chart.Objective)

	solvers := slice.Solvers()
	colors, err := Palette(len(solvers), SpreadInterior)
	if err != nil {
		return chart, errors.Trace(err)
	}

	p := newChart(chart.Dataset, chart.Objective)
	p.X.Label.Text = "Time [sec]"
	p.Y.Label.Text = "F(x) - F(x*)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := ConvergenceEps, math.Inf(-1)
	for _, points := range curves {
		for _, pt := range points {
			xMin = math.Min(xMin, math.Min(pt.TimeQ1, pt.TimeMedian))
			xMax = math.Max(xMax, math.Max(pt.TimeQ9, pt.TimeMedian))
			yMin = math.Min(yMin, pt.ObjGap)
			yMax = math.Max(yMax, pt.ObjGap)
		}
	}
	// keep the axes clear of the outermost samples; log axes need strictly
	// positive bounds
	timeFloor := math.Max(xMin, 1e-12)
	p.X.Min = timeFloor * 0.8
	p.X.Max = math.Max(xMax, timeFloor) * 1.25
	p.Y.Min = yMin * 0.5
	p.Y.Max = yMax * 2

	for i, solver := range solvers {
		points := curves[solver]
		lineXYs := make(plotter.XYs, len(points))
		for j, pt := range points {
			// zero-time samples would fall off the log axis
			lineXYs[j] = plotter.XY{X: math.Max(pt.TimeMedian, timeFloor), Y: pt.ObjGap}
		}
		line, err := plotter.NewLine(lineXYs)
		if err != nil {
			return chart, errors.Trace(err)
		}
		line.Color = colors[i].Color()
		line.Width = vg.Points(3)
		p.Add(line)
		p.Legend.Add(solver, line)

		// percentile envelope: horizontal fill between the 10th and 90th
		// time percentiles at each objective-gap level
		bandXYs := make(plotter.XYs, 0, 2*len(points))
		for _, pt := range points {
			bandXYs = append(bandXYs, plotter.XY{X: math.Max(pt.TimeQ1, timeFloor), Y: pt.ObjGap})
		}
		for j := len(points) - 1; j >= 0; j-- {
			bandXYs = append(bandXYs, plotter.XY{X: math.Max(points[j].TimeQ9, timeFloor), Y: points[j].ObjGap})
		}
		band, err := plotter.NewPolygon(bandXYs)
		if err != nil {
			return chart, errors.Trace(err)
		}
		c := colors[i].Color().(color.NRGBA)
		c.A = 76
		band.Color = c
		band.LineStyle.Width = 0
		p.Add(band)
	}

	addHorizontalLine(p, ConvergenceEps, "eps", color.Black)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, chart.Path); err != nil {
		return chart, errors.Annotatef(err, "save %s", chart.Path)
	}
	chart.Figure = p
	return chart, nil
}
