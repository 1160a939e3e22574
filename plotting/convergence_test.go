package plotting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pbarbarant/benchopt/results"
)

func TestAggregateConvergenceDisjointStopVals(t *testing.T) {
	slice := results.Table{
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 0.1, Obj: 10},
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 2, Time: 0.3, Obj: 5},
		{Dataset: "d", Objective: "o", Solver: "B", StopVal: 4, Time: 0.2, Obj: 8},
		{Dataset: "d", Objective: "o", Solver: "B", StopVal: 3, Time: 0.15, Obj: 9},
	}
	curves, err := AggregateConvergence(slice)
	require.NoError(t, err)
	require.Len(t, curves, 2)
	require.Len(t, curves["A"], 2)
	require.Len(t, curves["B"], 2)

	// ascending stop_val order, one entry per distinct marker
	require.Equal(t, 1.0, curves["A"][0].StopVal)
	require.Equal(t, 2.0, curves["A"][1].StopVal)
	require.Equal(t, 3.0, curves["B"][0].StopVal)
	require.Equal(t, 4.0, curves["B"][1].StopVal)

	// c_star sits strictly below the global minimum, so every gap is positive
	for _, points := range curves {
		for _, pt := range points {
			require.Greater(t, pt.ObjGap, 0.0)
		}
	}
}

func TestAggregateConvergenceGroupStats(t *testing.T) {
	slice := results.Table{
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 1, Obj: 5},
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 2, Obj: 6},
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 3, Obj: 7},
	}
	curves, err := AggregateConvergence(slice)
	require.NoError(t, err)
	require.Len(t, curves["A"], 1)

	pt := curves["A"][0]
	require.Equal(t, 2.0, pt.TimeMedian)
	require.InDelta(t, 1.2, pt.TimeQ1, 1e-12)
	require.InDelta(t, 2.8, pt.TimeQ9, 1e-12)
	// median obj 6 minus c_star (5 - eps)
	require.InDelta(t, 1.0, pt.ObjGap, 1e-9)
}

func TestAggregateConvergenceEvenGroupInterpolates(t *testing.T) {
	// two runs at one marker: the group stats interpolate between them
	// instead of snapping to a sample
	slice := results.Table{
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 1, Obj: 4},
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 2, Obj: 6},
	}
	curves, err := AggregateConvergence(slice)
	require.NoError(t, err)
	require.Len(t, curves["A"], 1)

	pt := curves["A"][0]
	require.InDelta(t, 1.5, pt.TimeMedian, 1e-12)
	require.InDelta(t, 1.1, pt.TimeQ1, 1e-12)
	require.InDelta(t, 1.9, pt.TimeQ9, 1e-12)
	// median obj 5 minus c_star (4 - eps)
	require.InDelta(t, 1.0, pt.ObjGap, 1e-9)
}

func TestQuantileInterpolation(t *testing.T) {
	require.InDelta(t, 1.5, quantile(0.5, []float64{2, 1}), 1e-12)
	require.InDelta(t, 2.0, quantile(0.5, []float64{1, 2, 3}), 1e-12)
	require.InDelta(t, 1.2, quantile(0.1, []float64{1, 2, 3}), 1e-12)
	require.InDelta(t, 2.8, quantile(0.9, []float64{1, 2, 3}), 1e-12)
	require.Equal(t, 7.0, quantile(1, []float64{3, 7}))
	require.Equal(t, 5.0, quantile(0.5, []float64{5}))
}

func TestAggregateConvergenceEmptySlice(t *testing.T) {
	_, err := AggregateConvergence(nil)
	var emptyErr *results.EmptySliceError
	require.True(t, errors.As(err, &emptyErr))
}

func TestConvergencePlotWritesFile(t *testing.T) {
	slice := results.Table{
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 1, Time: 0.1, Obj: 10},
		{Dataset: "d", Objective: "o", Solver: "A", StopVal: 2, Time: 0.4, Obj: 2},
		{Dataset: "d", Objective: "o", Solver: "B", StopVal: 1, Time: 0.2, Obj: 11},
		{Dataset: "d", Objective: "o", Solver: "B", StopVal: 2, Time: 0.5, Obj: 3},
	}
	outDir := t.TempDir()
	chart, err := ConvergencePlot(slice, "bench", outDir)
	require.NoError(t, err)
	require.Equal(t, KindConvergenceCurve, chart.Kind)
	require.NotNil(t, chart.Figure)
	require.FileExists(t, chart.Path)
}
