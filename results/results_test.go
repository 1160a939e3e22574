package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		{Dataset: "simulated", Objective: "lasso", Solver: "A", StopVal: 1, Time: 0.5, Obj: 10},
		{Dataset: "simulated", Objective: "lasso", Solver: "B", StopVal: 1, Time: 0.7, Obj: 12},
		{Dataset: "boston", Objective: "ridge", Solver: "A", StopVal: 1, Time: 0.2, Obj: 3},
		{Dataset: "simulated", Objective: "ridge", Solver: "A", StopVal: 2, Time: 0.9, Obj: 4},
	}
}

func TestFirstSeenOrder(t *testing.T) {
	table := sampleTable()
	require.Equal(t, []string{"simulated", "boston"}, table.Datasets())
	require.Equal(t, []string{"lasso", "ridge"}, table.Objectives())
	require.Equal(t, []string{"A", "B"}, table.Solvers())
}

func TestSlice(t *testing.T) {
	slice := sampleTable().Slice("simulated", "lasso")
	require.Len(t, slice, 2)
	for _, o := range slice {
		require.Equal(t, "simulated", o.Dataset)
		require.Equal(t, "lasso", o.Objective)
	}
	require.Empty(t, sampleTable().Slice("boston", "lasso"))
}

func TestMinObjMaxTime(t *testing.T) {
	table := sampleTable()
	require.Equal(t, 3.0, table.MinObj())
	require.Equal(t, 0.9, table.MaxTime())
}

func TestLoadCSV(t *testing.T) {
	content := strings.Join([]string{
		"dataset,objective,solver,stop_val,time,obj",
		"simulated,lasso,A,1,0.5,10",
		"simulated,lasso,A,2,1.5,1.25",
	}, "\n")
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, Observation{Dataset: "simulated", Objective: "lasso", Solver: "A", StopVal: 2, Time: 1.5, Obj: 1.25}, table[1])
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("solver,dataset\nA,simulated\n"))
	require.Error(t, err)
}

func TestReadCSVRejectsEmptyTable(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("dataset,objective,solver,stop_val,time,obj\n"))
	require.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	table := sampleTable()
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, table))
	parsed, err := ReadCSV(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Equal(t, table, parsed)
}

func TestEmptySliceError(t *testing.T) {
	err := &EmptySliceError{Dataset: "simulated", Objective: "lasso"}
	require.Contains(t, err.Error(), "simulated")
	require.Contains(t, err.Error(), "lasso")
}
