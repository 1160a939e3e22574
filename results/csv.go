package results

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pingcap/errors"
)

var csvHeader = []string{"dataset", "objective", "solver", "stop_val", "time", "obj"}

// LoadCSV reads a result table persisted by the benchmark runner. The file
// must carry the canonical header (dataset,objective,solver,stop_val,time,obj).
func LoadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open results file %s", path)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Annotatef(err, "read results file %s", path)
	}
	return table, nil
}

// ReadCSV parses a result table from r.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Annotate(err, "read header")
	}
	if len(header) != len(csvHeader) {
		return nil, errors.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, errors.Errorf("column %d: expected %q, got %q", i, name, header[i])
		}
	}

	var table Table
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Annotatef(err, "line %d", line)
		}
		o := Observation{
			Dataset:   record[0],
			Objective: record[1],
			Solver:    record[2],
		}
		if o.StopVal, err = strconv.ParseFloat(record[3], 64); err != nil {
			return nil, errors.Annotatef(err, "line %d: stop_val", line)
		}
		if o.Time, err = strconv.ParseFloat(record[4], 64); err != nil {
			return nil, errors.Annotatef(err, "line %d: time", line)
		}
		if o.Obj, err = strconv.ParseFloat(record[5], 64); err != nil {
			return nil, errors.Annotatef(err, "line %d: obj", line)
		}
		table = append(table, o)
	}
	if len(table) == 0 {
		return nil, errors.New("results file contains no observations")
	}
	return table, nil
}

// WriteCSV persists a result table in the canonical column order, header
// first.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return errors.Annotate(err, "write header")
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, o := range table {
		record := []string{o.Dataset, o.Objective, o.Solver, format(o.StopVal), format(o.Time), format(o.Obj)}
		if err := writer.Write(record); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}
