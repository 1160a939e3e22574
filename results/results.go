// Package results holds the raw observation table produced by a benchmark
// run. The table is read-only from the plotting side: aggregators derive
// per-solver series from it but never mutate it.
package results

import "fmt"

// Observation is one row of raw results: a single sample of one solver run
// on one (dataset, objective) pair, recorded at progress marker StopVal.
type Observation struct {
	Dataset   string
	Objective string
	Solver    string
	StopVal   float64
	Time      float64
	Obj       float64
}

// Table is an ordered collection of observations.
type Table []Observation

func allTests(o Observation, tests ...func(Observation) bool) bool {
	for _, test := range tests {
		if !test(o) {
			return false
		}
	}
	return true
}

// Filter returns the rows matching every test, in table order.
func (t Table) Filter(tests ...func(Observation) bool) Table {
	var result Table
	for _, o := range t {
		if allTests(o, tests...) {
			result = append(result, o)
		}
	}
	return result
}

// Slice restricts the table to one dataset and one objective.
func (t Table) Slice(dataset, objective string) Table {
	return t.Filter(func(o Observation) bool {
		return o.Dataset == dataset && o.Objective == objective
	})
}

func firstSeen(t Table, key func(Observation) string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, o := range t {
		if k := key(o); !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	return order
}

// Datasets returns the distinct dataset names in first-seen order.
func (t Table) Datasets() []string {
	return firstSeen(t, func(o Observation) string { return o.Dataset })
}

// Objectives returns the distinct objective names in first-seen order.
func (t Table) Objectives() []string {
	return firstSeen(t, func(o Observation) string { return o.Objective })
}

// Solvers returns the distinct solver names in first-seen order.
func (t Table) Solvers() []string {
	return firstSeen(t, func(o Observation) string { return o.Solver })
}

// MinObj returns the smallest objective value in the table. The table must
// be non-empty.
func (t Table) MinObj() float64 {
	min := t[0].Obj
	for _, o := range t[1:] {
		if o.Obj < min {
			min = o.Obj
		}
	}
	return min
}

// MaxTime returns the largest elapsed time in the table. The table must be
// non-empty.
func (t Table) MaxTime() float64 {
	max := t[0].Time
	for _, o := range t[1:] {
		if o.Time > max {
			max = o.Time
		}
	}
	return max
}

// EmptySliceError reports a (dataset, objective) slice with no rows. No
// optimum can be derived from it, so the corresponding charts are skipped.
type EmptySliceError struct {
	Dataset   string
	Objective string
}

func (e *EmptySliceError) Error() string {
	return fmt.Sprintf("empty result slice for dataset %q, objective %q", e.Dataset, e.Objective)
}
