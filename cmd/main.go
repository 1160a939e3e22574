package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/magiconair/properties"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	bconfig "github.com/pbarbarant/benchopt/config"
	"github.com/pbarbarant/benchopt/measurement"
	"github.com/pbarbarant/benchopt/plotting"
	"github.com/pbarbarant/benchopt/results"
)

var (
	propertyValues []string
	resultsFile    string

	rootCmd = &cobra.Command{
		Use:   "benchopt",
		Short: "Visualize timed-optimization benchmark results",
	}

	plotCmd = &cobra.Command{
		Use:   "plot <benchmark-dir>",
		Short: "Render the configured charts for a benchmark run",
		Args:  cobra.ExactArgs(1),
		Run:   runPlot,
	}
)

func init() {
	plotCmd.Flags().StringSliceVarP(&propertyValues, "prop", "p", nil, "override config, expected format `name=value`")
	plotCmd.Flags().StringVar(&resultsFile, "results", "", "results CSV (default <benchmark-dir>/results.csv)")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) {
	benchmark := args[0]

	cfg, err := bconfig.NewConfig(benchmark)
	if err != nil {
		log.Fatalf("load benchmark config failed %v", err)
	}

	props := properties.NewProperties()
	for _, prop := range propertyValues {
		seps := strings.SplitN(prop, "=", 2)
		if len(seps) != 2 {
			log.Fatalf("bad property: `%s`, expected format `name=value`", prop)
		}
		if _, _, err = props.Set(seps[0], seps[1]); err != nil {
			log.Fatalf("bad property: `%s`: %v", prop, err)
		}
	}
	cfg.ApplyProperties(props)

	if resultsFile == "" {
		resultsFile = filepath.Join(benchmark, "results.csv")
	}
	table, err := results.LoadCSV(resultsFile)
	if err != nil {
		log.Fatalf("load results failed %v", err)
	}
	fmt.Printf("Loaded %s observations from %s\n", humanize.Comma(int64(len(table))), resultsFile)

	outDir, err := cfg.ResolveOutputDir(benchmark)
	if err != nil {
		log.Fatalf("resolve output dir failed %v", err)
	}

	fmt.Printf("Plotting benchmark %s...\n", benchmark)
	charts, err := plotting.RenderAll(table, benchmark, cfg.Plots, outDir, cfg.ToleranceEps)
	fmt.Printf("Rendered %d charts into %s\n", len(charts), outDir)

	printToleranceSummary(table, cfg.ToleranceEps)

	if cfg.PercentilesExport {
		histograms := measurement.NewHistograms()
		for _, o := range table {
			histograms.Measure(o.Solver, o.Time)
		}
		histograms.Output(os.Stdout)
		if exportErr := histograms.ExportPercentiles(outDir); exportErr != nil {
			log.Fatalf("export percentiles failed %v", exportErr)
		}
	}

	if err != nil {
		log.Fatalf("some charts failed to render:\n%v", err)
	}
}

// printToleranceSummary surfaces the per-solver tolerance outcome, including
// solvers that never reached the precision threshold.
func printToleranceSummary(table results.Table, eps float64) {
	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"Dataset", "Objective", "Solver", "Outcome", "Stop Val", "Mean Time(s)"})

	for _, dataset := range table.Datasets() {
		name := dataset
		byDataset := table.Filter(func(o results.Observation) bool { return o.Dataset == name })
		for _, objective := range byDataset.Objectives() {
			slice := byDataset.Slice(dataset, objective)
			outcomes, err := plotting.AggregateHistogram(slice, eps)
			if err != nil {
				continue
			}
			for _, solver := range slice.Solvers() {
				outcome := outcomes[solver]
				if outcome.Reached {
					summary.Append([]string{
						dataset, objective, solver, "reached",
						fmt.Sprintf("%g", outcome.StopVal),
						fmt.Sprintf("%.4f", outcome.MeanTime),
					})
				} else {
					summary.Append([]string{
						dataset, objective, solver,
						fmt.Sprintf("did not converge at precision %g", outcome.Eps),
						"-", "-",
					})
				}
			}
		}
	}
	summary.Render()
}

func main() {
	cobra.EnableCommandSorting = false
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
