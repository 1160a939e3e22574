package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pingcap/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up inside the benchmark folder.
const ConfigFileName = "config.yaml"

// Config holds the per-benchmark plotting settings.
type Config struct {
	// Plots lists the chart kinds to produce. Kinds the driver does not
	// recognize are ignored.
	Plots []string `yaml:"Plots"`
	// OutputDir is where chart files are written, relative to the benchmark
	// folder unless absolute.
	OutputDir string `yaml:"OutputDir"`
	// ToleranceEps is the precision threshold of the completion-time
	// histogram.
	ToleranceEps float64 `yaml:"ToleranceEps"`
	// PercentilesExport enables the per-solver completion-time percentile
	// files next to the charts.
	PercentilesExport bool `yaml:"PercentilesExport"`
}

// GetDefaultConfig returns the settings used when the benchmark folder
// carries no config file.
func GetDefaultConfig() Config {
	return Config{
		Plots:             []string{"convergence_curve", "histogram"},
		OutputDir:         "output",
		ToleranceEps:      1e-6,
		PercentilesExport: false,
	}
}

// NewConfig loads the settings for a benchmark folder, populating missing
// fields with defaults. A missing config file is not an error.
func NewConfig(benchmark string) (*Config, error) {
	defaultConfig := GetDefaultConfig()

	yamlFile, err := os.ReadFile(filepath.Join(benchmark, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &defaultConfig, nil
		}
		return &defaultConfig, errors.Trace(err)
	}

	if err = yaml.Unmarshal(yamlFile, &defaultConfig); err != nil {
		return nil, errors.Annotatef(err, "parse %s", ConfigFileName)
	}

	return &defaultConfig, nil
}

// ApplyProperties overrides settings from name=value pairs given on the
// command line.
func (c *Config) ApplyProperties(props *properties.Properties) {
	if plots, ok := props.Get("plots"); ok {
		c.Plots = c.Plots[:0]
		for _, kind := range strings.Split(plots, ",") {
			if kind = strings.TrimSpace(kind); kind != "" {
				c.Plots = append(c.Plots, kind)
			}
		}
	}
	c.OutputDir = props.GetString("output_dir", c.OutputDir)
	c.ToleranceEps = props.GetFloat64("tolerance_eps", c.ToleranceEps)
	c.PercentilesExport = props.GetBool("percentiles_export", c.PercentilesExport)
}

// PlotKinds returns the chart kinds configured for a benchmark folder.
func PlotKinds(benchmark string) []string {
	cfg, err := NewConfig(benchmark)
	if err != nil {
		return GetDefaultConfig().Plots
	}
	return cfg.Plots
}

// ResolveOutputDir returns the chart output directory for a benchmark
// folder, creating it if absent.
func (c *Config) ResolveOutputDir(benchmark string) (string, error) {
	dir := c.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(benchmark, dir)
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Annotatef(err, "create output dir %s", dir)
	}
	return dir, nil
}
