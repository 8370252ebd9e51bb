// Package config holds the compiled-in locations and knobs of inspectcat and
// binds them to command line flags.
package config

import (
	"flag"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/vegasq/inspectcat/schema"
)

// Report formats accepted by -f.
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Config is the full runtime configuration.
type Config struct {
	// SourceDir is joined with relative source file names.
	SourceDir string
	// Sources maps an entity name to its delimited source file.
	Sources map[string]string
	// Datasets maps an entity name to its dataset root directory.
	Datasets map[string]string

	LazyQuotes bool

	Format            string
	HighRiskLimit     int
	LowScoreThreshold int32
	Parallelism       int

	LogLevel    string
	MetricsFile string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SourceDir: "data",
		Sources: map[string]string{
			schema.Business.Name:   "businesses_plus.csv",
			schema.Violation.Name:  "violations_plus.csv",
			schema.Inspection.Name: "inspections_plus.csv",
		},
		Datasets: map[string]string{
			schema.Business.Name:   "/tmp/business",
			schema.Violation.Name:  "/tmp/violations",
			schema.Inspection.Name: "/tmp/inspections",
		},
		Format:            FormatAuto,
		HighRiskLimit:     20,
		LowScoreThreshold: 60,
		Parallelism:       runtime.GOMAXPROCS(0),
		LogLevel:          "info",
	}
}

// SourcePath returns the source file of entity, resolved against SourceDir.
func (c Config) SourcePath(entity string) string {
	p := c.Sources[entity]
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.SourceDir, p)
}

// DatasetPath returns the dataset root of entity.
func (c Config) DatasetPath(entity string) string {
	return c.Datasets[entity]
}

// RegisterFlags binds the configuration to fs. Values already in c become
// the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.SourceDir, "source-dir", c.SourceDir, "Directory holding the source CSV files")
	for _, name := range schema.Names() {
		fs.Var(entryFlag{c.Sources, name}, name+"-csv", entityHelp(name, "Source CSV file for "))
		fs.Var(entryFlag{c.Datasets, name}, name+"-dataset", entityHelp(name, "Dataset directory for "))
	}
	fs.BoolVar(&c.LazyQuotes, "lazy-quotes", c.LazyQuotes, "Accept quotes appearing in unquoted fields")
	fs.StringVar(&c.Format, "f", c.Format, "Output format: auto, table, csv, jsonl")
	fs.IntVar(&c.HighRiskLimit, "high-risk-limit", c.HighRiskLimit, "Maximum rows in the high-risk report")
	fs.Var((*int32Flag)(&c.LowScoreThreshold), "low-score", "Scores strictly below this value are reported")
	fs.IntVar(&c.Parallelism, "parallelism", c.Parallelism, "Workers used by the query engine")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "Write conversion metrics to this file (Prometheus text format)")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	for _, name := range schema.Names() {
		if c.Sources[name] == "" {
			return errors.Newf("missing source file for %s", name)
		}
		if c.Datasets[name] == "" {
			return errors.Newf("missing dataset directory for %s", name)
		}
	}
	switch c.Format {
	case FormatAuto, FormatTable, FormatCSV, FormatJSONL:
	default:
		return errors.Newf("unsupported format %q (supported: auto, table, csv, jsonl)", c.Format)
	}
	if c.HighRiskLimit < 0 {
		return errors.Newf("-high-risk-limit must be non-negative, got %d", c.HighRiskLimit)
	}
	if c.Parallelism < 1 {
		return errors.Newf("-parallelism must be at least 1, got %d", c.Parallelism)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf("unsupported log level %q", c.LogLevel)
	}
	return nil
}
