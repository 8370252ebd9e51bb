package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/vegasq/inspectcat/config"
	"github.com/vegasq/inspectcat/ingest"
	"github.com/vegasq/inspectcat/model"
	"github.com/vegasq/inspectcat/output"
	"github.com/vegasq/inspectcat/query"
	"github.com/vegasq/inspectcat/reader"
	"github.com/vegasq/inspectcat/schema"
)

const usage = `Usage: %[1]s <command> [options] [entity]

Convert food inspection CSV exports to parquet datasets and report on them.

Commands:
  convert          rebuild the business, violation and inspection datasets
  report           print the high-risk and low-score restaurant reports
  dump <entity>    print the rows of a converted dataset
  schema <entity>  print the column metadata of a converted dataset

IMPORTANT: All flags must come BEFORE the entity argument.

Examples:
  %[1]s convert -source-dir ./data
  %[1]s report -f table
  %[1]s dump -f csv -limit 10 violation
  %[1]s schema business

Run '%[1]s <command> -h' for the options of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintf(stderr, usage, "inspectcat")
		return errors.New("missing command")
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "convert":
		return runConvert(ctx, args, stdout, stderr)
	case "report":
		return runReport(ctx, args, stdout, stderr)
	case "dump":
		return runDump(args, stdout, stderr)
	case "schema":
		return runSchema(args, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprintf(stdout, usage, "inspectcat")
		return nil
	default:
		fmt.Fprintf(stderr, usage, "inspectcat")
		return errors.Newf("unknown command %q", cmd)
	}
}

// parseFlags registers the shared configuration plus extra on a fresh flag
// set, parses args and validates the result.
func parseFlags(name string, args []string, stderr io.Writer, extra func(*flag.FlagSet)) (config.Config, *flag.FlagSet, error) {
	cfg := config.Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return cfg, fs, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fs, err
	}
	return cfg, fs, nil
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, level.Allow(level.ParseDefault(lvl, level.InfoValue())))
}

// newFormatter resolves "auto" to a text table on a terminal and CSV otherwise.
func newFormatter(format string, w io.Writer) (output.Formatter, error) {
	if format == config.FormatAuto {
		format = config.FormatCSV
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = config.FormatTable
		}
	}
	return output.New(format, w)
}

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, _, err := parseFlags("convert", args, stderr, nil)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.LogLevel)

	reg := prometheus.NewRegistry()
	converter := ingest.NewConverter(
		ingest.WithLogger(logger),
		ingest.WithMetrics(ingest.NewMetrics(reg)),
		ingest.WithParser(ingest.Parser{Comma: ',', LazyQuotes: cfg.LazyQuotes}),
	)
	level.Info(logger).Log("msg", "conversion started", "run_id", converter.RunID(), "source_dir", cfg.SourceDir)

	reports, convErr := ingest.ConvertAll(ctx, converter, cfg)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			level.Error(logger).Log("msg", "failed to write metrics", "file", cfg.MetricsFile, "err", err)
		}
	}
	if convErr != nil {
		return convErr
	}

	formatter, err := newFormatter(cfg.Format, stdout)
	if err != nil {
		return err
	}
	t := &output.Table{
		Title:   "CONVERSION SUMMARY",
		Columns: []string{"entity", "source", "target", "written", "skipped"},
	}
	for _, r := range reports {
		t.Rows = append(t.Rows, []interface{}{r.Entity, r.Source, r.Target, r.Written, r.SkippedCount()})
	}
	return formatter.Format(t)
}

func runReport(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, _, err := parseFlags("report", args, stderr, nil)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.LogLevel)

	formatter, err := newFormatter(cfg.Format, stdout)
	if err != nil {
		return err
	}

	env := query.NewEnvironment(query.WithParallelism(cfg.Parallelism), query.WithLogger(logger))
	businesses := query.FromSeq(env, schema.Business.Name,
		reader.Records[model.Business](schema.Business, cfg.DatasetPath(schema.Business.Name)))
	violations := query.FromSeq(env, schema.Violation.Name,
		reader.Records[model.Violation](schema.Violation, cfg.DatasetPath(schema.Violation.Name)))
	inspections := query.FromSeq(env, schema.Inspection.Name,
		reader.Records[model.Inspection](schema.Inspection, cfg.DatasetPath(schema.Inspection.Name)))

	if err := query.PrintHighRiskPlaces(ctx, formatter, businesses, violations, cfg.HighRiskLimit); err != nil {
		return errors.Wrap(err, "high-risk report")
	}
	if err := query.PrintLowScorePlaces(ctx, formatter, businesses, inspections, cfg.LowScoreThreshold); err != nil {
		return errors.Wrap(err, "low-score report")
	}
	return nil
}

// entityArg returns the single positional entity argument.
func entityArg(fs *flag.FlagSet) (schema.Entity, error) {
	if fs.NArg() != 1 {
		return schema.Entity{}, errors.Newf("expected one entity argument (%s), got %d",
			strings.Join(schema.Names(), ", "), fs.NArg())
	}
	return schema.Lookup(fs.Arg(0))
}

func runDump(args []string, stdout, stderr io.Writer) error {
	var limit int
	cfg, fs, err := parseFlags("dump", args, stderr, func(fs *flag.FlagSet) {
		fs.IntVar(&limit, "limit", 0, "Limit number of rows (0 = unlimited)")
	})
	if err != nil {
		return err
	}
	if limit < 0 {
		return errors.Newf("-limit must be non-negative, got %d", limit)
	}
	entity, err := entityArg(fs)
	if err != nil {
		return err
	}

	location := cfg.DatasetPath(entity.Name)
	rows, err := reader.ReadDataset(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Newf("dataset '%s' not found; run convert first", location)
		}
		return err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	formatter, err := newFormatter(cfg.Format, stdout)
	if err != nil {
		return err
	}
	return formatter.Format(output.FromMaps(strings.ToUpper(entity.Name), rows))
}

func runSchema(args []string, stdout, stderr io.Writer) error {
	cfg, fs, err := parseFlags("schema", args, stderr, nil)
	if err != nil {
		return err
	}
	entity, err := entityArg(fs)
	if err != nil {
		return err
	}

	infos, err := reader.DescribeDataset(cfg.DatasetPath(entity.Name))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cfg.Format, stdout)
	if err != nil {
		return err
	}
	t := &output.Table{
		Title:   strings.ToUpper(entity.Name) + " SCHEMA",
		Columns: []string{"name", "type", "physical_type", "logical_type", "required", "optional", "repeated"},
	}
	for _, info := range infos {
		t.Rows = append(t.Rows, []interface{}{
			info.Name, info.Type, info.PhysicalType, info.LogicalType,
			info.Required, info.Optional, info.Repeated,
		})
	}
	return formatter.Format(t)
}
