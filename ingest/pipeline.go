// Package ingest converts delimited source files into parquet datasets.
//
// Each entity is converted by the same pipeline: rows come from a Parser,
// are bound to a typed record by the entity's materialize function and are
// appended to a freshly created Dataset. A row that cannot be bound is
// logged and skipped; it never stops the run.
package ingest

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/vegasq/inspectcat/config"
	"github.com/vegasq/inspectcat/model"
	"github.com/vegasq/inspectcat/schema"
)

// Spec binds an entity schema to the function materializing its records.
type Spec[T any] struct {
	Entity      schema.Entity
	Materialize func([]string) (T, error)
}

var (
	Businesses  = Spec[model.Business]{Entity: schema.Business, Materialize: model.BusinessFromFields}
	Violations  = Spec[model.Violation]{Entity: schema.Violation, Materialize: model.ViolationFromFields}
	Inspections = Spec[model.Inspection]{Entity: schema.Inspection, Materialize: model.InspectionFromFields}
)

// Converter carries what every conversion of a run shares.
type Converter struct {
	logger  log.Logger
	metrics *Metrics
	parser  Parser
	runID   string
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger receiving skip diagnostics and summaries.
func WithLogger(l log.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithMetrics sets the counters updated per row.
func WithMetrics(m *Metrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// WithParser replaces the default comma-separated parser.
func WithParser(p Parser) Option {
	return func(c *Converter) { c.parser = p }
}

// WithRunID fixes the run identifier recorded in dataset descriptors.
func WithRunID(id string) Option {
	return func(c *Converter) { c.runID = id }
}

// NewConverter returns a Converter with a fresh run id and a no-op logger.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		logger: log.NewNopLogger(),
		parser: Parser{Comma: ','},
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunID returns the identifier of this conversion run.
func (c *Converter) RunID() string {
	return c.runID
}

// Convert rebuilds the dataset at target from the rows of source.
//
// Creating the dataset, reading the source and writing a materialized
// record are fatal. Rows that fail to materialize are skipped.
func Convert[T any](ctx context.Context, c *Converter, spec Spec[T], source, target string) (report Report, err error) {
	entity := spec.Entity.Name
	report = newReport(entity, source, target, c.runID)
	logger := log.With(c.logger, "entity", entity)

	ds, err := CreateDataset[T](spec.Entity, target, c.runID)
	if err != nil {
		return report, err
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for row, rowErr := range c.parser.Rows(OpenFile(source)) {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrapf(err, "convert %s", entity)
		}
		if rowErr != nil {
			if !IsRowError(rowErr) {
				return report, errors.Wrapf(rowErr, "convert %s", entity)
			}
			c.skip(logger, &report, row, rowErr)
			continue
		}

		rec, matErr := materialize(spec.Materialize, row.Fields)
		if matErr != nil {
			c.skip(logger, &report, row, matErr)
			continue
		}
		if err := ds.Append(rec); err != nil {
			return report, err
		}
		report.Written++
		c.metrics.recordWritten(entity)
	}

	if err := ds.Close(); err != nil {
		return report, err
	}
	level.Info(logger).Log(
		"msg", "dataset written",
		"source", source,
		"target", target,
		"written", report.Written,
		"skipped", report.SkippedCount(),
	)
	return report, nil
}

// ConvertAll converts businesses, violations and inspections one after the
// other and stops at the first fatal error.
func ConvertAll(ctx context.Context, c *Converter, cfg config.Config) ([]Report, error) {
	steps := []func() (Report, error){
		func() (Report, error) {
			return Convert(ctx, c, Businesses, cfg.SourcePath(schema.Business.Name), cfg.DatasetPath(schema.Business.Name))
		},
		func() (Report, error) {
			return Convert(ctx, c, Violations, cfg.SourcePath(schema.Violation.Name), cfg.DatasetPath(schema.Violation.Name))
		},
		func() (Report, error) {
			return Convert(ctx, c, Inspections, cfg.SourcePath(schema.Inspection.Name), cfg.DatasetPath(schema.Inspection.Name))
		},
	}

	reports := make([]Report, 0, len(steps))
	for _, step := range steps {
		r, err := step()
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (c *Converter) skip(logger log.Logger, report *Report, row Row, cause error) {
	kind := KindOf(cause)
	report.Skipped.Add(uint32(row.Line))
	c.metrics.recordSkipped(report.Entity, kind)
	level.Warn(logger).Log(
		"msg", "skipping record",
		"line", row.Line,
		"row", fmt.Sprintf("%q", row.Fields),
		"reason", cause.Error(),
		"kind", kind,
	)
}

// KindOf classifies a per-row failure.
func KindOf(err error) model.Kind {
	var fe *model.FieldError
	switch {
	case errors.As(err, &fe):
		return fe.Kind
	case IsRowError(err):
		return model.KindMalformed
	default:
		return "unknown"
	}
}

// materialize runs fn and turns a panic inside it into a skip.
func materialize[T any](fn func([]string) (T, error), raw []string) (rec T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &model.FieldError{Kind: model.KindPanic, Err: errors.Newf("%v", r)}
		}
	}()
	return fn(raw)
}
