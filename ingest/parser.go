package ingest

import (
	"encoding/csv"
	"io"
	"iter"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is one raw record of a delimited source.
type Row struct {
	// Line is the 1-based line on which the record starts.
	Line   int
	Fields []string
}

// Opener opens a fresh stream over a source. Every iteration of a parsed
// sequence calls it once.
type Opener func() (io.ReadCloser, error)

// OpenFile returns an Opener for the file at path.
func OpenFile(path string) Opener {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open source %s", path)
		}
		return f, nil
	}
}

// Parser reads comma-separated sources with quoted values. The first record
// of a source is a header and is always discarded.
type Parser struct {
	Comma      rune
	LazyQuotes bool
}

// Rows returns the data records of the source. Each range over the sequence
// reopens the source and closes it when iteration ends.
//
// A record that cannot be tokenized is yielded with a *csv.ParseError and
// iteration continues; any other error ends the sequence.
func (p Parser) Rows(open Opener) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		src, err := open()
		if err != nil {
			yield(Row{}, err)
			return
		}
		defer func() { _ = src.Close() }()

		cr := csv.NewReader(transform.NewReader(src, unicode.BOMOverride(transform.Nop)))
		if p.Comma != 0 {
			cr.Comma = p.Comma
		}
		cr.LazyQuotes = p.LazyQuotes
		cr.FieldsPerRecord = -1

		// Header
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if !IsRowError(err) {
				yield(Row{}, errors.Wrap(err, "read header"))
				return
			}
		}

		for {
			fields, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var pe *csv.ParseError
				if errors.As(err, &pe) {
					if !yield(Row{Line: pe.StartLine}, err) {
						return
					}
					continue
				}
				yield(Row{}, errors.Wrap(err, "read record"))
				return
			}

			line, _ := cr.FieldPos(0)
			if !yield(Row{Line: line, Fields: fields}, nil) {
				return
			}
		}
	}
}

// IsRowError reports whether err affects a single record only.
func IsRowError(err error) bool {
	var pe *csv.ParseError
	return errors.As(err, &pe)
}
