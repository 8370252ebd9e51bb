package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func collectRows(t *testing.T, p Parser, open Opener) ([]Row, []error) {
	t.Helper()
	var rows []Row
	var errs []error
	for row, err := range p.Rows(open) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}

func TestParserRows(t *testing.T) {
	path := writeSource(t, t.TempDir(), "src.csv",
		"id,text\n"+
			"1,\"x, y\"\n"+
			"2,\"multi\nline\"\n"+
			"3,z\n")

	rows, errs := collectRows(t, Parser{Comma: ','}, OpenFile(path))
	require.Empty(t, errs)
	require.Equal(t, []Row{
		{Line: 2, Fields: []string{"1", "x, y"}},
		{Line: 3, Fields: []string{"2", "multi\nline"}},
		{Line: 5, Fields: []string{"3", "z"}},
	}, rows)
}

func TestParserStripsBOM(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bom.csv", "\ufeff\"id\",text\n1,a\n")

	rows, errs := collectRows(t, Parser{}, OpenFile(path))
	require.Empty(t, errs)
	require.Equal(t, []Row{{Line: 2, Fields: []string{"1", "a"}}}, rows)
}

func TestParserMalformedLine(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.csv",
		"id,text\n"+
			"1,a\"b\n"+
			"2,ok\n")

	var rows []Row
	var rowErrs []error
	for row, err := range (Parser{}).Rows(OpenFile(path)) {
		if err != nil {
			require.True(t, IsRowError(err))
			rowErrs = append(rowErrs, err)
			require.Equal(t, 2, row.Line)
			continue
		}
		rows = append(rows, row)
	}
	require.Len(t, rowErrs, 1)

	var pe *csv.ParseError
	require.True(t, errors.As(rowErrs[0], &pe))
	require.ErrorIs(t, pe.Err, csv.ErrBareQuote)
	require.Equal(t, []Row{{Line: 3, Fields: []string{"2", "ok"}}}, rows)
}

func TestParserLazyQuotes(t *testing.T) {
	path := writeSource(t, t.TempDir(), "lazy.csv", "id,text\n1,a\"b\n")

	rows, errs := collectRows(t, Parser{LazyQuotes: true}, OpenFile(path))
	require.Empty(t, errs)
	require.Equal(t, []Row{{Line: 2, Fields: []string{"1", "a\"b"}}}, rows)
}

func TestParserEmptyAndHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"empty.csv":  "",
		"header.csv": "id,text\n",
	} {
		t.Run(name, func(t *testing.T) {
			rows, errs := collectRows(t, Parser{}, OpenFile(writeSource(t, dir, name, content)))
			require.Empty(t, errs)
			require.Empty(t, rows)
		})
	}
}

func TestParserOpenError(t *testing.T) {
	_, errs := collectRows(t, Parser{}, OpenFile(filepath.Join(t.TempDir(), "missing.csv")))
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], os.ErrNotExist)
	require.False(t, IsRowError(errs[0]))
}

func TestParserRestartable(t *testing.T) {
	path := writeSource(t, t.TempDir(), "src.csv", "id\n1\n2\n")
	seq := Parser{}.Rows(OpenFile(path))

	first, _ := collectSeq(seq)
	second, _ := collectSeq(seq)
	require.Len(t, first, 2)
	require.Equal(t, first, second)
}

func collectSeq(seq func(func(Row, error) bool)) ([]Row, error) {
	var rows []Row
	for row, err := range seq {
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type trackingCloser struct {
	io.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func TestParserEarlyBreakCloses(t *testing.T) {
	src := &trackingCloser{Reader: strings.NewReader("id\n1\n2\n3\n")}
	open := func() (io.ReadCloser, error) { return src, nil }

	for row, err := range (Parser{}).Rows(open) {
		require.NoError(t, err)
		require.Equal(t, 2, row.Line)
		break
	}
	require.True(t, src.closed)
}
