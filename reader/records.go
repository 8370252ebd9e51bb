package reader

import (
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/inspectcat/schema"
)

const batchSize = 256

// Records returns the records of the dataset at location, read with the
// schema of entity. The sequence is lazy: nothing is opened until it is
// ranged over, and each range reads the dataset again from the start.
func Records[T any](entity schema.Entity, location string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		if err := checkDescriptor(entity, location); err != nil {
			yield(zero, err)
			return
		}
		files, err := DataFiles(location)
		if err != nil {
			yield(zero, err)
			return
		}

		for _, path := range files {
			if !readRecords(path, entity, yield) {
				return
			}
		}
	}
}

// checkDescriptor fails when location was written for another entity.
// Datasets without a descriptor and single data files are accepted.
func checkDescriptor(entity schema.Entity, location string) error {
	if info, err := os.Stat(location); err == nil && !info.IsDir() {
		return nil
	}
	d, err := schema.ReadDescriptor(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "dataset %s", location)
	}
	if !strings.EqualFold(d.Entity, entity.Name) {
		return errors.Newf("dataset %s holds %s records, not %s", location, d.Entity, entity.Name)
	}
	return nil
}

// readRecords yields the records of one file and reports whether the caller
// wants more.
func readRecords[T any](path string, entity schema.Entity, yield func(T, error) bool) bool {
	var zero T

	r, err := NewReader(path)
	if err != nil {
		yield(zero, err)
		return false
	}
	defer func() { _ = r.Close() }()

	if err := checkColumns(entity, r.Schema()); err != nil {
		yield(zero, errors.Wrapf(err, "data file %s", path))
		return false
	}

	// Rows are bound by the struct tags of T; the entity schema only
	// validates the file above.
	rows := parquet.NewGenericReader[T](r.pqFile)
	defer func() { _ = rows.Close() }()

	buf := make([]T, batchSize)
	for {
		n, err := rows.Read(buf)
		for i := 0; i < n; i++ {
			if !yield(buf[i], nil) {
				return false
			}
		}
		if errors.Is(err, io.EOF) {
			return true
		}
		if err != nil {
			yield(zero, errors.Wrapf(err, "read %s", path))
			return false
		}
		if n == 0 {
			return true
		}
	}
}

// checkColumns verifies that every column of entity is stored in the file.
func checkColumns(entity schema.Entity, fileSchema *parquet.Schema) error {
	var missing []string
	for _, f := range entity.Fields {
		if _, ok := fileSchema.Lookup(f.Column); !ok {
			missing = append(missing, f.Column)
		}
	}
	if len(missing) > 0 {
		return errors.Newf("missing %s columns: %s", entity.Name, strings.Join(missing, ", "))
	}
	return nil
}
