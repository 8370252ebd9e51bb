package ingest

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/inspectcat/schema"
)

// Compression is the codec name recorded for every dataset; data files are
// written with parquet's GZIP (deflate) codec.
const Compression = "gzip"

// Dataset is a freshly created columnar dataset accepting appends.
type Dataset[T any] struct {
	root   string
	path   string
	file   *os.File
	writer *parquet.GenericWriter[T]
	buf    [1]T
	count  int64
	closed bool
}

// CreateDataset destroys whatever exists at root and creates an empty dataset
// bound to entity's schema.
func CreateDataset[T any](entity schema.Entity, root, runID string) (*Dataset[T], error) {
	if err := RemoveTree(root); err != nil {
		return nil, errors.Wrapf(err, "prepare dataset location %s", root)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create dataset location %s", root)
	}
	if err := schema.WriteDescriptor(root, schema.NewDescriptor(entity, Compression, runID)); err != nil {
		return nil, errors.Wrapf(err, "create dataset %s", root)
	}

	path := filepath.Join(root, uuid.NewString()+".parquet")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "create data file %s", path)
	}

	writer := parquet.NewGenericWriter[T](file,
		entity.Schema(),
		parquet.Compression(&parquet.Gzip),
	)

	return &Dataset[T]{
		root:   root,
		path:   path,
		file:   file,
		writer: writer,
	}, nil
}

// Append writes one record.
func (d *Dataset[T]) Append(rec T) error {
	if d.closed {
		return errors.Newf("append to closed dataset %s", d.root)
	}
	d.buf[0] = rec
	if _, err := d.writer.Write(d.buf[:]); err != nil {
		return errors.Wrapf(err, "write record %d to %s", d.count, d.path)
	}
	d.count++
	return nil
}

// Count returns the number of records appended so far.
func (d *Dataset[T]) Count() int64 {
	return d.count
}

// Path returns the data file being written.
func (d *Dataset[T]) Path() string {
	return d.path
}

// Close flushes the writer and makes the data file durable. It is safe to
// call Close multiple times.
func (d *Dataset[T]) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	werr := d.writer.Close()
	var serr error
	if werr == nil {
		serr = d.file.Sync()
	}
	cerr := d.file.Close()

	switch {
	case werr != nil:
		return errors.Wrapf(werr, "flush %s", d.path)
	case serr != nil:
		return errors.Wrapf(serr, "sync %s", d.path)
	case cerr != nil:
		return errors.Wrapf(cerr, "close %s", d.path)
	}
	return nil
}

// RemoveTree deletes root and everything below it. Files are removed while
// walking and directories afterwards, deepest first. Symbolic links are
// removed, never followed. A missing root is not an error.
func RemoveTree(root string) error {
	info, err := os.Lstat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return os.Remove(root)
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		return os.Remove(path)
	})
	if err != nil {
		return err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			return err
		}
	}
	return nil
}
