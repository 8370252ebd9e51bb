package reader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"
)

// FileColumn is added to rows read from datasets with several data files.
const FileColumn = "_file"

// maxFiles bounds how many data files a single read may open.
const maxFiles = 1000

// Reader reads a single parquet data file.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens the parquet file at path.
//
// Returns an error if the file doesn't exist or is not a valid parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "failed to stat file")
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrapf(err, "failed to open parquet file %s", path)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows of the file into memory, each as a map from column
// name to value.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, r.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrap(err, "failed to read row")
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the schema stored in the file.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// NumRows returns the number of rows in the file.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// Close releases the file handle. It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// DataFiles lists the parquet data files below location in lexical order.
// Entries whose name starts with "." or "_" are skipped together with
// everything below them. A location naming a single file is returned as is.
func DataFiles(location string) ([]string, error) {
	info, err := os.Stat(location)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", location)
	}
	if !info.IsDir() {
		return []string{location}, nil
	}

	var files []string
	err = filepath.WalkDir(location, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == location {
			return nil
		}
		if hidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".parquet") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list dataset %s", location)
	}
	if len(files) > maxFiles {
		return nil, errors.Newf("dataset %s has too many data files (%d), maximum is %d", location, len(files), maxFiles)
	}
	return files, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// ReadDataset reads every row of a dataset as maps.
//
// location may be a dataset directory, a single parquet file or a glob
// pattern over parquet files. When more than one file is read, each row is
// tagged with FileColumn.
func ReadDataset(location string) ([]map[string]interface{}, error) {
	var files []string
	if strings.ContainsAny(location, "*?[") {
		matches, err := filepath.Glob(location)
		if err != nil {
			return nil, errors.Wrap(err, "invalid glob pattern")
		}
		if len(matches) == 0 {
			return nil, errors.Newf("no files match pattern: %s", location)
		}
		if len(matches) > maxFiles {
			return nil, errors.Newf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
		}
		files = matches
	} else {
		var err error
		if files, err = DataFiles(location); err != nil {
			return nil, err
		}
	}

	var allRows []map[string]interface{}
	for _, path := range files {
		rows, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if len(files) > 1 {
			for i := range rows {
				rows[i][FileColumn] = path
			}
		}
		allRows = append(allRows, rows...)
	}
	return allRows, nil
}

func readFile(path string) ([]map[string]interface{}, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	rows, readErr := r.ReadAll()
	closeErr := r.Close()

	if readErr != nil {
		return nil, errors.Wrapf(readErr, "failed to read rows from %s", path)
	}
	if closeErr != nil {
		return nil, errors.Wrapf(closeErr, "failed to close %s", path)
	}
	return rows, nil
}
