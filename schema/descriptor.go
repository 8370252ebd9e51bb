package schema

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/encoding/json"
)

const (
	// MetadataDir holds dataset bookkeeping next to the data files.
	MetadataDir = ".metadata"
	// DescriptorFile is the descriptor's name inside MetadataDir.
	DescriptorFile = "descriptor.json"

	FormatParquet = "parquet"
)

// Descriptor records how a dataset directory was created.
type Descriptor struct {
	Entity      string            `json:"entity"`
	Format      string            `json:"format"`
	Compression string            `json:"compression"`
	Fields      []DescriptorField `json:"fields"`
	RunID       string            `json:"run_id"`
	Created     time.Time         `json:"created"`
}

// DescriptorField is the serialized form of a Field.
type DescriptorField struct {
	Name   string `json:"name"`
	Column string `json:"column"`
	Type   string `json:"type"`
}

// NewDescriptor describes a parquet dataset of entity e.
func NewDescriptor(e Entity, compression, runID string) Descriptor {
	fields := make([]DescriptorField, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = DescriptorField{Name: f.Name, Column: f.Column, Type: f.Type.String()}
	}
	return Descriptor{
		Entity:      e.Name,
		Format:      FormatParquet,
		Compression: compression,
		Fields:      fields,
		RunID:       runID,
		Created:     time.Now().UTC(),
	}
}

// WriteDescriptor stores d under root/.metadata.
func WriteDescriptor(root string, d Descriptor) error {
	dir := filepath.Join(root, MetadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create metadata directory")
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode descriptor")
	}
	if err := os.WriteFile(filepath.Join(dir, DescriptorFile), data, 0o644); err != nil {
		return errors.Wrap(err, "write descriptor")
	}
	return nil
}

// ReadDescriptor loads the descriptor of the dataset at root. The returned
// error satisfies errors.Is(err, fs.ErrNotExist) when the dataset has none.
func ReadDescriptor(root string) (Descriptor, error) {
	var d Descriptor
	data, err := os.ReadFile(filepath.Join(root, MetadataDir, DescriptorFile))
	if err != nil {
		return d, errors.Wrap(err, "read descriptor")
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, errors.Wrap(err, "decode descriptor")
	}
	return d, nil
}
