// Package schema declares the fixed record layouts of the inspection datasets.
//
// Every entity is addressed by a logical name and carries an ordered field
// list. The order is the positional order of the delimited source files, and
// the same Entity value is used to create datasets and to read them back.
package schema

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"
)

// Type is the storage type of a single field.
type Type int

const (
	String Type = iota
	Int32
	Int64
	Float32
)

func (t Type) String() string {
	switch t {
	case String:
		return "STRING"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float32:
		return "FLOAT32"
	default:
		return "UNKNOWN"
	}
}

// node returns the parquet leaf used to store values of type t.
func (t Type) node() parquet.Node {
	switch t {
	case Int32:
		return parquet.Int(32)
	case Int64:
		return parquet.Int(64)
	case Float32:
		return parquet.Leaf(parquet.FloatType)
	default:
		return parquet.String()
	}
}

// Field describes one positional field of an entity.
type Field struct {
	// Name is the field name as used in reports and diagnostics.
	Name string
	// Column is the parquet column name.
	Column string
	Type   Type
}

// Entity is the declarative schema of one record type.
type Entity struct {
	Name   string
	Fields []Field
}

// Schema builds the parquet schema for the entity. The schema's name is the
// entity's logical name.
func (e Entity) Schema() *parquet.Schema {
	group := make(parquet.Group, len(e.Fields))
	for _, f := range e.Fields {
		group[f.Column] = f.Type.node()
	}
	return parquet.NewSchema(e.Name, group)
}

// Arity returns the number of positional fields a source row must carry.
func (e Entity) Arity() int {
	return len(e.Fields)
}

// FieldNames returns the field names in positional order.
func (e Entity) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Name
	}
	return names
}

var (
	Business = Entity{
		Name: "business",
		Fields: []Field{
			{"businessId", "business_id", Int32},
			{"name", "name", String},
			{"address", "address", String},
			{"city", "city", String},
			{"postalCode", "postal_code", String},
			{"latitude", "latitude", Float32},
			{"longitude", "longitude", Float32},
			{"phone", "phone", String},
			{"taxCode", "tax_code", String},
			{"businessCertificate", "business_certificate", String},
			{"applicationDate", "application_date", String},
			{"ownerName", "owner_name", String},
			{"ownerAddress", "owner_address", String},
			{"ownerCity", "owner_city", String},
			{"ownerState", "owner_state", String},
			{"ownerZip", "owner_zip", String},
		},
	}

	Violation = Entity{
		Name: "violation",
		Fields: []Field{
			{"businessId", "business_id", Int32},
			{"date", "date", String},
			{"violationTypeID", "violation_type_id", Int64},
			{"riskCategory", "risk_category", String},
			{"description", "description", String},
		},
	}

	Inspection = Entity{
		Name: "inspection",
		Fields: []Field{
			{"businessId", "business_id", Int32},
			{"score", "score", Int32},
			{"date", "date", String},
			{"type", "type", String},
		},
	}
)

var registry = []Entity{Business, Violation, Inspection}

// Lookup returns the entity registered under name. Names are matched without
// regard to case.
func Lookup(name string) (Entity, error) {
	for _, e := range registry {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Entity{}, errors.Newf("unknown entity %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered entity names in conversion order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}
