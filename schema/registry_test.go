package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		arity int
	}{
		{"business", "business", 16},
		{"Violation", "violation", 5},
		{"INSPECTION", "inspection", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Lookup(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, e.Name)
			require.Equal(t, tt.arity, e.Arity())
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("restaurant")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown entity "restaurant"`)
	require.Contains(t, err.Error(), "business, violation, inspection")
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"business", "violation", "inspection"}, Names())
}

func TestEntitySchema(t *testing.T) {
	s := Violation.Schema()
	require.Equal(t, "violation", s.Name())
	require.Len(t, s.Columns(), Violation.Arity())

	for _, f := range Violation.Fields {
		col, ok := s.Lookup(f.Column)
		require.Truef(t, ok, "column %s missing", f.Column)
		require.False(t, col.Node.Optional(), "column %s should be required", f.Column)
	}

	leaf, ok := s.Lookup("violation_type_id")
	require.True(t, ok)
	require.Equal(t, "INT64", leaf.Node.Type().Kind().String())
}

func TestFieldNames(t *testing.T) {
	require.Equal(t, []string{"businessId", "score", "date", "type"}, Inspection.FieldNames())
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "INT32", Int32.String())
	require.Equal(t, "FLOAT32", Float32.String())
	require.Equal(t, "UNKNOWN", Type(42).String())
}
