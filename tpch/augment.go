package tpch

import (
	"errors"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

var (
	ErrUnknownTable        = errors.New("unknown table")
	ErrDuplicateColumnName = errors.New("duplicate column name")
)

// SyntheticColumnName names the trailing always-null column that absorbs the
// delimiter dbgen writes at the end of every row.
const SyntheticColumnName = "some_null"

type Naming int

const (
	// NamingPlain drops the dbgen column prefix: "custkey", "regionkey"
	NamingPlain Naming = iota
	// NamingTPCH keeps it: "c_custkey", "r_regionkey"
	NamingTPCH
)

// AugmentedSchema is the schema the delimited source is parsed with:
// the real columns, all non-nullable, followed by one nullable null-typed column.
type AugmentedSchema struct {
	Table  TableName
	Fields []Field
}

// NumRealFields is the number of fields that survive projection.
func (as AugmentedSchema) NumRealFields() int {
	return len(as.Fields) - 1
}

// Normalize returns the schema's fields with their names lowercased.
func (ts TableSchema) Normalize(naming Naming) []Field {
	fields := make([]Field, len(ts.Fields))
	for i, f := range ts.Fields {
		name := f.Name
		if naming == NamingTPCH {
			name = ts.ColumnPrefix + name
		}
		fields[i] = Field{Name: strings.ToLower(name), Type: f.Type, Nullable: f.Nullable}
	}
	return fields
}

// OutputProjection is the ordered list of column names written to the output file.
func (ts TableSchema) OutputProjection(naming Naming) []string {
	var names []string
	for _, f := range ts.Normalize(naming) {
		names = append(names, f.Name)
	}
	return names
}

// Augment builds the parse schema. Names must be unique case-insensitively,
// including against the synthetic column.
func (ts TableSchema) Augment(naming Naming) (AugmentedSchema, errorsx.Error) {
	seen := make(map[string]struct{})

	var fields []Field
	for _, f := range ts.Normalize(naming) {
		if _, ok := seen[f.Name]; ok || f.Name == SyntheticColumnName {
			return AugmentedSchema{}, errorsx.Wrap(ErrDuplicateColumnName, "table", string(ts.Name), "column", f.Name)
		}
		seen[f.Name] = struct{}{}

		f.Nullable = false
		fields = append(fields, f)
	}

	fields = append(fields, Field{Name: SyntheticColumnName, Type: Null(), Nullable: true})

	return AugmentedSchema{Table: ts.Name, Fields: fields}, nil
}
