package tpchdal

import (
	"fmt"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/tpch-parquet/tpch"
)

// Column holds the values of one field. Only the slice matching the field's
// type is populated: decimals are unscaled int64s and dates are int32 days since epoch.
type Column struct {
	Field tpch.Field

	int32s  []int32
	int64s  []int64
	strings []string
	nulls   int
}

func newColumn(field tpch.Field) *Column {
	return &Column{Field: field}
}

func (c *Column) Len() int {
	switch c.Field.Type.Kind {
	case tpch.TypeKindInt32, tpch.TypeKindDate32:
		return len(c.int32s)
	case tpch.TypeKindInt64, tpch.TypeKindDecimal:
		return len(c.int64s)
	case tpch.TypeKindString:
		return len(c.strings)
	default:
		return c.nulls
	}
}

func (c *Column) Int32s() []int32   { return c.int32s }
func (c *Column) Int64s() []int64   { return c.int64s }
func (c *Column) Strings() []string { return c.strings }

// Value returns the i'th value boxed as parsed by ParseValue.
func (c *Column) Value(i int) interface{} {
	switch c.Field.Type.Kind {
	case tpch.TypeKindInt32, tpch.TypeKindDate32:
		return c.int32s[i]
	case tpch.TypeKindInt64, tpch.TypeKindDecimal:
		return c.int64s[i]
	case tpch.TypeKindString:
		return c.strings[i]
	default:
		return nil
	}
}

func (c *Column) appendRaw(raw string) error {
	value, err := ParseValue(c.Field.Type, raw)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case int32:
		c.int32s = append(c.int32s, v)
	case int64:
		c.int64s = append(c.int64s, v)
	case string:
		c.strings = append(c.strings, v)
	case nil:
		c.nulls++
	default:
		panic(fmt.Sprintf("unexpected parsed value type: %T", v))
	}
	return nil
}

// RecordBatch is a whole table held column by column.
type RecordBatch struct {
	Table   tpch.TableName
	Columns []*Column
	NumRows int
}

func newRecordBatch(table tpch.TableName, fields []tpch.Field) *RecordBatch {
	var columns []*Column
	for _, field := range fields {
		columns = append(columns, newColumn(field))
	}
	return &RecordBatch{Table: table, Columns: columns}
}

func (b *RecordBatch) Fields() []tpch.Field {
	var fields []tpch.Field
	for _, c := range b.Columns {
		fields = append(fields, c.Field)
	}
	return fields
}

func (b *RecordBatch) ColumnNames() []string {
	var names []string
	for _, c := range b.Columns {
		names = append(names, c.Field.Name)
	}
	return names
}

func (b *RecordBatch) Column(name string) (*Column, bool) {
	for _, c := range b.Columns {
		if c.Field.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Select returns a batch with exactly the named columns, in the given order.
// Column data is shared with b, not copied.
func (b *RecordBatch) Select(names ...string) (*RecordBatch, errorsx.Error) {
	var columns []*Column
	for _, name := range names {
		column, ok := b.Column(name)
		if !ok {
			return nil, errorsx.Wrap(ErrColumnNotFound, "table", string(b.Table), "column", name)
		}
		columns = append(columns, column)
	}

	return &RecordBatch{Table: b.Table, Columns: columns, NumRows: b.NumRows}, nil
}

// Row returns the boxed values of row i, in column order.
func (b *RecordBatch) Row(i int) []interface{} {
	row := make([]interface{}, len(b.Columns))
	for j, c := range b.Columns {
		row[j] = c.Value(i)
	}
	return row
}
