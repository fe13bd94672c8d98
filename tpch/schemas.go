package tpch

import (
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

type TableName string

const (
	TableCustomer TableName = "customer"
	TableLineitem TableName = "lineitem"
	TableNation   TableName = "nation"
	TableOrders   TableName = "orders"
	TablePart     TableName = "part"
	TablePartsupp TableName = "partsupp"
	TableRegion   TableName = "region"
	TableSupplier TableName = "supplier"
)

// TableSchema is the declared layout of one dbgen table.
// ColumnPrefix is the prefix dbgen's column names carry, in the case it was declared with.
type TableSchema struct {
	Name         TableName
	ColumnPrefix string
	Fields       []Field
}

// tables is the fixed catalogue, in conversion order.
var tables = []TableSchema{
	{
		Name:         TableCustomer,
		ColumnPrefix: "C_",
		Fields: []Field{
			{Name: "CUSTKEY", Type: Int64()},
			{Name: "NAME", Type: String()},
			{Name: "ADDRESS", Type: String()},
			{Name: "NATIONKEY", Type: Int64()},
			{Name: "PHONE", Type: String()},
			{Name: "ACCTBAL", Type: Decimal(15, 2)},
			{Name: "MKTSEGMENT", Type: String()},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name:         TableLineitem,
		ColumnPrefix: "L_",
		Fields: []Field{
			{Name: "ORDERKEY", Type: Int64()},
			{Name: "PARTKEY", Type: Int64()},
			{Name: "SUPPKEY", Type: Int64()},
			{Name: "LINENUMBER", Type: Int32()},
			{Name: "QUANTITY", Type: Decimal(15, 2)},
			{Name: "EXTENDEDPRICE", Type: Decimal(15, 2)},
			{Name: "DISCOUNT", Type: Decimal(15, 2)},
			{Name: "TAX", Type: Decimal(15, 2)},
			{Name: "RETURNFLAG", Type: String()},
			{Name: "LINESTATUS", Type: String()},
			{Name: "SHIPDATE", Type: Date32()},
			{Name: "COMMITDATE", Type: Date32()},
			{Name: "RECEIPTDATE", Type: Date32()},
			{Name: "SHIPINSTRUCT", Type: String()},
			{Name: "SHIPMODE", Type: String()},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name:         TableNation,
		ColumnPrefix: "N_",
		Fields: []Field{
			{Name: "NATIONKEY", Type: Int64()},
			{Name: "NAME", Type: String()},
			{Name: "REGIONKEY", Type: Int64()},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name:         TableOrders,
		ColumnPrefix: "O_",
		Fields: []Field{
			{Name: "ORDERKEY", Type: Int64()},
			{Name: "CUSTKEY", Type: Int64()},
			{Name: "ORDERSTATUS", Type: String()},
			{Name: "TOTALPRICE", Type: Decimal(15, 2)},
			{Name: "ORDERDATE", Type: Date32()},
			{Name: "ORDERPRIORITY", Type: String()},
			{Name: "CLERK", Type: String()},
			{Name: "SHIPPRIORITY", Type: Int32()},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name:         TablePart,
		ColumnPrefix: "P_",
		Fields: []Field{
			{Name: "PARTKEY", Type: Int64()},
			{Name: "NAME", Type: String()},
			{Name: "MFGR", Type: String()},
			{Name: "BRAND", Type: String()},
			{Name: "TYPE", Type: String()},
			{Name: "SIZE", Type: Int32()},
			{Name: "CONTAINER", Type: String()},
			{Name: "RETAILPRICE", Type: Decimal(15, 2)},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name:         TablePartsupp,
		ColumnPrefix: "PS_",
		Fields: []Field{
			{Name: "PARTKEY", Type: Int64()},
			{Name: "SUPPKEY", Type: Int64()},
			{Name: "AVAILQTY", Type: Int32()},
			{Name: "SUPPLYCOST", Type: Decimal(15, 2)},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name: TableRegion,
		// dbgen's region columns are declared with a lowercase prefix; lowercasing makes it irrelevant
		ColumnPrefix: "r_",
		Fields: []Field{
			{Name: "REGIONKEY", Type: Int64()},
			{Name: "NAME", Type: String()},
			{Name: "COMMENT", Type: String()},
		},
	},
	{
		Name:         TableSupplier,
		ColumnPrefix: "S_",
		Fields: []Field{
			{Name: "SUPPKEY", Type: Int64()},
			{Name: "NAME", Type: String()},
			{Name: "ADDRESS", Type: String()},
			{Name: "NATIONKEY", Type: Int32()},
			{Name: "PHONE", Type: String()},
			{Name: "ACCTBAL", Type: Decimal(15, 2)},
			{Name: "COMMENT", Type: String()},
		},
	},
}

// Tables returns a copy of every schema, in conversion order.
func Tables() []TableSchema {
	out := make([]TableSchema, len(tables))
	for i, t := range tables {
		out[i] = t.clone()
	}
	return out
}

func GetTable(name TableName) (TableSchema, errorsx.Error) {
	for _, t := range tables {
		if t.Name == name {
			return t.clone(), nil
		}
	}
	return TableSchema{}, errorsx.Wrap(ErrUnknownTable, "table", string(name))
}

// SelectTables resolves table names to schemas, keeping catalogue order and dropping duplicates.
// No names means every table.
func SelectTables(names []string) ([]TableSchema, errorsx.Error) {
	if len(names) == 0 {
		return Tables(), nil
	}

	wanted := make(map[TableName]struct{})
	for _, name := range names {
		tableName := TableName(strings.ToLower(strings.TrimSpace(name)))
		_, err := GetTable(tableName)
		if err != nil {
			return nil, errorsx.Wrap(err, "known tables", strings.Join(TableNames(), ","))
		}
		wanted[tableName] = struct{}{}
	}

	var selected []TableSchema
	for _, t := range tables {
		if _, ok := wanted[t.Name]; ok {
			selected = append(selected, t.clone())
		}
	}
	return selected, nil
}

func TableNames() []string {
	var names []string
	for _, t := range tables {
		names = append(names, string(t.Name))
	}
	return names
}

func (ts TableSchema) clone() TableSchema {
	fields := make([]Field, len(ts.Fields))
	copy(fields, ts.Fields)
	ts.Fields = fields
	return ts
}
