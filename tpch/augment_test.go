package tpch

import (
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputProjection(t *testing.T) {
	region, err := GetTable(TableRegion)
	require.NoError(t, err)

	assert.Equal(t, []string{"regionkey", "name", "comment"}, region.OutputProjection(NamingPlain))
	assert.Equal(t, []string{"r_regionkey", "r_name", "r_comment"}, region.OutputProjection(NamingTPCH))

	partsupp, err := GetTable(TablePartsupp)
	require.NoError(t, err)
	assert.Equal(t, []string{"ps_partkey", "ps_suppkey", "ps_availqty", "ps_supplycost", "ps_comment"}, partsupp.OutputProjection(NamingTPCH))
}

func TestOutputProjection_allTables(t *testing.T) {
	want := map[TableName][]string{
		TableCustomer: {"custkey", "name", "address", "nationkey", "phone", "acctbal", "mktsegment", "comment"},
		TableLineitem: {"orderkey", "partkey", "suppkey", "linenumber", "quantity", "extendedprice", "discount", "tax", "returnflag", "linestatus", "shipdate", "commitdate", "receiptdate", "shipinstruct", "shipmode", "comment"},
		TableNation:   {"nationkey", "name", "regionkey", "comment"},
		TableOrders:   {"orderkey", "custkey", "orderstatus", "totalprice", "orderdate", "orderpriority", "clerk", "shippriority", "comment"},
		TablePart:     {"partkey", "name", "mfgr", "brand", "type", "size", "container", "retailprice", "comment"},
		TablePartsupp: {"partkey", "suppkey", "availqty", "supplycost", "comment"},
		TableRegion:   {"regionkey", "name", "comment"},
		TableSupplier: {"suppkey", "name", "address", "nationkey", "phone", "acctbal", "comment"},
	}

	for _, table := range Tables() {
		assert.Equal(t, want[table.Name], table.OutputProjection(NamingPlain), string(table.Name))
	}
}

func TestAugment(t *testing.T) {
	nation, err := GetTable(TableNation)
	require.NoError(t, err)
	nation.Fields[1].Nullable = true

	augmented, err := nation.Augment(NamingPlain)
	require.NoError(t, err)

	assert.Equal(t, TableNation, augmented.Table)
	assert.Equal(t, 4, augmented.NumRealFields())
	assert.Equal(t, []Field{
		{Name: "nationkey", Type: Int64()},
		{Name: "name", Type: String()},
		{Name: "regionkey", Type: Int64()},
		{Name: "comment", Type: String()},
		{Name: SyntheticColumnName, Type: Null(), Nullable: true},
	}, augmented.Fields)

	// source schema is untouched
	assert.True(t, nation.Fields[1].Nullable)
	assert.Equal(t, "NAME", nation.Fields[1].Name)
}

func TestAugment_duplicateNames(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{
			name:   "differs only by case",
			fields: []Field{{Name: "KEY", Type: Int64()}, {Name: "key", Type: String()}},
		}, {
			name:   "collides with synthetic column",
			fields: []Field{{Name: "SOME_NULL", Type: String()}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := TableSchema{Name: "test", Fields: tt.fields}
			_, err := schema.Augment(NamingPlain)
			require.Error(t, err)
			assert.Equal(t, ErrDuplicateColumnName, errorsx.Cause(err))
		})
	}
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "decimal(15,2)", Decimal(15, 2).String())
	assert.Equal(t, "date32", Date32().String())
	assert.Equal(t, "null", Null().String())
}
