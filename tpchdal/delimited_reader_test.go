package tpchdal

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/tpch-parquet/tpch"
	"github.com/jamesrr39/tpch-parquet/tpchdal/tpchtestutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func augmentedSchema(t *testing.T, name tpch.TableName) tpch.AugmentedSchema {
	table, err := tpch.GetTable(name)
	require.NoError(t, err)

	augmented, err := table.Augment(tpch.NamingPlain)
	require.NoError(t, err)

	return augmented
}

func TestReadDelimited_region(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, tpchtestutil.WriteFixture(fs, "/data", tpch.TableRegion, tpchtestutil.FixtureContents(tpch.TableRegion)))

	batch, err := ReadDelimited(fs, filepath.Join("/data", "region.csv"), augmentedSchema(t, tpch.TableRegion))
	require.NoError(t, err)

	assert.Equal(t, 3, batch.NumRows)
	assert.Equal(t, []string{"regionkey", "name", "comment", tpch.SyntheticColumnName}, batch.ColumnNames())
	assert.Equal(t, []interface{}{int64(0), "AFRICA", "lar deposits. blithely", nil}, batch.Row(0))

	synthetic, ok := batch.Column(tpch.SyntheticColumnName)
	require.True(t, ok)
	assert.Equal(t, 3, synthetic.Len())
}

func TestReadDelimited_allFixtures(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, tpchtestutil.WriteFixtures(fs, "/data"))

	for _, table := range tpch.Tables() {
		t.Run(string(table.Name), func(t *testing.T) {
			batch, err := ReadDelimited(fs, filepath.Join("/data", string(table.Name)+".csv"), augmentedSchema(t, table.Name))
			require.NoError(t, err)

			assert.Equal(t, len(tpchtestutil.FixtureLines[table.Name]), batch.NumRows)
			for _, column := range batch.Columns {
				assert.Equal(t, batch.NumRows, column.Len(), column.Field.Name)
			}
		})
	}
}

func TestReadDelimited_lineitemTypes(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, tpchtestutil.WriteFixture(fs, "/data", tpch.TableLineitem, tpchtestutil.FixtureContents(tpch.TableLineitem)))

	batch, err := ReadDelimited(fs, "/data/lineitem.csv", augmentedSchema(t, tpch.TableLineitem))
	require.NoError(t, err)

	linenumber, ok := batch.Column("linenumber")
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 1}, linenumber.Int32s())

	quantity, ok := batch.Column("quantity")
	require.True(t, ok)
	assert.Equal(t, []int64{1700, 3600, 3800}, quantity.Int64s())

	shipdate, ok := batch.Column("shipdate")
	require.True(t, ok)
	assert.Equal(t, int32(9568), shipdate.Int32s()[0])

	comment, ok := batch.Column("comment")
	require.True(t, ok)
	assert.Equal(t, "ly final dependencies: slyly bold ", comment.Strings()[1])
}

func TestReadDelimited_errors(t *testing.T) {
	tests := []struct {
		name      string
		contents  string
		wantCause error
	}{
		{
			name:      "non-numeric key",
			contents:  "0|AFRICA|comment|\nONE|AMERICA|comment|\n",
			wantCause: ErrSchemaMismatch,
		}, {
			name:      "missing trailing delimiter",
			contents:  "0|AFRICA|comment\n",
			wantCause: ErrSchemaMismatch,
		}, {
			name:      "extra field",
			contents:  "0|AFRICA|comment|extra|\n",
			wantCause: ErrSchemaMismatch,
		}, {
			name:      "content after trailing delimiter",
			contents:  "0|AFRICA|comment|oops\n",
			wantCause: ErrSchemaMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mockfs.NewMockFs()
			require.NoError(t, tpchtestutil.WriteFixture(fs, "/data", tpch.TableRegion, []byte(tt.contents)))

			_, err := ReadDelimited(fs, "/data/region.csv", augmentedSchema(t, tpch.TableRegion))
			require.Error(t, err)
			assert.Equal(t, tt.wantCause, errorsx.Cause(err))
			assert.True(t, strings.Contains(err.Error(), "region"), err.Error())
		})
	}
}

func TestReadDelimited_lineInError(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, tpchtestutil.WriteFixture(fs, "/data", tpch.TableRegion, []byte("0|AFRICA|comment|\nONE|AMERICA|comment|\n")))

	_, err := ReadDelimited(fs, "/data/region.csv", augmentedSchema(t, tpch.TableRegion))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `line=2`)
	assert.Contains(t, err.Error(), `column="regionkey"`)
	assert.Contains(t, err.Error(), `value="ONE"`)
}

func TestReadDelimited_missingFile(t *testing.T) {
	fs := mockfs.NewMockFs()

	_, err := ReadDelimited(fs, "/data/region.csv", augmentedSchema(t, tpch.TableRegion))
	require.Error(t, err)
	assert.Equal(t, ErrSourceNotFound, errorsx.Cause(err))
}

func TestReadDelimited_emptyFile(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, tpchtestutil.WriteFixture(fs, "/data", tpch.TableRegion, nil))

	batch, err := ReadDelimited(fs, "/data/region.csv", augmentedSchema(t, tpch.TableRegion))
	require.NoError(t, err)
	assert.Equal(t, 0, batch.NumRows)
}

// blank lines are not rows, so they are not counted
func TestReadDelimited_blankLinesSkipped(t *testing.T) {
	fs := mockfs.NewMockFs()
	require.NoError(t, tpchtestutil.WriteFixture(fs, "/data", tpch.TableRegion, []byte(
		"0|AFRICA|lar deposits. blithely|\n\n1|AMERICA|hs use ironic, even requests. s|\n\n",
	)))

	batch, err := ReadDelimited(fs, "/data/region.csv", augmentedSchema(t, tpch.TableRegion))
	require.NoError(t, err)
	assert.Equal(t, 2, batch.NumRows)
	assert.Equal(t, []interface{}{int64(1), "AMERICA", "hs use ironic, even requests. s", nil}, batch.Row(1))
}
