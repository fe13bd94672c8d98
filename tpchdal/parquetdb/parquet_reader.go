package parquetdb

import (
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/tpch-parquet/tpchdal"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	parquetreader "github.com/xitongsys/parquet-go/reader"
)

var _ tpchdal.FileInspector = &ParquetInspector{}

type ColumnInfo struct {
	Name          string
	PhysicalType  string
	ConvertedType string
	Required      bool
	Precision     int32
	Scale         int32
	Codec         string
}

// ParquetFileContents is a parquet file read back whole. Values are the raw
// physical values: int32, int64 or string.
type ParquetFileContents struct {
	NumRows int64
	Columns []ColumnInfo
	Values  [][]interface{}
}

type ParquetInspector struct{}

func NewParquetInspector() *ParquetInspector {
	return &ParquetInspector{}
}

func (pi *ParquetInspector) InspectFile(path string) (*tpchdal.OutputFileInfo, errorsx.Error) {
	contents, err := readParquetFile(path, false)
	if err != nil {
		return nil, err
	}

	info := &tpchdal.OutputFileInfo{NumRows: contents.NumRows}
	for _, column := range contents.Columns {
		info.Columns = append(info.Columns, column.Name)
		if !column.Required {
			info.OptionalColumns = append(info.OptionalColumns, column.Name)
		}
	}
	return info, nil
}

// ReadParquetFile reads the schema and every column value of a flat parquet file.
func ReadParquetFile(path string) (*ParquetFileContents, errorsx.Error) {
	return readParquetFile(path, true)
}

func readParquetFile(path string, withValues bool) (*ParquetFileContents, errorsx.Error) {
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", path)
	}
	defer fileReader.Close()

	pr, err := parquetreader.NewParquetColumnReader(fileReader, int64(runtime.NumCPU()))
	if err != nil {
		return nil, errorsx.Wrap(err, "filepath", path)
	}
	defer pr.ReadStop()

	contents := &ParquetFileContents{NumRows: pr.GetNumRows()}

	// element 0 is the root
	for i := 1; i < len(pr.SchemaHandler.SchemaElements); i++ {
		element := pr.SchemaHandler.SchemaElements[i]
		column := ColumnInfo{
			Name:      pr.SchemaHandler.Infos[i].ExName,
			Required:  element.GetRepetitionType() == parquet.FieldRepetitionType_REQUIRED,
			Precision: element.GetPrecision(),
			Scale:     element.GetScale(),
		}
		if element.IsSetType() {
			column.PhysicalType = element.GetType().String()
		}
		if element.IsSetConvertedType() {
			column.ConvertedType = element.GetConvertedType().String()
		}
		contents.Columns = append(contents.Columns, column)
	}

	for _, rowGroup := range pr.Footer.GetRowGroups() {
		for i, chunk := range rowGroup.GetColumns() {
			if i < len(contents.Columns) {
				contents.Columns[i].Codec = chunk.GetMetaData().GetCodec().String()
			}
		}
	}

	if !withValues {
		return contents, nil
	}

	for i := range contents.Columns {
		values, _, _, err := pr.ReadColumnByIndex(int64(i), contents.NumRows)
		if err != nil {
			return nil, errorsx.Wrap(err, "filepath", path, "column", contents.Columns[i].Name)
		}
		contents.Values = append(contents.Values, values)
	}

	return contents, nil
}
