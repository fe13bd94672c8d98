package parquetdb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/tpch-parquet/tpch"
	"github.com/jamesrr39/tpch-parquet/tpchdal"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	parquetwriter "github.com/xitongsys/parquet-go/writer"
)

// CSV writer example: https://github.com/xitongsys/parquet-go/blob/master/example/csv_write.go

const DefaultRowGroupSize = 128 * 1024 * 1024 //128M

var ErrUnsupportedType = errors.New("type cannot be written to parquet")

// BuildMetadata turns fields into parquet-go's CSV writer metadata, one tag string per column.
// Every column is REQUIRED.
func BuildMetadata(fields []tpch.Field) ([]string, errorsx.Error) {
	var md []string
	for _, field := range fields {
		var tag string
		switch field.Type.Kind {
		case tpch.TypeKindInt32:
			tag = fmt.Sprintf("name=%s, type=INT32", field.Name)
		case tpch.TypeKindInt64:
			tag = fmt.Sprintf("name=%s, type=INT64", field.Name)
		case tpch.TypeKindString:
			tag = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY", field.Name)
		case tpch.TypeKindDecimal:
			tag = fmt.Sprintf("name=%s, type=INT64, convertedtype=DECIMAL, scale=%d, precision=%d", field.Name, field.Type.Scale, field.Type.Precision)
		case tpch.TypeKindDate32:
			tag = fmt.Sprintf("name=%s, type=INT32, convertedtype=DATE", field.Name)
		default:
			return nil, errorsx.Wrap(ErrUnsupportedType, "column", field.Name, "type", field.Type.String())
		}
		md = append(md, tag+", repetitiontype=REQUIRED")
	}
	return md, nil
}

// WriteParquet writes the whole batch to path as a snappy-compressed parquet file.
func WriteParquet(fs gofs.Fs, path string, batch *tpchdal.RecordBatch, rowGroupSize int64) errorsx.Error {
	var err error

	md, err := BuildMetadata(batch.Fields())
	if err != nil {
		return errorsx.Wrap(err, "table", string(batch.Table))
	}

	file, err := fs.Create(path)
	if err != nil {
		return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", path, "cause", err.Error())
	}
	// closes on the error paths; the success path closes explicitly below
	defer file.Close()

	pw, err := parquetwriter.NewCSVWriter(md, writerfile.NewWriterFile(file), int64(runtime.NumCPU()))
	if err != nil {
		return errorsx.Wrap(err, "table", string(batch.Table))
	}
	pw.RowGroupSize = rowGroupSize
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := 0; i < batch.NumRows; i++ {
		err = pw.Write(batch.Row(i))
		if err != nil {
			return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", path, "row", i, "cause", err.Error())
		}
	}

	err = pw.WriteStop()
	if err != nil {
		return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", path, "cause", err.Error())
	}

	err = file.Sync()
	if err != nil {
		return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", path, "cause", err.Error())
	}

	err = file.Close()
	if err != nil {
		return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", path, "cause", err.Error())
	}

	return nil
}
