package parquetdb

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/tpch-parquet/tpch"
	"github.com/jamesrr39/tpch-parquet/tpchdal"
)

var _ tpchdal.Engine = &NativeEngine{}

// NativeEngine parses the delimited source in-process and writes it with parquet-go.
type NativeEngine struct {
	fs           gofs.Fs
	rowGroupSize int64
}

func NewNativeEngine(fs gofs.Fs, rowGroupSize int64) *NativeEngine {
	if rowGroupSize <= 0 {
		rowGroupSize = DefaultRowGroupSize
	}
	return &NativeEngine{fs, rowGroupSize}
}

func (e *NativeEngine) Name() string {
	return string(tpchdal.EngineTypeNative)
}

func (e *NativeEngine) ConvertTable(schema tpch.TableSchema, naming tpch.Naming, sourcePath, destPath string) (*tpchdal.TableResult, errorsx.Error) {
	augmented, err := schema.Augment(naming)
	if err != nil {
		return nil, err
	}

	projection := schema.OutputProjection(naming)

	batch, err := tpchdal.ReadDelimited(e.fs, sourcePath, augmented)
	if err != nil {
		return nil, err
	}

	// drops the column that absorbed the trailing delimiter
	projected, err := batch.Select(projection...)
	if err != nil {
		return nil, err
	}

	err = tpchdal.WriteViaTempFile(e.fs, destPath, func(tempPath string) errorsx.Error {
		return WriteParquet(e.fs, tempPath, projected, e.rowGroupSize)
	})
	if err != nil {
		return nil, err
	}

	return &tpchdal.TableResult{
		Table:      schema.Name,
		SourcePath: sourcePath,
		DestPath:   destPath,
		NumRows:    int64(projected.NumRows),
		Columns:    projected.ColumnNames(),
	}, nil
}
