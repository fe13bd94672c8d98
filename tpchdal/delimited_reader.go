package tpchdal

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/tpch-parquet/tpch"
)

const (
	FieldDelimiter = '|'

	readBufferSize = 1024 * 1024
)

// ReadDelimited parses a headerless, '|'-separated dbgen file. Fields are
// assigned to the augmented schema by position, so every row must carry
// exactly one field per augmented column (the last one being the empty field
// after the trailing delimiter).
func ReadDelimited(fs gofs.Fs, path string, schema tpch.AugmentedSchema) (*RecordBatch, errorsx.Error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errorsx.Wrap(ErrSourceNotFound, "table", string(schema.Table), "path", path, "cause", err.Error())
	}
	defer file.Close()

	return readDelimited(bufio.NewReaderSize(file, readBufferSize), path, schema)
}

func readDelimited(reader io.Reader, path string, schema tpch.AugmentedSchema) (*RecordBatch, errorsx.Error) {
	cr := csv.NewReader(reader)
	cr.Comma = FieldDelimiter
	cr.FieldsPerRecord = len(schema.Fields)
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	batch := newRecordBatch(schema.Table, schema.Fields)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, errorsx.Wrap(
					ErrSchemaMismatch,
					"table", string(schema.Table),
					"path", path,
					"line", parseErr.Line,
					"cause", parseErr.Err.Error(),
				)
			}
			return nil, errorsx.Wrap(ErrSourceNotFound, "table", string(schema.Table), "path", path, "cause", err.Error())
		}

		for i, raw := range record {
			column := batch.Columns[i]
			err = column.appendRaw(raw)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, errorsx.Wrap(
					ErrSchemaMismatch,
					"table", string(schema.Table),
					"path", path,
					"line", line,
					"column", column.Field.Name,
					"type", column.Field.Type.String(),
					"value", raw,
					"cause", err.Error(),
				)
			}
		}
		batch.NumRows++
	}

	return batch, nil
}
