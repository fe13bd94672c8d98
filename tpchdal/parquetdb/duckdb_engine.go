package parquetdb

import (
	"fmt"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/tpch-parquet/tpch"
	"github.com/jamesrr39/tpch-parquet/tpchdal"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb"
)

var _ tpchdal.Engine = &DuckDBEngine{}

// DuckDBEngine hands the whole read-project-write pipeline to DuckDB.
// Columns in its output are OPTIONAL rather than REQUIRED, as DuckDB writes every column nullable,
// but no row it writes holds a null.
type DuckDBEngine struct {
	fs             gofs.Fs
	connectionPath string
	DBConn         *sqlx.DB
}

// NewDuckDBEngine opens DuckDB at connectionPath. An empty path is an in-memory database.
func NewDuckDBEngine(fs gofs.Fs, connectionPath string) (*DuckDBEngine, errorsx.Error) {
	dbConn, err := sqlx.Open("duckdb", connectionPath)
	if err != nil {
		return nil, errorsx.Wrap(err, "connection path", connectionPath)
	}

	return &DuckDBEngine{
		fs:             fs,
		connectionPath: connectionPath,
		DBConn:         dbConn,
	}, nil
}

func (e *DuckDBEngine) Name() string {
	if e.connectionPath == "" {
		return string(tpchdal.EngineTypeDuckDB)
	}
	return fmt.Sprintf("%s%s%s", tpchdal.EngineTypeDuckDB, tpchdal.ConnectionPathSeparator, e.connectionPath)
}

func (e *DuckDBEngine) ConvertTable(schema tpch.TableSchema, naming tpch.Naming, sourcePath, destPath string) (*tpchdal.TableResult, errorsx.Error) {
	augmented, err := schema.Augment(naming)
	if err != nil {
		return nil, err
	}

	projection := schema.OutputProjection(naming)

	// DuckDB only reports a missing file as a generic IO error
	_, statErr := e.fs.Stat(sourcePath)
	if statErr != nil {
		return nil, errorsx.Wrap(tpchdal.ErrSourceNotFound, "table", string(schema.Name), "path", sourcePath, "cause", statErr.Error())
	}

	var numRows int64
	err = tpchdal.WriteViaTempFile(e.fs, destPath, func(tempPath string) errorsx.Error {
		copyQuery, err := BuildCopyQuery(augmented, projection, sourcePath, tempPath)
		if err != nil {
			return err
		}

		// COPY reports an unwritable destination as a generic IO error, so check the destination first
		tempFile, createErr := e.fs.Create(tempPath)
		if createErr != nil {
			return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", tempPath, "cause", createErr.Error())
		}
		createErr = tempFile.Close()
		if createErr != nil {
			return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", tempPath, "cause", createErr.Error())
		}

		_, execErr := e.DBConn.Exec(copyQuery)
		if execErr != nil {
			return errorsx.Wrap(tpchdal.ErrSchemaMismatch, "table", string(schema.Name), "path", sourcePath, "cause", execErr.Error())
		}

		getErr := e.DBConn.Get(&numRows, fmt.Sprintf("SELECT count(*) FROM read_parquet(%s)", quoteLiteral(tempPath)))
		if getErr != nil {
			return errorsx.Wrap(tpchdal.ErrDestinationWrite, "path", tempPath, "cause", getErr.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &tpchdal.TableResult{
		Table:           schema.Name,
		SourcePath:      sourcePath,
		DestPath:        destPath,
		NumRows:         numRows,
		Columns:         projection,
		ColumnsNullable: true,
	}, nil
}

func (e *DuckDBEngine) Close() errorsx.Error {
	err := e.DBConn.Close()
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

// BuildCopyQuery builds the COPY statement that reads the source with the augmented
// schema, selects the projection and writes snappy parquet to destPath.
// Empty fields in the real columns are read as empty strings rather than NULL, so they
// fail the cast to a numeric or date type. A row with anything after its last delimiter
// aborts the statement.
func BuildCopyQuery(schema tpch.AugmentedSchema, projection []string, sourcePath, destPath string) (string, errorsx.Error) {
	var columnDefs []string
	for _, field := range schema.Fields {
		sqlType, err := duckDBType(field.Type)
		if err != nil {
			return "", errorsx.Wrap(err, "column", field.Name)
		}
		columnDefs = append(columnDefs, fmt.Sprintf("%s: %s", quoteLiteral(field.Name), quoteLiteral(sqlType)))
	}

	var notNullCols []string
	for _, field := range schema.Fields[:schema.NumRealFields()] {
		notNullCols = append(notNullCols, quoteLiteral(field.Name))
	}

	var selectCols []string
	for _, name := range projection {
		selectCols = append(selectCols, quoteIdentifier(name))
	}

	query := fmt.Sprintf(`COPY (
	SELECT %s
	FROM read_csv(%s, delim=%s, header=false, auto_detect=false, columns={%s}, force_not_null=[%s])
	WHERE CASE WHEN %s IS NOT NULL THEN error(%s) ELSE true END
) TO %s (FORMAT PARQUET, COMPRESSION 'snappy')`,
		strings.Join(selectCols, ", "),
		quoteLiteral(sourcePath),
		quoteLiteral(string(tpchdal.FieldDelimiter)),
		strings.Join(columnDefs, ", "),
		strings.Join(notNullCols, ", "),
		quoteIdentifier(tpch.SyntheticColumnName),
		quoteLiteral("unexpected value after the last delimiter"),
		quoteLiteral(destPath),
	)

	return query, nil
}

func duckDBType(dataType tpch.DataType) (string, errorsx.Error) {
	switch dataType.Kind {
	case tpch.TypeKindInt32:
		return "INTEGER", nil
	case tpch.TypeKindInt64:
		return "BIGINT", nil
	case tpch.TypeKindString:
		return "VARCHAR", nil
	case tpch.TypeKindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", dataType.Precision, dataType.Scale), nil
	case tpch.TypeKindDate32:
		return "DATE", nil
	case tpch.TypeKindNull:
		// read_csv has no null column type; the column is projected away anyway
		return "VARCHAR", nil
	default:
		return "", errorsx.Wrap(ErrUnsupportedType, "type", dataType.String())
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
