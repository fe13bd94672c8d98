package tpchdal

import (
	"errors"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/tpch-parquet/tpch"
)

var (
	ErrSourceNotFound   = errors.New("source file not found or unreadable")
	ErrSchemaMismatch   = errors.New("source data does not match schema")
	ErrDestinationWrite = errors.New("could not write destination file")
	ErrColumnNotFound   = errors.New("column not found")

	ErrVerificationFailed = errors.New("written file does not match the converted table")
)

// Engine reads one delimited source file and writes it out as a columnar file.
// Implementations must leave no file at destPath when they fail.
type Engine interface {
	Name() string
	ConvertTable(schema tpch.TableSchema, naming tpch.Naming, sourcePath, destPath string) (*TableResult, errorsx.Error)
}

// FileInspector reads back the shape of a written file.
type FileInspector interface {
	InspectFile(path string) (*OutputFileInfo, errorsx.Error)
}

type TableResult struct {
	Table      tpch.TableName
	SourcePath string
	DestPath   string
	NumRows    int64
	Columns    []string

	// ColumnsNullable is set by engines that cannot mark output columns REQUIRED.
	ColumnsNullable bool
}

type OutputFileInfo struct {
	NumRows         int64
	Columns         []string
	OptionalColumns []string
}

type EngineType string

const (
	EngineTypeNative EngineType = "native"
	EngineTypeDuckDB EngineType = "duckdb"
)

type EngineConnectionURL struct {
	Type           EngineType
	ConnectionPath string
}

const ConnectionPathSeparator = "://"

// ParseEngineURL accepts a bare engine name ("native", "duckdb") or an engine
// name with a connection path ("duckdb://path/to/work.duckdb").
func ParseEngineURL(str string) (EngineConnectionURL, errorsx.Error) {
	engineType := str
	var connectionPath string

	idx := strings.Index(str, ConnectionPathSeparator)
	if idx >= 0 {
		engineType = str[:idx]
		connectionPath = str[idx+len(ConnectionPathSeparator):]
	}

	switch EngineType(engineType) {
	case EngineTypeNative:
		if connectionPath != "" {
			return EngineConnectionURL{}, errorsx.Errorf("the %s engine does not take a connection path (got %q)", engineType, connectionPath)
		}
	case EngineTypeDuckDB:
	default:
		return EngineConnectionURL{}, errorsx.Errorf("unknown engine type: %q", engineType)
	}

	return EngineConnectionURL{
		Type:           EngineType(engineType),
		ConnectionPath: connectionPath,
	}, nil
}
