package tpchdal

import (
	"reflect"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/humanise"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/semaphore"
	"github.com/jamesrr39/tpch-parquet/tpch"
)

type ConvertOptions struct {
	Naming tpch.Naming
	// MaxConcurrentTables above 1 converts that many tables at once. 0 and 1 mean sequential.
	MaxConcurrentTables uint
	// Inspector, when set, is used to read every written file back and check it.
	Inspector FileInspector
}

type Converter struct {
	logger      *logpkg.Logger
	fs          gofs.Fs
	pathsConfig *PathsConfig
	engine      Engine
	options     ConvertOptions
}

func NewConverter(logger *logpkg.Logger, fs gofs.Fs, pathsConfig *PathsConfig, engine Engine, options ConvertOptions) *Converter {
	return &Converter{logger, fs, pathsConfig, engine, options}
}

type RunSummary struct {
	Results    []*TableResult
	TotalRows  int64
	TotalBytes int64
	Duration   time.Duration
}

// ConvertAll converts the given tables. Run sequentially it stops at the first
// failure, so tables after the failing one are not attempted. Run concurrently,
// every started table finishes and the first failure in table order is returned.
func (c *Converter) ConvertAll(tables []tpch.TableSchema) (*RunSummary, errorsx.Error) {
	startTime := time.Now()

	err := c.pathsConfig.EnsurePaths(c.fs)
	if err != nil {
		return nil, err
	}

	var results []*TableResult
	if c.options.MaxConcurrentTables > 1 {
		results, err = c.convertConcurrently(tables)
	} else {
		results, err = c.convertSequentially(tables)
	}
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{Results: results, Duration: time.Since(startTime)}
	for _, result := range results {
		summary.TotalRows += result.NumRows

		fileInfo, statErr := c.fs.Stat(result.DestPath)
		if statErr != nil {
			return nil, errorsx.Wrap(statErr, "path", result.DestPath)
		}
		summary.TotalBytes += fileInfo.Size()
	}

	c.logger.Info(
		"converted %d tables (%d rows, %s) with the %s engine in %s",
		len(results), summary.TotalRows, humanise.HumaniseBytes(summary.TotalBytes), c.engine.Name(), summary.Duration,
	)

	return summary, nil
}

func (c *Converter) convertSequentially(tables []tpch.TableSchema) ([]*TableResult, errorsx.Error) {
	var results []*TableResult
	for _, table := range tables {
		result, err := c.ConvertTable(table)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (c *Converter) convertConcurrently(tables []tpch.TableSchema) ([]*TableResult, errorsx.Error) {
	results := make([]*TableResult, len(tables))
	errs := make([]errorsx.Error, len(tables))

	sema := semaphore.NewSemaphore(c.options.MaxConcurrentTables)
	for i, table := range tables {
		sema.Add()
		go func(i int, table tpch.TableSchema) {
			defer sema.Done()
			results[i], errs[i] = c.ConvertTable(table)
		}(i, table)
	}
	sema.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ConvertTable converts one table from its source path to its destination path.
func (c *Converter) ConvertTable(table tpch.TableSchema) (*TableResult, errorsx.Error) {
	sourcePath := c.pathsConfig.SourcePath(table.Name)
	destPath := c.pathsConfig.DestPath(table.Name)

	c.logger.Info("converting %s: %q -> %q", table.Name, sourcePath, destPath)
	startTime := time.Now()

	result, err := c.engine.ConvertTable(table, c.options.Naming, sourcePath, destPath)
	if err != nil {
		c.logger.Error("failed to convert %s: %s", table.Name, err.Error())
		return nil, errorsx.Wrap(err, "table", string(table.Name))
	}

	if c.options.Inspector != nil {
		err = c.verify(table, result)
		if err != nil {
			return nil, err
		}
	}

	c.logger.Info("converted %s: %d rows in %s", table.Name, result.NumRows, time.Since(startTime))

	return result, nil
}

func (c *Converter) verify(table tpch.TableSchema, result *TableResult) errorsx.Error {
	info, err := c.options.Inspector.InspectFile(result.DestPath)
	if err != nil {
		return errorsx.Wrap(err, "table", string(table.Name))
	}

	wantColumns := table.OutputProjection(c.options.Naming)
	if info.NumRows != result.NumRows || !reflect.DeepEqual(info.Columns, wantColumns) {
		return errorsx.Wrap(
			ErrVerificationFailed,
			"table", string(table.Name),
			"path", result.DestPath,
			"rows written", result.NumRows,
			"rows read back", info.NumRows,
			"expected columns", wantColumns,
			"columns read back", info.Columns,
		)
	}

	if !result.ColumnsNullable && len(info.OptionalColumns) > 0 {
		return errorsx.Wrap(
			ErrVerificationFailed,
			"table", string(table.Name),
			"path", result.DestPath,
			"optional columns", info.OptionalColumns,
		)
	}

	c.logger.Debug("verified %s: %d rows, columns %v", table.Name, info.NumRows, info.Columns)
	return nil
}
