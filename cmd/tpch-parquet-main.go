package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/goutil/userextra"
	"github.com/jamesrr39/tpch-parquet/tpch"
	"github.com/jamesrr39/tpch-parquet/tpchdal"
	"github.com/jamesrr39/tpch-parquet/tpchdal/parquetdb"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/pkg/profile"
)

var engineHelp = fmt.Sprintf("engine to convert with. Either %q, or %q optionally followed by the separator (%s) and a DuckDB database path, for example %s%smy/work.duckdb. The %s engine writes every column as nullable (OPTIONAL) in the parquet schema",
	tpchdal.EngineTypeNative,
	tpchdal.EngineTypeDuckDB,
	tpchdal.ConnectionPathSeparator,
	tpchdal.EngineTypeDuckDB,
	tpchdal.ConnectionPathSeparator,
	tpchdal.EngineTypeDuckDB,
)

var tableHelp = fmt.Sprintf("table to convert (repeatable). Defaults to all of: %s", strings.Join(tpch.TableNames(), ", "))

func main() {
	verbose := kingpin.Flag("v", "verbose logging").Bool()
	rootDir := kingpin.Flag("root", "repository root. dbgen output is read from <root>/benchmarks/tpch/data and parquet files are written to <root>/examples/tpch/data").Default(".").String()
	pathsConfigFile := kingpin.Flag("paths-config", "YAML file setting source_dir and dest_dir. Relative directories are resolved against the file's directory").String()
	sourceDirFlag := kingpin.Flag("source-dir", "override the directory the .csv files are read from").String()
	destDirFlag := kingpin.Flag("dest-dir", "override the directory the .parquet files are written to").String()
	tableNames := kingpin.Flag("table", tableHelp).Strings()
	engineURL := kingpin.Flag("engine", engineHelp).Default(string(tpchdal.EngineTypeNative)).String()
	parallel := kingpin.Flag("parallel", "amount of tables to convert at once. 1 converts sequentially and stops at the first failure").Default("1").Uint()
	shouldVerify := kingpin.Flag("verify", "read every written file back and check its row count and columns").Bool()
	tpchColumnPrefixes := kingpin.Flag("tpch-column-prefixes", `keep the dbgen column prefixes in the output column names ("c_custkey" instead of "custkey")`).Bool()
	rowGroupSize := kingpin.Flag("row-group-size", "(applies only to the native engine) parquet row group size in bytes").Default(fmt.Sprintf("%d", parquetdb.DefaultRowGroupSize)).Int64()
	shouldProfile := kingpin.Flag("profile", "profile the conversion, writing the CPU profile into the destination directory").Bool()

	kingpin.Parse()

	logLevel := logpkg.LogLevelInfo
	if *verbose {
		logLevel = logpkg.LogLevelDebug
	}
	logger := logpkg.NewLogger(os.Stderr, logLevel)

	run := func() errorsx.Error {
		var err error

		root, err := userextra.ExpandUser(*rootDir)
		if err != nil {
			return errorsx.Wrap(err, "root", *rootDir)
		}

		fs := gofs.NewOsFs()

		pathsConfig := tpchdal.NewPathsConfigFromRoot(root)
		if *pathsConfigFile != "" {
			configFilePath, err := userextra.ExpandUser(*pathsConfigFile)
			if err != nil {
				return errorsx.Wrap(err, "paths config", *pathsConfigFile)
			}
			pathsConfig, err = tpchdal.LoadPathsConfigFile(fs, configFilePath, pathsConfig)
			if err != nil {
				return errorsx.Wrap(err)
			}
		}
		if *sourceDirFlag != "" {
			pathsConfig.SourceDir, err = userextra.ExpandUser(*sourceDirFlag)
			if err != nil {
				return errorsx.Wrap(err, "source dir", *sourceDirFlag)
			}
		}
		if *destDirFlag != "" {
			pathsConfig.DestDir, err = userextra.ExpandUser(*destDirFlag)
			if err != nil {
				return errorsx.Wrap(err, "dest dir", *destDirFlag)
			}
		}

		tables, err := tpch.SelectTables(*tableNames)
		if err != nil {
			return errorsx.Wrap(err)
		}

		engine, closeEngine, err := createEngine(fs, *engineURL, *rowGroupSize)
		if err != nil {
			return errorsx.Wrap(err)
		}
		defer closeEngine()

		options := tpchdal.ConvertOptions{
			Naming:              tpch.NamingPlain,
			MaxConcurrentTables: *parallel,
		}
		if *tpchColumnPrefixes {
			options.Naming = tpch.NamingTPCH
		}
		if *shouldVerify {
			options.Inspector = parquetdb.NewParquetInspector()
		}

		if *shouldProfile {
			err = pathsConfig.EnsurePaths(fs)
			if err != nil {
				return errorsx.Wrap(err)
			}
			defer profile.Start(profile.ProfilePath(pathsConfig.DestDir), profile.CPUProfile).Stop()
		}

		logger.Debug("reading from %q, writing to %q", pathsConfig.SourceDir, pathsConfig.DestDir)

		converter := tpchdal.NewConverter(logger, fs, pathsConfig, engine, options)
		_, err = converter.ConvertAll(tables)
		if err != nil {
			return errorsx.Wrap(err)
		}

		return nil
	}

	err := run()
	if err != nil {
		log.Fatalf("error: %q\nStack trace:\n%s\n", err.Error(), err.Stack())
	}
}

func createEngine(fs gofs.Fs, engineURL string, rowGroupSize int64) (tpchdal.Engine, func(), errorsx.Error) {
	connectionURL, err := tpchdal.ParseEngineURL(engineURL)
	if err != nil {
		return nil, nil, err
	}

	switch connectionURL.Type {
	case tpchdal.EngineTypeNative:
		return parquetdb.NewNativeEngine(fs, rowGroupSize), func() {}, nil
	case tpchdal.EngineTypeDuckDB:
		engine, err := parquetdb.NewDuckDBEngine(fs, connectionURL.ConnectionPath)
		if err != nil {
			return nil, nil, err
		}
		closeFunc := func() {
			closeErr := engine.Close()
			if closeErr != nil {
				log.Printf("failed to close the %s engine: %s\n", engine.Name(), closeErr)
			}
		}
		return engine, closeFunc, nil
	default:
		return nil, nil, errorsx.Errorf("unhandled engine type: %q", connectionURL.Type)
	}
}
