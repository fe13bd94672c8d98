package tpchdal

import (
	"fmt"
	"path/filepath"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/tpch-parquet/tpch"
	"gopkg.in/yaml.v3"
)

const (
	SourceFileSuffix = ".csv"
	DestFileSuffix   = ".parquet"
)

type PathsConfig struct {
	SourceDir string `yaml:"source_dir"`
	DestDir   string `yaml:"dest_dir"`
}

// NewPathsConfigFromRoot lays the directories out the way the benchmark repository does:
// dbgen output under benchmarks/tpch/data, parquet files under examples/tpch/data.
func NewPathsConfigFromRoot(rootDir string) *PathsConfig {
	return &PathsConfig{
		SourceDir: filepath.Join(rootDir, "benchmarks", "tpch", "data"),
		DestDir:   filepath.Join(rootDir, "examples", "tpch", "data"),
	}
}

// LoadPathsConfigFile reads a YAML file of the form
//
//	source_dir: benchmarks/tpch/data
//	dest_dir: examples/tpch/data
//
// Relative directories are resolved against the file's directory. Directories the file leaves out are taken from defaults.
func LoadPathsConfigFile(fs gofs.Fs, path string, defaults *PathsConfig) (*PathsConfig, errorsx.Error) {
	b, err := fs.ReadFile(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	var fromFile PathsConfig
	err = yaml.Unmarshal(b, &fromFile)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	baseDir := filepath.Dir(path)
	resolve := func(dir, defaultDir string) string {
		if dir == "" {
			return defaultDir
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(baseDir, dir)
	}

	return &PathsConfig{
		SourceDir: resolve(fromFile.SourceDir, defaults.SourceDir),
		DestDir:   resolve(fromFile.DestDir, defaults.DestDir),
	}, nil
}

func (pc *PathsConfig) SourcePath(table tpch.TableName) string {
	return filepath.Join(pc.SourceDir, fmt.Sprintf("%s%s", table, SourceFileSuffix))
}

func (pc *PathsConfig) DestPath(table tpch.TableName) string {
	return filepath.Join(pc.DestDir, fmt.Sprintf("%s%s", table, DestFileSuffix))
}

func (pc *PathsConfig) EnsurePaths(fs gofs.Fs) errorsx.Error {
	err := fs.MkdirAll(pc.DestDir, 0755)
	if err != nil {
		return errorsx.Wrap(ErrDestinationWrite, "path", pc.DestDir, "cause", err.Error())
	}

	return nil
}
