package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	SourceFile   = "file"
	SourceShards = "shards"
	SourceMinio  = "minio"

	DefaultDataPath = "cep_ordenado.dat"
)

var validSources = []string{SourceFile, SourceShards, SourceMinio}

// DataConfig describes where the sorted record store lives.
type DataConfig struct {
	Source         string   `yaml:"source"`
	Path           string   `yaml:"path"`
	Shards         []string `yaml:"shards"`
	UseMmap        bool     `yaml:"useMmap"`
	Lock           bool     `yaml:"lock"`
	StrictLength   bool     `yaml:"strictLength"`
	BufferPoolSize int      `yaml:"bufferPoolSize"`
}

// MinioConfig is used when data.source is "minio".
type MinioConfig struct {
	Endpoint        string          `yaml:"endpoint"`
	AccessKeyID     string          `yaml:"accessKeyID"`
	SecretAccessKey string          `yaml:"secretAccessKey"`
	Bucket          string          `yaml:"bucket"`
	Object          string          `yaml:"object"`
	Region          string          `yaml:"region"`
	UseSSL          bool            `yaml:"useSSL"`
	RequestTimeout  DurationSeconds `yaml:"requestTimeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Configuration struct {
	Data  DataConfig  `yaml:"data"`
	Minio MinioConfig `yaml:"minio"`
	Log   LogConfig   `yaml:"log"`
}

// NewConfiguration starts from defaults and overlays every file in order.
// Empty files are skipped.
func NewConfiguration(files ...string) (*Configuration, error) {
	config := &Configuration{
		Data:  getDefaultDataConfig(),
		Minio: getDefaultMinioConfig(),
		Log:   getDefaultLoggerConfig(),
	}
	for _, filePath := range files {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", filePath)
		}
		if len(data) == 0 {
			continue
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", filePath)
		}
	}
	return config, nil
}

// Validate checks that the selected source has what it needs.
func (c *Configuration) Validate() error {
	if !lo.Contains(validSources, c.Data.Source) {
		return errors.Newf("unknown data source %q, want one of %v", c.Data.Source, validSources)
	}
	switch c.Data.Source {
	case SourceFile:
		if c.Data.Path == "" {
			return errors.New("data.path is required for the file source")
		}
	case SourceShards:
		if len(c.Data.Shards) == 0 {
			return errors.New("data.shards is required for the shards source")
		}
		if lo.Contains(c.Data.Shards, "") {
			return errors.New("data.shards contains an empty path")
		}
	case SourceMinio:
		missing := lo.Filter([]lo.Tuple2[string, string]{
			lo.T2("minio.endpoint", c.Minio.Endpoint),
			lo.T2("minio.bucket", c.Minio.Bucket),
			lo.T2("minio.object", c.Minio.Object),
		}, func(kv lo.Tuple2[string, string], _ int) bool { return kv.B == "" })
		if len(missing) > 0 {
			return errors.Newf("%s is required for the minio source", missing[0].A)
		}
	}
	return nil
}

func getDefaultDataConfig() DataConfig {
	return DataConfig{
		Source:         SourceFile,
		Path:           DefaultDataPath,
		UseMmap:        true,
		BufferPoolSize: 16,
	}
}

func getDefaultMinioConfig() MinioConfig {
	return MinioConfig{
		Region:         "us-east-1",
		RequestTimeout: NewDurationSecondsFromInt(10),
	}
}

func getDefaultLoggerConfig() LogConfig {
	return LogConfig{
		Level:  "warn",
		Format: "text",
	}
}
