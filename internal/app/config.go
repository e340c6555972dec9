package app

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"go.uber.org/zap/zapcore"
)

// Storage drivers.
const (
	DriverJSONFile = "jsonfile"
	DriverPostgres = "postgres"
)

// Config holds the complete application configuration, loadable from
// environment variables (ERCM_ prefix) or YAML config files.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Locale  LocaleConfig  `yaml:"locale"`
}

// StorageConfig selects where the collections live.
type StorageConfig struct {
	Driver      string `yaml:"driver" default:"jsonfile" usage:"Storage backend: jsonfile or postgres"`
	DataDir     string `yaml:"data_dir" default:"data" usage:"Directory with the JSON collection files"`
	DatabaseURL string `yaml:"database_url" usage:"PostgreSQL connection URL (ERCM_STORAGE_DATABASE_URL or DATABASE_URL)"`
}

// LogConfig controls the structured log. The console owns stdout, so logs
// always go to a file.
type LogConfig struct {
	Level string `yaml:"level" default:"info" usage:"Minimum log level"`
	File  string `yaml:"file" default:"ercm.log" usage:"Log file path"`
}

// LocaleConfig controls how money, percentages and dates are shown and read.
type LocaleConfig struct {
	Language   string `yaml:"language" default:"de-DE" usage:"BCP 47 language tag for number formatting"`
	DateLayout string `yaml:"date_layout" default:"2.1.2006" usage:"Go time layout for dates"`
	Currency   string `yaml:"currency" default:"€" usage:"Currency symbol appended to amounts"`
}

// LoadConfig loads configuration from environment variables and the first
// YAML file found. A non-empty path is tried before the default locations
// and must exist.
func LoadConfig(path string) (*Config, error) {
	files := []string{"ercm.yaml", "/etc/ercm/config.yaml"}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, "config file")
		}
		files = append([]string{path}, files...)
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ERCM",
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
			".yml":  aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration can be wired.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverJSONFile:
		if c.Storage.DataDir == "" {
			return errors.New("storage data dir is required for the jsonfile driver")
		}
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("database URL is required: set ERCM_STORAGE_DATABASE_URL or DATABASE_URL")
		}
	default:
		return errors.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	if c.Locale.DateLayout == "" {
		return errors.New("date layout is required")
	}
	return nil
}

// applyPlatformDefaults falls back to the conventional DATABASE_URL variable.
func (c *Config) applyPlatformDefaults() {
	if c.Storage.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Storage.DatabaseURL = v
		}
	}
}
