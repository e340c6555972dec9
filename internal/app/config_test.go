package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DriverJSONFile, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "ercm.log", cfg.Log.File)
	assert.Equal(t, "de-DE", cfg.Locale.Language)
	assert.Equal(t, "2.1.2006", cfg.Locale.DateLayout)
	assert.Equal(t, "€", cfg.Locale.Currency)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  data_dir: /var/lib/ercm
log:
  level: debug
locale:
  currency: EUR
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ercm", cfg.Storage.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "EUR", cfg.Locale.Currency)
	assert.Equal(t, DriverJSONFile, cfg.Storage.Driver)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ERCM_STORAGE_DRIVER", "postgres")
	t.Setenv("ERCM_STORAGE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/ercm")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/ercm", cfg.Storage.DatabaseURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage: StorageConfig{Driver: DriverJSONFile, DataDir: "data"},
			Log:     LogConfig{Level: "info", File: "ercm.log"},
			Locale:  LocaleConfig{Language: "de-DE", DateLayout: "2.1.2006", Currency: "€"},
		}
	}

	for _, tt := range []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"Valid", func(*Config) {}, true},
		{"PostgresWithoutURL", func(c *Config) { c.Storage.Driver = DriverPostgres }, false},
		{"PostgresWithURL", func(c *Config) {
			c.Storage.Driver = DriverPostgres
			c.Storage.DatabaseURL = "postgres://localhost/ercm"
		}, true},
		{"UnknownDriver", func(c *Config) { c.Storage.Driver = "sqlite" }, false},
		{"EmptyDataDir", func(c *Config) { c.Storage.DataDir = "" }, false},
		{"BadLevel", func(c *Config) { c.Log.Level = "loud" }, false},
		{"EmptyDateLayout", func(c *Config) { c.Locale.DateLayout = "" }, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
