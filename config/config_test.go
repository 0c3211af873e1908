package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/statdata/config"
	"github.com/katalvlaran/statdata/extract"
	"github.com/katalvlaran/statdata/source"
)

// clearEnv unsets every STATDATA variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"WIDTH", "SENTINEL", "OVERFLOW", "ROUNDING", "WORKERS", "LOGGING_LEVEL", "LOGGING_FORMAT"} {
		key := config.EnvPrefix + "_" + name
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		}
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "int8", cfg.Width)
	require.Equal(t, int64(-1), cfg.Sentinel)
	require.Equal(t, "wrap", cfg.Overflow)
	require.Equal(t, "half-up", cfg.Rounding)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)

	w, err := cfg.ParsedWidth()
	require.NoError(t, err)
	require.Equal(t, extract.Int8, w)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATDATA_WIDTH", "uint16")
	t.Setenv("STATDATA_SENTINEL", "65535")
	t.Setenv("STATDATA_OVERFLOW", "saturate")
	t.Setenv("STATDATA_WORKERS", "4")
	t.Setenv("STATDATA_LOGGING_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "uint16", cfg.Width)
	require.Equal(t, int64(65535), cfg.Sentinel)
	require.Equal(t, "saturate", cfg.Overflow)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileAndPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
width: int32
sentinel: 0
overflow: error
rounding: half-away
workers: 2
logging:
  level: warn
  format: json
`)
	t.Setenv("STATDATA_WORKERS", "8")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "int32", cfg.Width)
	require.Equal(t, int64(0), cfg.Sentinel) // explicit zero survives the overlay
	require.Equal(t, "error", cfg.Overflow)
	require.Equal(t, "half-away", cfg.Rounding)
	require.Equal(t, 8, cfg.Workers) // env wins
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFileIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "int8", cfg.Width)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(writeFile(t, "width: float64\n"))
	require.ErrorIs(t, err, extract.ErrConfiguration)
	require.Contains(t, err.Error(), "Config.Width")

	_, err = config.Load(writeFile(t, "width: uint8\n")) // default sentinel -1
	require.ErrorIs(t, err, extract.ErrConfiguration)

	_, err = config.Load(writeFile(t, "colour: blue\n")) // strict decoding
	require.ErrorIs(t, err, extract.ErrConfiguration)

	_, err = config.Load(writeFile(t, "workers: 5000\n"))
	require.ErrorIs(t, err, extract.ErrConfiguration)

	_, err = config.Load(writeFile(t, "workers: 0\n")) // explicit zero is not "absent"
	require.ErrorIs(t, err, extract.ErrConfiguration)
	require.Contains(t, err.Error(), "Config.Workers")

	t.Setenv("STATDATA_SENTINEL", "not-a-number")
	_, err = config.Load("")
	require.ErrorIs(t, err, extract.ErrConfiguration)
}

func TestOptionsDriveBuild(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
width: uint8
sentinel: 0
overflow: saturate
workers: 2
logging:
  level: debug
  format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	var logs bytes.Buffer
	opts, err := cfg.Options(&logs)
	require.NoError(t, err)
	o := extract.NewOptions(opts...)
	require.Equal(t, extract.OverflowSaturate, o.Overflow())
	require.Equal(t, 2, o.Workers())
	require.Equal(t, extract.RoundHalfUp, o.Rounding())

	w, err := cfg.ParsedWidth()
	require.NoError(t, err)
	tbl, err := source.NewTable([][]float64{{-5, 300, 12.5}})
	require.NoError(t, err)

	f, err := extract.BuildFrame(context.Background(), w, tbl.Indices(), tbl, opts...)
	require.NoError(t, err)
	for i, want := range []int64{0, 255, 13} {
		got, err := f.Int64At(i, 0)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Contains(t, logs.String(), `"msg":"dataset build finished"`)
}

func TestValidateDirect(t *testing.T) {
	cfg := config.Config{
		Width:    "int16",
		Sentinel: -40000,
		Overflow: "wrap",
		Rounding: "half-up",
		Workers:  1,
		Logging:  config.LoggingConfig{Level: "info", Format: "text"},
	}
	require.ErrorIs(t, cfg.Validate(), extract.ErrConfiguration)

	cfg.Sentinel = -1
	require.NoError(t, cfg.Validate())

	cfg.Rounding = "banker"
	require.ErrorIs(t, cfg.Validate(), extract.ErrConfiguration)
}
