package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PORT", "DATA_PATH", "DATA_URL", "DB_PATH", "DATA_SOURCE", "LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Len(t, cfg.Dashboard.Sites, 4)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "launchdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
data:
  source: sqlite
  db_path: /var/lib/launchdash.db
dashboard:
  sites: ["KSC LC-39A"]
  slider:
    max: 20000
logging:
  level: debug
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, SourceSQLite, cfg.Data.Source)
	assert.Equal(t, "/var/lib/launchdash.db", cfg.Data.DBPath)
	assert.Equal(t, []string{"KSC LC-39A"}, cfg.Dashboard.Sites)
	assert.Equal(t, 20000.0, cfg.Dashboard.Slider.Max)
	assert.Equal(t, 1000.0, cfg.Dashboard.Slider.Step, "unset keys keep their defaults")
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
}

func TestLoad_DataSource(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		csvPath string
		url     string
	}{
		{
			name: "url only replaces default file",
			yaml: "data:\n  url: https://example.org/x.csv\n",
			url:  "https://example.org/x.csv",
		},
		{
			name:    "csv_path and url keeps both",
			yaml:    "data:\n  csv_path: local.csv\n  url: https://example.org/x.csv\n",
			csvPath: "local.csv",
			url:     "https://example.org/x.csv",
		},
		{
			name:    "empty url keeps default file",
			yaml:    "data:\n  url: \"\"\n",
			csvPath: "spacex_launch_dash.csv",
		},
		{
			name:    "no data section keeps default file",
			yaml:    "server:\n  port: 9090\n",
			csvPath: "spacex_launch_dash.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "launchdash.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0600))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.csvPath, cfg.Data.CSVPath)
			assert.Equal(t, tt.url, cfg.Data.URL)
		})
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})

	t.Run("unknown source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "source.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data:\n  source: parquet\n"), 0600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown data source")
	})

	t.Run("inverted slider", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slider.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dashboard:\n  slider:\n    min: 5\n    max: 1\n"), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("PORT and DB_PATH", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "3000")
		t.Setenv("DB_PATH", "/tmp/launches.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "/tmp/launches.db", cfg.Data.DBPath)
	})

	t.Run("invalid PORT is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "eighty")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("DATA_URL replaces default file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATA_URL", "https://example.com/launches.csv")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "https://example.com/launches.csv", cfg.Data.URL)
		assert.Empty(t, cfg.Data.CSVPath)
	})

	t.Run("DATA_PATH wins over DATA_URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATA_URL", "https://example.com/launches.csv")
		t.Setenv("DATA_PATH", "local.csv")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "local.csv", cfg.Data.CSVPath)
	})

	t.Run("DATA_SOURCE is case insensitive", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATA_SOURCE", "SQLite")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, SourceSQLite, cfg.Data.Source)
	})
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, Duration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, Duration("soon", 5*time.Second))
	assert.Equal(t, 250*time.Millisecond, Duration("250ms", 5*time.Second))
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LoggingConfig{}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LoggingConfig{Level: "WARNING"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "error"}.SlogLevel())
}
