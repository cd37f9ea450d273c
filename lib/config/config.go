package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when none is given.
const DefaultPath = "launchdash.yaml"

// Data source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config holds all launchdash configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int    `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DataConfig says where launch records are read from.
type DataConfig struct {
	Source  string `yaml:"source"` // csv or sqlite
	CSVPath string `yaml:"csv_path"`
	URL     string `yaml:"url"`
	DBPath  string `yaml:"db_path"`
}

// DashboardConfig configures the controls and charts on the page.
type DashboardConfig struct {
	Title  string       `yaml:"title"`
	Sites  []string     `yaml:"sites"`
	Slider SliderConfig `yaml:"slider"`
	Chart  ChartConfig  `yaml:"chart"`
}

// SliderConfig configures the payload range slider.
type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// ChartConfig sets the size of rendered chart images.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "15s",
		},
		Data: DataConfig{
			Source:  SourceCSV,
			CSVPath: "spacex_launch_dash.csv",
			DBPath:  "launchdash.db",
		},
		Dashboard: DashboardConfig{
			Title: "SpaceX Launch Records Dashboard",
			Sites: []string{"CCAFS LC-40", "CCAFS SLC-40", "KSC LC-39A", "VAFB SLC-4E"},
			Slider: SliderConfig{
				Min:  0,
				Max:  10000,
				Step: 1000,
			},
			Chart: ChartConfig{
				Width:  800,
				Height: 450,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if err := dropDefaultCSVPath(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// dataKeys records which data source keys the file set explicitly.
type dataKeys struct {
	Data struct {
		CSVPath *string `yaml:"csv_path"`
		URL     *string `yaml:"url"`
	} `yaml:"data"`
}

// dropDefaultCSVPath clears the default csv_path when the file names a url
// without a csv_path, so the url is what gets loaded.
func dropDefaultCSVPath(data []byte, cfg *Config) error {
	var keys dataKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if keys.Data.URL != nil && *keys.Data.URL != "" && keys.Data.CSVPath == nil {
		cfg.Data.CSVPath = ""
	}
	return nil
}

// applyEnvOverrides lets the usual deployment variables win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		c.Data.CSVPath = v
	}
	if v := os.Getenv("DATA_URL"); v != "" {
		c.Data.URL = v
		// An explicit URL means the default local file should not shadow it.
		if os.Getenv("DATA_PATH") == "" {
			c.Data.CSVPath = ""
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Data.DBPath = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		c.Data.Source = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.CSVPath == "" && c.Data.URL == "" {
			return fmt.Errorf("data.csv_path or data.url is required for the csv source")
		}
	case SourceSQLite:
		if c.Data.DBPath == "" {
			return fmt.Errorf("data.db_path is required for the sqlite source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Dashboard.Slider.Max <= c.Dashboard.Slider.Min {
		return fmt.Errorf("dashboard.slider.max must be greater than min")
	}
	if c.Dashboard.Slider.Step < 0 {
		return fmt.Errorf("dashboard.slider.step must not be negative")
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Duration parses a duration setting, falling back when it is empty or invalid.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
