package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"wcgoals/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Source   SourceConfig   `mapstructure:"source"`
	Plot     PlotConfig     `mapstructure:"plot"`
	Export   ExportConfig   `mapstructure:"export"`
	Database DatabaseConfig `mapstructure:"database"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// AnalysisConfig holds the test parameters.
type AnalysisConfig struct {
	Alpha        float64 `mapstructure:"alpha"`
	MenSource    string  `mapstructure:"men_source"`
	WomenSource  string  `mapstructure:"women_source"`
	OutputFormat string  `mapstructure:"output_format"`
}

// SourceConfig governs dataset retrieval.
type SourceConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// PlotConfig controls the goals histogram.
type PlotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
}

// ExportConfig sets the prepared-sample CSV export.
type ExportConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity for run history.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Load builds configuration from an optional file and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v, path != ""); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper, explicit bool) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "wcgoals")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("analysis.alpha", 0.10)
	v.SetDefault("analysis.output_format", "json")

	v.SetDefault("source.request_timeout", "30s")
	v.SetDefault("source.user_agent", "wcgoals/1.0")

	v.SetDefault("plot.enabled", true)
	v.SetDefault("plot.path", "reports/figures/goals_hist.png")
	v.SetDefault("plot.width", 1024)
	v.SetDefault("plot.height", 640)

	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("analysis.alpha must be in (0,1), got %v", c.Analysis.Alpha)
	}
	switch c.Analysis.OutputFormat {
	case "json", "table":
	default:
		return fmt.Errorf("analysis.output_format must be json or table, got %q", c.Analysis.OutputFormat)
	}
	if c.Plot.Enabled {
		if c.Plot.Path == "" {
			return fmt.Errorf("plot.path must be set when plot.enabled is true")
		}
		if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
			return fmt.Errorf("plot.width and plot.height must be greater than zero")
		}
	}
	if c.Source.RequestTimeout < 0 {
		return fmt.Errorf("source.request_timeout cannot be negative")
	}
	return nil
}

// ResolveAlpha returns either the CLI override or config default.
func (c *Config) ResolveAlpha(override float64) float64 {
	if override > 0 {
		return override
	}
	return c.Analysis.Alpha
}

// ResolveSource returns the CLI value when set, falling back to fallback.
func ResolveSource(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
