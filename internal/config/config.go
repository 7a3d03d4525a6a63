package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/newthinker/evaldash/internal/core"
	"github.com/newthinker/evaldash/internal/gate"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report"`
	Check     CheckConfig     `mapstructure:"check" yaml:"check"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host" yaml:"host"`
	Port   int    `mapstructure:"port" yaml:"port"`
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`
}

// APIConfig points at the Metrics Service.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

type DashboardConfig struct {
	Title            string `mapstructure:"title" yaml:"title"`
	PredictionsLimit int    `mapstructure:"predictions_limit" yaml:"predictions_limit"`
	HistorySize      int    `mapstructure:"history_size" yaml:"history_size"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// ReportConfig selects where exported reports are written.
type ReportConfig struct {
	Type string   `mapstructure:"type" yaml:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path" yaml:"path"` // For localfs
	S3   S3Config `mapstructure:"s3" yaml:"s3"`     // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Region    string `mapstructure:"region" yaml:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key,omitempty"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix,omitempty"`
}

// CheckConfig holds the quality rules applied by the check command.
type CheckConfig struct {
	Rules []gate.Rule `mapstructure:"rules" yaml:"rules,omitempty"`
}

// Load reads configuration from file, layered over Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.SetEnvPrefix("EVALDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("dashboard.title", d.Dashboard.Title)
	v.SetDefault("dashboard.predictions_limit", d.Dashboard.PredictionsLimit)
	v.SetDefault("dashboard.history_size", d.Dashboard.HistorySize)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("report.type", d.Report.Type)
	v.SetDefault("report.path", d.Report.Path)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
		},
		Dashboard: DashboardConfig{
			Title:            "ML Model Dashboard",
			PredictionsLimit: 10,
			HistorySize:      50,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Report: ReportConfig{
			Type: "localfs",
			Path: "reports",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.API.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("api base_url is required"))
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("api base_url must be an absolute http(s) URL, got %q", c.API.BaseURL))
	}

	if c.Dashboard.PredictionsLimit < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("predictions_limit must be positive, got %d", c.Dashboard.PredictionsLimit))
	}
	if c.Dashboard.HistorySize < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("history_size must be positive, got %d", c.Dashboard.HistorySize))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	switch c.Report.Type {
	case "localfs":
		if c.Report.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("report path required when type is localfs"))
		}
	case "s3":
		if c.Report.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("report s3 bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("report type must be localfs or s3, got %q", c.Report.Type))
	}

	for _, r := range c.Check.Rules {
		if err := r.Validate(); err != nil {
			return core.WrapError(core.ErrConfigInvalid, err)
		}
	}

	return nil
}
