package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	ReportingWindowStart string   `mapstructure:"REPORTING_WINDOW_START"`
	TrendFloorYear       int      `mapstructure:"TREND_FLOOR_YEAR"`
	MaxUploadBytes       int64    `mapstructure:"MAX_UPLOAD_BYTES"`
	RateLimitRPS         float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst       int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REPORTING_WINDOW_START", "2024-10-01")
	v.SetDefault("TREND_FLOOR_YEAR", 2021)
	v.SetDefault("MAX_UPLOAD_BYTES", 50<<20)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("REPORTING_WINDOW_START")
	v.BindEnv("TREND_FLOOR_YEAR")
	v.BindEnv("MAX_UPLOAD_BYTES")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// WindowStart parses REPORTING_WINDOW_START into a UTC date.
func (c *Config) WindowStart() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.ReportingWindowStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("REPORTING_WINDOW_START must be a YYYY-MM-DD date, got %q", c.ReportingWindowStart)
	}
	return t.UTC(), nil
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if _, err := c.WindowStart(); err != nil {
		return err
	}
	if c.TrendFloorYear < 1900 || c.TrendFloorYear > 9999 {
		return fmt.Errorf("TREND_FLOOR_YEAR must be a four-digit year, got %d", c.TrendFloorYear)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
