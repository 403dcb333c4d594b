package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// APIConfig holds connection settings for the clinical records backend.
type APIConfig struct {
	// BaseURL is the backend API root, including the /api prefix
	BaseURL string
	// Timeout bounds a single HTTP request
	Timeout time.Duration
	// RateLimitRPS caps outgoing requests per second (0 disables)
	RateLimitRPS float64
	// RateLimitBurst is the limiter burst size
	RateLimitBurst int
}

// SessionConfig holds persisted session settings.
type SessionConfig struct {
	// File is the path of the persisted session record
	File string
}

// MetricsConfig holds the optional Prometheus listener settings.
type MetricsConfig struct {
	// ListenAddr like ":9091"; empty disables the listener
	ListenAddr string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("MEDREC_API_URL", "http://localhost:8080/api")
	v.SetDefault("MEDREC_HTTP_TIMEOUT", "30s")
	v.SetDefault("MEDREC_RATE_LIMIT_RPS", 0.0)
	v.SetDefault("MEDREC_RATE_LIMIT_BURST", 1)
	v.SetDefault("MEDREC_SESSION_FILE", defaultSessionFile())
	v.SetDefault("MEDREC_METRICS_ADDR", "")
	v.SetDefault("MEDREC_LOG_LEVEL", "info")

	v.BindEnv("MEDREC_API_URL")
	v.BindEnv("MEDREC_HTTP_TIMEOUT")
	v.BindEnv("MEDREC_RATE_LIMIT_RPS")
	v.BindEnv("MEDREC_RATE_LIMIT_BURST")
	v.BindEnv("MEDREC_SESSION_FILE")
	v.BindEnv("MEDREC_METRICS_ADDR")
	v.BindEnv("MEDREC_LOG_LEVEL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	timeout, err := time.ParseDuration(v.GetString("MEDREC_HTTP_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid MEDREC_HTTP_TIMEOUT: %w", err)
	}

	return &Config{
		API: APIConfig{
			BaseURL:        v.GetString("MEDREC_API_URL"),
			Timeout:        timeout,
			RateLimitRPS:   v.GetFloat64("MEDREC_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("MEDREC_RATE_LIMIT_BURST"),
		},
		Session: SessionConfig{
			File: v.GetString("MEDREC_SESSION_FILE"),
		},
		Metrics: MetricsConfig{
			ListenAddr: v.GetString("MEDREC_METRICS_ADDR"),
		},
		Log: LogConfig{
			Level: v.GetString("MEDREC_LOG_LEVEL"),
		},
	}, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".medrec", "session.json")
	}
	return filepath.Join(home, ".medrec", "session.json")
}
