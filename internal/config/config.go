package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the environment-driven settings of a ScorpiUI client app.
type Config struct {
	AppEnv           string
	AppName          string
	ServerURL        string
	LogLevel         string
	TitleSeparator   string
	MetricsPort      string
	HandshakeTimeout time.Duration
}

// Load reads configuration from the environment. SCORPIUI_SERVER_URL is
// required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:         os.Getenv("APP_ENV"),
		AppName:        os.Getenv("APP_NAME"),
		ServerURL:      os.Getenv("SCORPIUI_SERVER_URL"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		TitleSeparator: os.Getenv("SCORPIUI_TITLE_SEPARATOR"),
		MetricsPort:    os.Getenv("SCORPIUI_METRICS_PORT"),
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("missing required environment variable SCORPIUI_SERVER_URL")
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.TitleSeparator == "" {
		cfg.TitleSeparator = " | "
	}

	cfg.HandshakeTimeout = 10 * time.Second
	if v := os.Getenv("SCORPIUI_HANDSHAKE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCORPIUI_HANDSHAKE_TIMEOUT: %w", err)
		}
		cfg.HandshakeTimeout = d
	}
	return cfg, nil
}
