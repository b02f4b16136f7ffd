package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains application configuration parameters.
type Config struct {
	// DataDir is where the persisted state documents live.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// NotificationsGranted stands in for a previously granted platform
	// notification permission; the persisted allow-push setting is still
	// checked per notification.
	NotificationsGranted bool `env:"NOTIFICATIONS_GRANTED" envDefault:"true"`

	// ExportDir is where one-shot exports are written.
	ExportDir string `env:"EXPORT_DIR" envDefault:"."`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
