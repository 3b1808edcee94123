package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from environment variables and .env file.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	return cfg, nil
}

// ConfigureLogger applies the LOG_LEVEL and LOG_FORMAT settings to the default logger.
func ConfigureLogger(cfg Config) {
	log.SetOutput(os.Stderr)
	switch strings.ToLower(cfg.LogFormat) {
	case "text":
		log.SetFormatter(log.TextFormatter)
	case "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		log.SetFormatter(log.JSONFormatter)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, falling back to info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// NotificationsEnabled reports whether match announcements can be published and delivered.
func (c Config) NotificationsEnabled() bool {
	return c.ProjectID != "" && c.Slack.Enabled()
}

// Enabled reports whether a bot token and channel are configured.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
