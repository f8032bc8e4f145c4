// Package config loads and exposes application configuration (TOML).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath = "config.toml"
	DefaultHTTPAddr   = ":8080"
	DefaultMaxChars   = 1900
	DefaultMaxLines   = 17

	// MinMaxChars and MaxMaxChars bound the per-request and configured
	// character limit; the upper bound is Discord's message cap.
	MinMaxChars = 100
	MaxMaxChars = 2000
	// MaxMaxLines bounds the readable-line limit (0 disables it).
	MaxMaxLines = 100

	DefaultMessagesPerSecond = 1.0
	DefaultMaxRetries        = 3
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Limits   LimitsConfig   `toml:"limits"`
	Discord  DiscordConfig  `toml:"discord"`
	Delivery DeliveryConfig `toml:"delivery"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LimitsConfig holds the default chunking limits applied when a request
// does not override them.
type LimitsConfig struct {
	MaxChars int `toml:"max_chars"`
	MaxLines int `toml:"max_lines"`
}

// DiscordConfig holds the outbound Discord target: either a webhook URL or
// a bot token plus channel ID.
type DiscordConfig struct {
	WebhookURL string `toml:"webhook_url"`
	BotToken   string `toml:"bot_token"`
	ChannelID  string `toml:"channel_id"`
	Username   string `toml:"username"`
}

// DeliveryConfig holds pacing and retry parameters for outbound sends.
type DeliveryConfig struct {
	MessagesPerSecond float64 `toml:"messages_per_second"`
	MaxRetries        int     `toml:"max_retries"`
}

// Load reads and parses the TOML config file at path and applies default
// values for missing fields. An empty path falls back to DefaultConfigPath;
// a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Limits: LimitsConfig{
			MaxChars: DefaultMaxChars,
			MaxLines: DefaultMaxLines,
		},
		Delivery: DeliveryConfig{
			MessagesPerSecond: DefaultMessagesPerSecond,
			MaxRetries:        DefaultMaxRetries,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configured limits and delivery parameters.
func (c Config) Validate() error {
	if err := ValidateLimits(c.Limits.MaxChars, c.Limits.MaxLines); err != nil {
		return err
	}
	if c.Delivery.MessagesPerSecond <= 0 {
		return fmt.Errorf("delivery messages_per_second must be positive, got %g", c.Delivery.MessagesPerSecond)
	}
	if c.Delivery.MaxRetries < 0 {
		return fmt.Errorf("delivery max_retries must not be negative, got %d", c.Delivery.MaxRetries)
	}
	if c.Discord.WebhookURL != "" && !strings.Contains(c.Discord.WebhookURL, "/api/webhooks/") {
		return fmt.Errorf("discord webhook_url does not look like a Discord webhook URL")
	}
	return nil
}

// ValidateLimits checks a (max_chars, max_lines) pair against the allowed
// ranges. It is shared between config loading and per-request overrides.
func ValidateLimits(maxChars, maxLines int) error {
	if maxChars < MinMaxChars || maxChars > MaxMaxChars {
		return fmt.Errorf("max_chars must be between %d and %d, got %d", MinMaxChars, MaxMaxChars, maxChars)
	}
	if maxLines < 0 || maxLines > MaxMaxLines {
		return fmt.Errorf("max_lines must be between 0 and %d, got %d", MaxMaxLines, maxLines)
	}
	return nil
}
