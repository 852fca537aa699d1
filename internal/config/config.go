package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the root configuration for an ARI event client.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Events EventsConfig `yaml:"events"`
	Health HealthConfig `yaml:"health"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds the Asterisk HTTP server and ARI user settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	PasswordFile string        `yaml:"password_file"` // takes precedence over password
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`

	// RequestsPerSecond limits REST calls made by handlers. Zero disables.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// EventsConfig holds event socket settings.
type EventsConfig struct {
	Application        string        `yaml:"application"`
	SubscribeAll       *bool         `yaml:"subscribe_all"` // nil means true
	PingInterval       time.Duration `yaml:"ping_interval"`
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	BufferSize         int           `yaml:"buffer_size"`
	HandshakeTimeout   time.Duration `yaml:"handshake_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	CloseTimeout       time.Duration `yaml:"close_timeout"`
}

// HealthConfig holds the health and metrics HTTP server settings.
type HealthConfig struct {
	Port         int           `yaml:"port"`
	MetricsPath  string        `yaml:"metrics_path"`
	PingInterval time.Duration `yaml:"ping_interval"`
	PingTimeout  time.Duration `yaml:"ping_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// SubscribeAllEvents resolves the subscribe_all flag.
func (c EventsConfig) SubscribeAllEvents() bool {
	return c.SubscribeAll == nil || *c.SubscribeAll
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Level, err)
	}
	return level, nil
}
