package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL            = "http://localhost:8088"
	DefaultAPITimeout         = 30 * time.Second
	DefaultMaxRetries         = 3
	DefaultPingInterval       = 5 * time.Second
	DefaultReconnectBaseDelay = 500 * time.Millisecond
	DefaultReconnectMaxDelay  = 90 * time.Second
	DefaultBufferSize         = 100
	DefaultHandshakeTimeout   = 10 * time.Second
	DefaultWriteTimeout       = 1 * time.Second
	DefaultCloseTimeout       = 1 * time.Second
	DefaultHealthPort         = 9090
	DefaultMetricsPath        = "/metrics"
	DefaultHealthPingInterval = 30 * time.Second
	DefaultHealthPingTimeout  = 5 * time.Second
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

// ApplyDefaults fills zero-valued optional fields.
func (c *Config) ApplyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RequestsPerSecond > 0 && c.API.Burst == 0 {
		c.API.Burst = 1
	}

	// Events defaults
	if c.Events.PingInterval == 0 {
		c.Events.PingInterval = DefaultPingInterval
	}
	if c.Events.ReconnectBaseDelay == 0 {
		c.Events.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Events.ReconnectMaxDelay == 0 {
		c.Events.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Events.BufferSize == 0 {
		c.Events.BufferSize = DefaultBufferSize
	}
	if c.Events.HandshakeTimeout == 0 {
		c.Events.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Events.WriteTimeout == 0 {
		c.Events.WriteTimeout = DefaultWriteTimeout
	}
	if c.Events.CloseTimeout == 0 {
		c.Events.CloseTimeout = DefaultCloseTimeout
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
	if c.Health.MetricsPath == "" {
		c.Health.MetricsPath = DefaultMetricsPath
	}
	if c.Health.PingInterval == 0 {
		c.Health.PingInterval = DefaultHealthPingInterval
	}
	if c.Health.PingTimeout == 0 {
		c.Health.PingTimeout = DefaultHealthPingTimeout
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
