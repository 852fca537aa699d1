package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return err
	}

	if c.Events.Application == "" {
		return errors.New("events.application is required")
	}
	if c.Events.PingInterval <= 0 {
		return errors.New("events.ping_interval must be > 0")
	}
	if c.Events.ReconnectBaseDelay <= 0 {
		return errors.New("events.reconnect_base_delay must be > 0")
	}
	if c.Events.ReconnectMaxDelay < c.Events.ReconnectBaseDelay {
		return fmt.Errorf("events.reconnect_max_delay (%v) cannot be less than reconnect_base_delay (%v)",
			c.Events.ReconnectMaxDelay, c.Events.ReconnectBaseDelay)
	}
	if c.Events.BufferSize < 1 {
		return errors.New("events.buffer_size must be >= 1")
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}
	if !strings.HasPrefix(c.Health.MetricsPath, "/") {
		return fmt.Errorf("health.metrics_path must start with /, got %q", c.Health.MetricsPath)
	}
	if c.Health.MetricsPath == "/healthz" {
		return errors.New("health.metrics_path cannot be /healthz")
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (a *APIConfig) validate() error {
	if a.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("api.base_url must include a host")
	}

	if a.Username == "" {
		return errors.New("api.username is required")
	}
	if a.Password == "" && a.PasswordFile == "" {
		return errors.New("api.password or api.password_file is required")
	}
	if a.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if a.RequestsPerSecond < 0 {
		return errors.New("api.requests_per_second must be >= 0")
	}
	return nil
}
