package ari

import (
	"log/slog"

	"github.com/rickgao/ari-events/internal/api"
	"github.com/rickgao/ari-events/internal/auth"
	"github.com/rickgao/ari-events/internal/config"
	"github.com/rickgao/ari-events/internal/connection"
)

// NewFromConfig builds a Client from a loaded configuration file. The
// password file, if set, is read here.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	creds, err := auth.LoadCredentials(cfg.API.Username, cfg.API.Password, cfg.API.PasswordFile)
	if err != nil {
		return nil, err
	}

	all := cfg.Events.SubscribeAllEvents()
	c := Config{
		BaseURL:      cfg.API.BaseURL,
		Username:     creds.Username,
		Password:     creds.Password,
		SubscribeAll: &all,
		Events: connection.ManagerConfig{
			PingInterval:       cfg.Events.PingInterval,
			ReconnectBaseDelay: cfg.Events.ReconnectBaseDelay,
			ReconnectMaxDelay:  cfg.Events.ReconnectMaxDelay,
			BufferSize:         cfg.Events.BufferSize,
			HandshakeTimeout:   cfg.Events.HandshakeTimeout,
			WriteTimeout:       cfg.Events.WriteTimeout,
			CloseTimeout:       cfg.Events.CloseTimeout,
		},
	}

	apiOpts := []api.ClientOption{
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, api.DefaultRetryBackoff),
		api.WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst),
	}
	opts = append([]Option{WithAPIOptions(apiOpts...)}, opts...)

	return New(c, logger, opts...)
}
