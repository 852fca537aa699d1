package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/ari-events/internal/ari"
	"github.com/rickgao/ari-events/internal/connection"
	"github.com/rickgao/ari-events/internal/poller"
	"github.com/rickgao/ari-events/internal/version"
)

// statusSource is the part of ari.Client the health endpoint reads.
type statusSource interface {
	State() connection.State
	Stats() ari.Stats
}

// livenessSource is the part of poller.Poller the health endpoint reads.
type livenessSource interface {
	Last() poller.Result
}

type healthResponse struct {
	Status     string         `json:"status"`
	Version    string         `json:"version"`
	Connection connectionInfo `json:"connection"`
	Asterisk   asteriskInfo   `json:"asterisk"`
}

type connectionInfo struct {
	State        string    `json:"state"`
	Session      string    `json:"session,omitempty"`
	ConnectedAt  time.Time `json:"connected_at,omitzero"`
	Frames       int64     `json:"frames"`
	Events       int64     `json:"events"`
	DecodeErrors int64     `json:"decode_errors"`
	Reconnects   int64     `json:"reconnects"`
	Dispatched   int64     `json:"dispatched"`
	HandlerErrs  int64     `json:"handler_errors"`
}

type asteriskInfo struct {
	OK         bool      `json:"ok"`
	AsteriskID string    `json:"asterisk_id,omitempty"`
	LatencyMs  float64   `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at,omitzero"`
	Error      string    `json:"error,omitempty"`
}

// newHealthRouter serves /healthz, /version and the Prometheus endpoint.
// maxPingAge is how old a successful ping may be before the service is
// reported as degraded.
func newHealthRouter(client statusSource, liveness livenessSource, metricsPath string, maxPingAge time.Duration, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		resp := buildHealth(client, liveness, maxPingAge)

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Debug("failed to write health response", "error", err)
		}
	})

	r.Get("/version", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version":    version.Version,
			"commit":     version.Commit,
			"build_time": version.BuildTime,
			"go":         version.GoVersion(),
		})
	})

	r.Method(http.MethodGet, metricsPath, promhttp.Handler())

	return r
}

func buildHealth(client statusSource, liveness livenessSource, maxPingAge time.Duration) healthResponse {
	state := client.State()
	stats := client.Stats()
	last := liveness.Last()

	resp := healthResponse{
		Version: version.Version,
		Connection: connectionInfo{
			State:        state.String(),
			Session:      stats.Connection.Session,
			ConnectedAt:  stats.Connection.ConnectedAt,
			Frames:       stats.Connection.Frames,
			Events:       stats.Connection.Events,
			DecodeErrors: stats.Connection.DecodeErrors,
			Reconnects:   stats.Connection.Reconnects,
			Dispatched:   stats.Router.Dispatched,
			HandlerErrs:  stats.Router.HandlerErrors,
		},
		Asterisk: asteriskInfo{
			OK:         last.OK,
			AsteriskID: last.AsteriskID,
			LatencyMs:  float64(last.Latency.Microseconds()) / 1000,
			CheckedAt:  last.CheckedAt,
		},
	}
	if last.Err != nil {
		resp.Asterisk.Error = last.Err.Error()
	}

	pingFresh := last.OK && time.Since(last.CheckedAt) <= maxPingAge
	switch {
	case state != connection.StateConnected:
		resp.Status = "unhealthy"
	case !pingFresh:
		resp.Status = "degraded"
	default:
		resp.Status = "healthy"
	}
	return resp
}
