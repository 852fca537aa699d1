package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ari_events_connection_state",
		Help: "Event socket state (0=disconnected, 1=connecting, 2=connected, 3=reconnecting, 4=closed)",
	})

	ReconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ari_events_reconnects_total",
		Help: "Reconnect attempts by outcome",
	}, []string{"outcome"})

	PingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ari_events_pings_total",
		Help: "Keepalive control frames by direction",
	}, []string{"direction"})

	FramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ari_events_frames_total",
		Help: "Text frames read from the event socket",
	})

	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ari_events_decoded_total",
		Help: "Decoded events by kind",
	}, []string{"kind"})

	DecodeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ari_events_decode_errors_total",
		Help: "Frames discarded because they were not valid JSON",
	})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ari_events_queue_depth",
		Help: "Events waiting in the event channel",
	})

	HandlerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ari_events_handler_errors_total",
		Help: "Handler failures by event kind",
	}, []string{"kind"})

	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ari_events_handler_duration_seconds",
		Help:    "Handler latency by event kind",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"kind"})

	UnhandledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ari_events_unhandled_total",
		Help: "Events dropped because no handler or fallback was registered",
	}, []string{"kind"})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ari_rest_requests_total",
		Help: "REST requests by method and status class",
	}, []string{"method", "status"})

	AsteriskUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ari_asterisk_up",
		Help: "1 if the last liveness ping succeeded",
	})
)

// RecordReconnect counts a reconnect attempt.
func RecordReconnect(ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	ReconnectsTotal.WithLabelValues(outcome).Inc()
}

// RecordEvent counts a decoded event.
func RecordEvent(kind string) {
	if kind == "" {
		kind = "Unknown"
	}
	EventsTotal.WithLabelValues(kind).Inc()
}

// RecordRequest counts a REST request. status is the HTTP status code, or 0
// when no response was received.
func RecordRequest(method string, status int) {
	RequestsTotal.WithLabelValues(method, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status <= 0:
		return "error"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// SetAsteriskUp records the result of a liveness ping.
func SetAsteriskUp(up bool) {
	if up {
		AsteriskUp.Set(1)
		return
	}
	AsteriskUp.Set(0)
}
