package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrEmptyApplication = errors.New("application name is required")
	ErrInvalidBaseURL   = errors.New("invalid base URL")
	ErrAlreadyStarted   = errors.New("already started")
	ErrAlreadyClosed    = errors.New("already closed")
)

// State is the connection state. Only the manager changes it.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "invalid"
	}
}

// validTransitions lists the states reachable from each state.
var validTransitions = map[State][]State{
	StateDisconnected: {StateConnecting, StateClosed},
	StateConnecting:   {StateConnected, StateDisconnected, StateReconnecting, StateClosed},
	StateConnected:    {StateReconnecting, StateClosed},
	StateReconnecting: {StateConnecting, StateClosed},
	StateClosed:       nil,
}

func canTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SubscriptionRequest selects the Stasis application to receive events for.
type SubscriptionRequest struct {
	App string

	// SubscribeAll asks for every event source instead of only the
	// resources the application subscribed to. nil means true.
	SubscribeAll *bool
}

// NewSubscription returns a request for app with SubscribeAll left at its
// default.
func NewSubscription(app string) SubscriptionRequest {
	return SubscriptionRequest{App: app}
}

// WithSubscribeAll returns a copy of r with SubscribeAll set.
func (r SubscriptionRequest) WithSubscribeAll(all bool) SubscriptionRequest {
	r.SubscribeAll = &all
	return r
}

func (r SubscriptionRequest) subscribeAll() bool {
	if r.SubscribeAll == nil {
		return true
	}
	return *r.SubscribeAll
}

// ManagerConfig configures the Connection Manager.
type ManagerConfig struct {
	BaseURL            string        // ARI base URL (e.g., http://localhost:8088)
	Username           string        // ARI user
	Password           string        // ARI password
	PingInterval       time.Duration // Keepalive ping period
	ReconnectBaseDelay time.Duration // Backoff step per failed attempt
	ReconnectMaxDelay  time.Duration // Backoff cap
	BufferSize         int           // Event channel capacity
	HandshakeTimeout   time.Duration // WebSocket handshake timeout
	WriteTimeout       time.Duration // Deadline for control frames
	CloseTimeout       time.Duration // Wait for the reader after a close frame
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		PingInterval:       5 * time.Second,
		ReconnectBaseDelay: 500 * time.Millisecond,
		ReconnectMaxDelay:  90 * time.Second,
		BufferSize:         100,
		HandshakeTimeout:   10 * time.Second,
		WriteTimeout:       time.Second,
		CloseTimeout:       time.Second,
	}
}

// Stats provides counters about the manager.
type Stats struct {
	State         State
	Session       string // ID of the current socket, empty when none
	Frames        int64  // Text frames read
	Events        int64  // Events placed on the channel
	DecodeErrors  int64  // Frames discarded as malformed
	Reconnects    int64  // Successful reconnects
	PingsSent     int64
	PingsReceived int64
	PongsReceived int64
	ConnectedAt   time.Time
}
