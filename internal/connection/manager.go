package connection

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rickgao/ari-events/internal/auth"
	"github.com/rickgao/ari-events/internal/event"
	"github.com/rickgao/ari-events/internal/metrics"
)

// pingPayloadSize is the number of random bytes in a keepalive ping.
const pingPayloadSize = 32

// Option configures a Manager.
type Option func(*Manager)

// WithDialer replaces the WebSocket dialer.
func WithDialer(d Dialer) Option {
	return func(m *Manager) {
		m.dialer = d
	}
}

// WithAfterFunc replaces time.After for reconnect backoff waits.
func WithAfterFunc(after func(time.Duration) <-chan time.Time) Option {
	return func(m *Manager) {
		m.after = after
	}
}

// Manager owns the event socket for one Stasis application.
//
// A Manager runs a single Connect/Disconnect cycle. Its cancellation context
// is created by NewManager; once Disconnect is called the Manager cannot be
// restarted.
type Manager struct {
	cfg    ManagerConfig
	logger *slog.Logger
	dialer Dialer
	after  func(time.Duration) <-chan time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	events chan event.Event

	mu          sync.Mutex
	state       State
	started     bool
	running     bool
	closed      bool
	session     string
	connectedAt time.Time

	frames        atomic.Int64
	emitted       atomic.Int64
	decodeErrors  atomic.Int64
	reconnects    atomic.Int64
	pingsSent     atomic.Int64
	pingsReceived atomic.Int64
	pongsReceived atomic.Int64
}

// socket is one WebSocket plus its reader goroutine.
type socket struct {
	conn   Conn
	id     string
	logger *slog.Logger

	frames chan []byte
	quit   chan struct{}
	done   chan struct{} // closed when the reader exits
	err    error         // read error, valid after done is closed

	// alive is set once the peer has shown it is healthy (any frame, ping or
	// pong).
	alive  atomic.Bool
	opened time.Time
}

// NewManager creates a new Connection Manager.
func NewManager(cfg ManagerConfig, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultManagerConfig()
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaults.PingInterval
	}
	if cfg.ReconnectBaseDelay <= 0 {
		cfg.ReconnectBaseDelay = defaults.ReconnectBaseDelay
	}
	if cfg.ReconnectMaxDelay <= 0 {
		cfg.ReconnectMaxDelay = defaults.ReconnectMaxDelay
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = defaults.CloseTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		cfg:    cfg,
		logger: logger.With("component", "connection"),
		after:  time.After,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		events: make(chan event.Event, cfg.BufferSize),
		state:  StateDisconnected,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dialer == nil {
		m.dialer = NewDialer(cfg.HandshakeTimeout)
	}

	metrics.ConnectionState.Set(float64(StateDisconnected))
	return m
}

// Connect opens the event socket and starts the background task.
//
// ctx bounds the initial handshake only. A handshake failure is returned
// as-is and Connect may be called again. Once connected, failures are
// retried in the background until Disconnect. The returned channel is
// closed when the background task exits.
func (m *Manager) Connect(ctx context.Context, req SubscriptionRequest) (<-chan event.Event, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrAlreadyClosed
	}
	if m.started {
		m.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	if req.App == "" {
		m.mu.Unlock()
		return nil, ErrEmptyApplication
	}

	creds := auth.Credentials{Username: m.cfg.Username, Password: m.cfg.Password}
	target, err := EventsURL(m.cfg.BaseURL, creds, req)
	if err != nil {
		// The base URL is fixed for the life of the manager.
		m.shutdownLocked()
		m.mu.Unlock()
		return nil, err
	}

	m.started = true
	m.setStateLocked(StateConnecting)
	m.mu.Unlock()

	m.logger.Info("connecting",
		"url", redact(target),
		"app", req.App,
		"subscribe_all", req.subscribeAll(),
	)

	dialCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.ctx, cancel)
	s, err := m.open(dialCtx, target)
	stop()
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		if s != nil {
			m.teardown(s)
		}
		return nil, ErrAlreadyClosed
	}
	if err != nil {
		m.started = false
		m.setStateLocked(StateDisconnected)
		return nil, fmt.Errorf("dial events socket: %w", err)
	}

	m.running = true
	m.setStateLocked(StateConnected)
	m.trackSocketLocked(s)

	go m.run(target, s)

	return m.events, nil
}

// Disconnect cancels the background task and waits for the socket to be
// closed. It is safe to call more than once.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	if !m.closed {
		m.logger.Info("disconnecting")
		m.shutdownLocked()
	}
	m.mu.Unlock()

	<-m.done
	return nil
}

// Done is closed once the manager has fully stopped.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stats returns current statistics.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	state, session, connectedAt := m.state, m.session, m.connectedAt
	m.mu.Unlock()

	return Stats{
		State:         state,
		Session:       session,
		Frames:        m.frames.Load(),
		Events:        m.emitted.Load(),
		DecodeErrors:  m.decodeErrors.Load(),
		Reconnects:    m.reconnects.Load(),
		PingsSent:     m.pingsSent.Load(),
		PingsReceived: m.pingsReceived.Load(),
		PongsReceived: m.pongsReceived.Load(),
		ConnectedAt:   connectedAt,
	}
}

// shutdownLocked cancels the manager. If no background task is running it
// also finishes the shutdown the task would otherwise perform.
func (m *Manager) shutdownLocked() {
	m.closed = true
	m.cancel()
	if !m.running {
		m.setStateLocked(StateClosed)
		close(m.events)
		close(m.done)
	}
}

func (m *Manager) setState(to State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStateLocked(to)
}

func (m *Manager) setStateLocked(to State) {
	if m.state == to {
		return
	}
	if !canTransition(m.state, to) {
		m.logger.Debug("ignoring state transition", "from", m.state, "to", to)
		return
	}
	m.state = to
	metrics.ConnectionState.Set(float64(to))
}

func (m *Manager) trackSocketLocked(s *socket) {
	if s == nil {
		m.session = ""
		return
	}
	m.session = s.id
	m.connectedAt = time.Now()
}

// run is the background task. It owns the socket until cancellation.
func (m *Manager) run(target string, s *socket) {
	defer close(m.done)
	defer close(m.events)

	failures := 0
	for {
		err := m.serve(s)
		m.teardown(s)

		if m.ctx.Err() != nil {
			break
		}

		if m.stable(s) {
			failures = 0
		} else {
			failures++
		}

		s.logger.Warn("event socket lost", "error", err)
		m.mu.Lock()
		m.setStateLocked(StateReconnecting)
		m.trackSocketLocked(nil)
		m.mu.Unlock()

		s = m.reconnect(target, &failures)
		if s == nil {
			break
		}
	}

	m.setState(StateClosed)
	m.logger.Info("event socket closed")
}

// serve pumps one socket. It returns nil on cancellation and the read error
// when the connection is lost.
func (m *Manager) serve(s *socket) error {
	ticker := time.NewTicker(m.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return nil

		case <-s.done:
			if s.err == nil {
				return errors.New("reader stopped")
			}
			return s.err

		case data := <-s.frames:
			if !m.handleFrame(s, data) {
				return nil
			}

		case <-ticker.C:
			m.sendPing(s)
		}
	}
}

// handleFrame decodes a text frame and queues the event. It returns false if
// the manager was cancelled while waiting for room on the channel.
func (m *Manager) handleFrame(s *socket, data []byte) bool {
	m.frames.Add(1)
	metrics.FramesTotal.Inc()
	s.alive.Store(true)

	ev, err := event.Decode(data)
	if err != nil {
		m.decodeErrors.Add(1)
		metrics.DecodeErrorsTotal.Inc()
		s.logger.Warn("discarding malformed frame", "error", err, "size", len(data))
		return true
	}

	if u, ok := ev.Payload.(event.Unknown); ok {
		s.logger.Debug("unclassified event", "type", ev.Type, "reason", u.Reason)
	}
	metrics.RecordEvent(string(ev.Kind()))

	// Blocking send: a full channel stalls the socket until the consumer
	// catches up.
	select {
	case m.events <- ev:
		m.emitted.Add(1)
		metrics.QueueDepth.Set(float64(len(m.events)))
		return true
	case <-m.ctx.Done():
		return false
	}
}

func (m *Manager) sendPing(s *socket) {
	payload := make([]byte, pingPayloadSize)
	if _, err := rand.Read(payload); err != nil {
		s.logger.Warn("failed to generate ping payload", "error", err)
		return
	}

	deadline := time.Now().Add(m.cfg.WriteTimeout)
	if err := s.conn.WriteControl(websocket.PingMessage, payload, deadline); err != nil {
		s.logger.Debug("failed to send ping", "error", err)
		return
	}

	m.pingsSent.Add(1)
	metrics.PingsTotal.WithLabelValues("sent").Inc()
	s.logger.Debug("ping sent")
}

// reconnect dials until it succeeds or the manager is cancelled, in which
// case it returns nil. failures counts consecutive failed attempts and
// drives the backoff.
func (m *Manager) reconnect(target string, failures *int) *socket {
	for {
		if *failures > 0 {
			delay := m.backoff(*failures)
			m.logger.Info("waiting before reconnect",
				"delay", delay,
				"attempt", *failures+1,
			)

			select {
			case <-m.ctx.Done():
				return nil
			case <-m.after(delay):
			}
		}

		m.setState(StateConnecting)
		s, err := m.open(m.ctx, target)
		if err != nil {
			if m.ctx.Err() != nil {
				return nil
			}
			*failures++
			metrics.RecordReconnect(false)
			m.logger.Warn("reconnection failed", "error", err, "failures", *failures)
			m.setState(StateReconnecting)
			continue
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			m.teardown(s)
			return nil
		}
		m.setStateLocked(StateConnected)
		m.trackSocketLocked(s)
		m.mu.Unlock()

		m.reconnects.Add(1)
		metrics.RecordReconnect(true)
		s.logger.Info("reconnected")
		return s
	}
}

// stable reports whether a lost socket had been healthy long enough for the
// next reconnect to skip the backoff: it must have shown life and stayed up
// for the longer of the ping interval and the base delay. A shorter-lived
// socket counts as a failed attempt.
func (m *Manager) stable(s *socket) bool {
	minUptime := max(m.cfg.ReconnectBaseDelay, m.cfg.PingInterval)
	return s.alive.Load() && time.Since(s.opened) >= minUptime
}

// backoff returns the wait before the next attempt after n consecutive
// failures: n × base, capped at max.
func (m *Manager) backoff(n int) time.Duration {
	if n < 1 {
		return 0
	}
	base, maxDelay := m.cfg.ReconnectBaseDelay, m.cfg.ReconnectMaxDelay
	if time.Duration(n) > maxDelay/base {
		return maxDelay
	}
	return min(base*time.Duration(n), maxDelay)
}

// open dials a socket, installs the control frame handlers and starts its
// reader.
func (m *Manager) open(ctx context.Context, target string) (*socket, error) {
	conn, err := m.dialer.Dial(ctx, target)
	if err != nil {
		return nil, err
	}

	s := &socket{
		conn:   conn,
		opened: time.Now(),
		id:     uuid.NewString(),
		frames: make(chan []byte),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.logger = m.logger.With("session", s.id)

	// Handlers run on the reader goroutine inside ReadMessage.
	conn.SetPingHandler(func(data string) error {
		s.alive.Store(true)
		m.pingsReceived.Add(1)
		metrics.PingsTotal.WithLabelValues("received").Inc()

		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(m.cfg.WriteTimeout))
		if err == nil || errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil
		}
		return err
	})
	conn.SetPongHandler(func(string) error {
		s.alive.Store(true)
		m.pongsReceived.Add(1)
		metrics.PingsTotal.WithLabelValues("pong").Inc()
		s.logger.Debug("pong received")
		return nil
	})

	go s.readLoop()

	s.logger.Info("event socket connected", "url", redact(target))
	return s, nil
}

// teardown sends a close frame, gives the peer CloseTimeout to answer, then
// closes the socket and waits for the reader to exit.
func (m *Manager) teardown(s *socket) {
	close(s.quit)

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(m.cfg.WriteTimeout)); err == nil {
		timer := time.NewTimer(m.cfg.CloseTimeout)
		select {
		case <-s.done:
		case <-timer.C:
		}
		timer.Stop()
	}

	s.conn.Close()
	<-s.done
}

// readLoop reads frames until the socket fails or quit is closed.
func (s *socket) readLoop() {
	defer close(s.done)

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			s.err = err
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		select {
		case s.frames <- data:
		case <-s.quit:
			return
		}
	}
}
