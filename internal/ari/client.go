package ari

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/ari-events/internal/api"
	"github.com/rickgao/ari-events/internal/auth"
	"github.com/rickgao/ari-events/internal/connection"
	"github.com/rickgao/ari-events/internal/event"
	"github.com/rickgao/ari-events/internal/router"
)

// Errors
var (
	ErrAlreadyStarted = errors.New("client already started")
	ErrStopped        = errors.New("client stopped")
)

// Config configures a Client.
type Config struct {
	BaseURL  string
	Username string
	Password string

	// SubscribeAll asks Asterisk for every event, not only those of
	// channels in the application. Nil means true.
	SubscribeAll *bool

	// Events tunes the event socket. BaseURL and credentials are taken from
	// the fields above.
	Events connection.ManagerConfig
}

// Option configures a Client.
type Option func(*Client)

// WithExecutor replaces the REST executor handed to handlers.
func WithExecutor(ex api.Executor) Option {
	return func(c *Client) {
		c.executor = ex
	}
}

// WithAPIOptions passes options to the default REST client.
func WithAPIOptions(opts ...api.ClientOption) Option {
	return func(c *Client) {
		c.apiOpts = append(c.apiOpts, opts...)
	}
}

// WithConnectionOptions passes options to the connection manager.
func WithConnectionOptions(opts ...connection.Option) Option {
	return func(c *Client) {
		c.connOpts = append(c.connOpts, opts...)
	}
}

// Stats combines connection and dispatch statistics.
type Stats struct {
	Connection connection.Stats
	Router     router.Stats
}

// Client composes the connection manager, the router and the REST executor.
type Client struct {
	cfg      Config
	logger   *slog.Logger
	executor api.Executor
	router   *router.Router
	apiOpts  []api.ClientOption
	connOpts []connection.Option

	mu       sync.Mutex
	manager  *connection.Manager
	cancel   context.CancelFunc
	done     chan struct{}
	err      error
	starting bool // handshake in progress
	started  bool
	stopped  bool
}

// New creates a Client. Handlers may be registered before or after Start.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.executor == nil {
		creds, err := auth.LoadCredentials(cfg.Username, cfg.Password, "")
		if err != nil {
			return nil, fmt.Errorf("credentials: %w", err)
		}
		apiOpts := append([]api.ClientOption{api.WithLogger(logger.With("component", "api"))}, c.apiOpts...)
		c.executor = api.NewClient(cfg.BaseURL, creds, apiOpts...)
	}

	c.router = router.NewRouter(c.executor, logger)
	return c, nil
}

// RegisterHandler stores h for kind, replacing any previous handler.
// router.Fallback catches kinds without a handler; a nil h unregisters.
func (c *Client) RegisterHandler(kind event.Kind, h router.Handler) {
	c.router.Register(kind, h)
}

// Executor returns the REST executor handed to handlers.
func (c *Client) Executor() api.Executor {
	return c.executor
}

// Start connects the event socket for app and starts dispatching.
//
// ctx bounds the handshake and the life of the client: cancelling it has
// the same effect as Stop. A handshake or configuration error is returned
// and Start may be called again. State and Stats do not block while the
// handshake is in progress.
func (c *Client) Start(ctx context.Context, app string) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	if c.started || c.starting {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}

	mcfg := c.cfg.Events
	mcfg.BaseURL = c.cfg.BaseURL
	mcfg.Username = c.cfg.Username
	mcfg.Password = c.cfg.Password

	req := connection.NewSubscription(app)
	if c.cfg.SubscribeAll != nil {
		req = req.WithSubscribeAll(*c.cfg.SubscribeAll)
	}

	m := connection.NewManager(mcfg, c.logger, c.connOpts...)
	runCtx, cancel := context.WithCancel(ctx)

	c.starting = true
	c.manager = m
	c.cancel = cancel
	c.mu.Unlock()

	events, err := m.Connect(runCtx, req)

	c.mu.Lock()
	c.starting = false
	stopped := c.stopped
	if stopped {
		// Stop was called during the handshake.
		err = ErrStopped
	}
	if err != nil {
		c.manager = nil
		c.mu.Unlock()

		cancel()
		m.Disconnect()
		if stopped {
			close(c.done)
		}
		return err
	}

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		err := c.router.Run(gctx, events)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-m.Done():
		}
		return m.Disconnect()
	})

	c.started = true
	c.mu.Unlock()

	go func() {
		err := g.Wait()
		cancel()

		c.mu.Lock()
		c.err = err
		c.stopped = true
		c.mu.Unlock()

		c.logger.Info("ari client stopped", "app", app)
		close(c.done)
	}()

	c.logger.Info("ari client started", "app", app)
	return nil
}

// Stop disconnects the event socket and waits for the handler in progress
// to return. It is safe to call more than once, and before Start. A Stop
// during the handshake aborts it.
//
// Stop must not be called from a handler, since it would wait for that
// handler to return. Handlers use Cancel instead.
func (c *Client) Stop() error {
	c.mu.Lock()
	if !c.started && !c.starting {
		if !c.stopped {
			c.stopped = true
			close(c.done)
		}
		c.mu.Unlock()
		return nil
	}
	c.stopped = c.stopped || c.starting
	cancel := c.cancel
	c.mu.Unlock()

	cancel()
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Cancel asks the client to stop and returns without waiting. Unlike Stop it
// may be called from a handler; Done reports when the client has stopped.
func (c *Client) Cancel() {
	c.mu.Lock()
	if !c.started && !c.starting {
		c.mu.Unlock()
		c.Stop()
		return
	}
	c.stopped = c.stopped || c.starting
	cancel := c.cancel
	c.mu.Unlock()

	cancel()
}

// Done is closed once the client has stopped.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// State returns the connection state. It is StateDisconnected before Start.
func (c *Client) State() connection.State {
	c.mu.Lock()
	m := c.manager
	c.mu.Unlock()

	if m == nil {
		return connection.StateDisconnected
	}
	return m.State()
}

// Stats returns current statistics.
func (c *Client) Stats() Stats {
	c.mu.Lock()
	m := c.manager
	c.mu.Unlock()

	s := Stats{Router: c.router.Stats()}
	if m != nil {
		s.Connection = m.Stats()
	}
	return s
}
