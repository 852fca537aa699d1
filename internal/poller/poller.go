package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/ari-events/internal/api"
	"github.com/rickgao/ari-events/internal/metrics"
)

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 30s)
	Timeout  time.Duration // Per-request timeout (default: 5s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 30 * time.Second,
		Timeout:  5 * time.Second,
	}
}

// Result is the outcome of one ping.
type Result struct {
	OK         bool
	AsteriskID string
	Latency    time.Duration
	Err        error
	CheckedAt  time.Time
}

// Poller periodically pings Asterisk through the REST executor.
type Poller struct {
	cfg    Config
	ex     api.Executor
	logger *slog.Logger

	mu   sync.RWMutex
	last Result

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, ex api.Executor, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &Poller{
		cfg:    cfg,
		ex:     ex,
		logger: logger.With("component", "poller"),
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("liveness poller started", "interval", p.cfg.Interval)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("liveness poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Last returns the most recent result. CheckedAt is zero before the first
// check completes.
func (p *Poller) Last() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Healthy reports whether the last check succeeded within maxAge.
func (p *Poller) Healthy(maxAge time.Duration) bool {
	r := p.Last()
	return r.OK && time.Since(r.CheckedAt) <= maxAge
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.poll(p.ctx)

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll(p.ctx)
		}
	}
}

// poll performs one check and stores the result.
func (p *Poller) poll(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	pong, err := api.Ping(ctx, p.ex)
	r := Result{
		Latency:   time.Since(start),
		CheckedAt: time.Now(),
		Err:       err,
	}
	if err == nil {
		r.OK = true
		r.AsteriskID = pong.AsteriskID
	}

	p.mu.Lock()
	prev := p.last
	p.last = r
	p.mu.Unlock()

	metrics.SetAsteriskUp(r.OK)

	switch {
	case !r.OK && (prev.OK || prev.CheckedAt.IsZero()):
		p.logger.Warn("asterisk ping failed", "error", err)
	case r.OK && !prev.OK && !prev.CheckedAt.IsZero():
		p.logger.Info("asterisk ping recovered", "asterisk_id", r.AsteriskID, "latency", r.Latency)
	default:
		p.logger.Debug("asterisk ping", "ok", r.OK, "latency", r.Latency)
	}

	return r
}
