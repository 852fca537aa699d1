package router

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/ari-events/internal/api"
	"github.com/rickgao/ari-events/internal/event"
	"github.com/rickgao/ari-events/internal/metrics"
)

// Fallback is the registration key for events with no handler of their own.
const Fallback event.Kind = "*"

// Handler reacts to one event. ex performs REST actions against the same
// server the event came from.
type Handler func(ctx context.Context, ex api.Executor, ev event.Event) error

// Stats contains runtime statistics.
type Stats struct {
	Dispatched    int64
	HandlerErrors int64
	Panics        int64
	Unhandled     int64
}

// Router maps event kinds to handlers.
type Router struct {
	executor api.Executor
	logger   *slog.Logger

	mu       sync.RWMutex
	handlers map[event.Kind]Handler

	dispatched    atomic.Int64
	handlerErrors atomic.Int64
	panics        atomic.Int64
	unhandled     atomic.Int64
}

// NewRouter creates a new Router. executor is passed to every handler.
func NewRouter(executor api.Executor, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		executor: executor,
		logger:   logger.With("component", "router"),
		handlers: make(map[event.Kind]Handler),
	}
}

// Register stores h for kind, replacing any previous handler. Use Fallback
// to catch every kind without a handler. A nil h removes the registration.
// Safe to call while Run is active.
func (r *Router) Register(kind event.Kind, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h == nil {
		delete(r.handlers, kind)
		return
	}
	r.handlers[kind] = h
}

// Registered reports whether a handler exists for kind.
func (r *Router) Registered(kind event.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[kind]
	return ok
}

func (r *Router) lookup(kind event.Kind) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.handlers[kind]; ok {
		return h, true
	}
	h, ok := r.handlers[Fallback]
	return h, ok
}

// Dispatch runs the handler for ev and returns its error. Events with no
// handler and no fallback return nil.
func (r *Router) Dispatch(ctx context.Context, ev event.Event) error {
	kind := ev.Kind()

	h, ok := r.lookup(kind)
	if !ok {
		r.unhandled.Add(1)
		metrics.UnhandledTotal.WithLabelValues(string(kind)).Inc()
		r.logger.Debug("no handler for event", "kind", kind, "type", ev.Type)
		return nil
	}

	r.dispatched.Add(1)
	start := time.Now()
	err := r.invoke(ctx, h, ev)
	metrics.HandlerDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		r.handlerErrors.Add(1)
		metrics.HandlerErrorsTotal.WithLabelValues(string(kind)).Inc()
		r.logger.Warn("handler failed", "kind", kind, "error", err)
	}
	return err
}

// invoke calls h, converting a panic into an error.
func (r *Router) invoke(ctx context.Context, h Handler, ev event.Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.panics.Add(1)
			r.logger.Error("handler panic", "kind", ev.Kind(), "panic", p, "stack", string(debug.Stack()))
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return h(ctx, r.executor, ev)
}

// Run dispatches events until the channel is closed (returns nil) or ctx is
// cancelled (returns ctx.Err()).
func (r *Router) Run(ctx context.Context, events <-chan event.Event) error {
	r.logger.Info("consumer loop started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				r.logger.Info("event channel closed")
				return nil
			}
			metrics.QueueDepth.Set(float64(len(events)))
			// Errors are logged and counted by Dispatch.
			_ = r.Dispatch(ctx, ev)
		}
	}
}

// Stats returns current statistics.
func (r *Router) Stats() Stats {
	return Stats{
		Dispatched:    r.dispatched.Load(),
		HandlerErrors: r.handlerErrors.Load(),
		Panics:        r.panics.Load(),
		Unhandled:     r.unhandled.Load(),
	}
}

// Typed adapts a handler for a single payload type. It returns the kind to
// register under, so it can be passed straight to Register:
//
//	r.Register(router.Typed(func(ctx context.Context, ex api.Executor, env event.Envelope, p event.StasisStart) error {
//		return api.Answer(ctx, ex, p.Channel.ID)
//	}))
func Typed[P event.Payload](fn func(ctx context.Context, ex api.Executor, env event.Envelope, p P) error) (event.Kind, Handler) {
	var zero P
	kind := zero.Kind()

	return kind, func(ctx context.Context, ex api.Executor, ev event.Event) error {
		p, ok := ev.Payload.(P)
		if !ok {
			return fmt.Errorf("handler for %s received %T", kind, ev.Payload)
		}
		return fn(ctx, ex, ev.Envelope, p)
	}
}
