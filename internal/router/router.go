// Package router implements redirect decisions for a scheduler unit
// fronting a pool of units. Every operation answers one question: should
// this request be handled locally or forwarded to the unit that owns the
// process? New processes are pinned to the least-loaded pool member; the
// pin is immutable for the life of the process.
//
// All Route methods return the owning unit's URL, or "" for handle-locally.
// A router with Enabled=false answers "" unconditionally, so standalone
// deployments wire the same code path.
package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/seqnet/su/internal/item"
	"github.com/seqnet/su/internal/metrics"
	"github.com/seqnet/su/internal/record"
)

// Store is the slice of the data store the router needs: the scheduler
// registry and the process assignment table.
type Store interface {
	ReadScheduler(ctx context.Context, rowID int64) (record.Scheduler, error)
	ReadSchedulerByURL(ctx context.Context, url string) (record.Scheduler, error)
	WriteScheduler(ctx context.Context, s record.Scheduler) (int64, error)
	UpdateSchedulerProcessCount(ctx context.Context, rowID, processCount int64) error
	ReadAllSchedulers(ctx context.Context) ([]record.Scheduler, error)
	ReadAssignment(ctx context.Context, processID string) (record.Assignment, error)
	WriteAssignment(ctx context.Context, a record.Assignment) error
}

// Config carries the routing deployment parameters.
type Config struct {
	// Enabled switches router mode on. When false every decision is
	// "handle locally".
	Enabled bool

	// NativeProcessID is the one process this unit owns directly. It is
	// never redirected and can never be recreated through the router.
	NativeProcessID string
}

// Router decides placement for incoming requests and items.
// Safe for concurrent use from any goroutine.
type Router struct {
	store   Store
	builder item.Builder
	cfg     Config
	log     *slog.Logger
	metrics *metrics.Metrics

	// assignMu serializes load-balanced assignment only. Reads and
	// already-assigned redirects never take it.
	assignMu sync.Mutex
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) {
		r.log = log
	}
}

// WithMetrics attaches collectors for routing decision counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// New creates a Router over the registry in store. builder parses raw
// items for RouteItem; it may be nil when Enabled is false.
func New(store Store, builder item.Builder, cfg Config, opts ...Option) *Router {
	r := &Router{
		store:   store,
		builder: builder,
		cfg:     cfg,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
