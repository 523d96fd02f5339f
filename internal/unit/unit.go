package unit

import (
	"log/slog"

	"github.com/seqnet/su/internal/item"
	"github.com/seqnet/su/internal/metrics"
	"github.com/seqnet/su/internal/sequencer"
	"github.com/seqnet/su/internal/store"
)

// Deps are the unit's collaborators. Store and Sequencer back every write;
// the externals are only touched by the operations that name them, so a
// deployment that never serves Status may leave Gateway nil.
type Deps struct {
	Store     *store.Store
	Sequencer *sequencer.Sequencer
	Builder   item.Builder
	Uploader  item.Uploader
	Gateway   item.Gateway
	Wallet    item.Wallet
}

// Unit is the scheduler unit's operation surface.
// Safe for concurrent use from any goroutine.
type Unit struct {
	deps       Deps
	clock      sequencer.Clock
	log        *slog.Logger
	metrics    *metrics.Metrics
	requestIDs RequestIDGenerator
}

// Option configures a Unit.
type Option func(*Unit)

// WithClock replaces the wall clock used by Status and Health.
func WithClock(c sequencer.Clock) Option {
	return func(u *Unit) {
		u.clock = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(u *Unit) {
		u.log = log
	}
}

// WithMetrics attaches collectors for write and read counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(u *Unit) {
		u.metrics = m
	}
}

// WithRequestIDs replaces the request id generator, primarily for
// deterministic tests.
func WithRequestIDs(g RequestIDGenerator) Option {
	return func(u *Unit) {
		u.requestIDs = g
	}
}

// New creates a Unit over deps.
func New(deps Deps, opts ...Option) *Unit {
	u := &Unit{
		deps:       deps,
		clock:      sequencer.SystemClock{},
		log:        slog.Default(),
		requestIDs: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
