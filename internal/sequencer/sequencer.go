package sequencer

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/seqnet/su/internal/chain"
	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/metrics"
	"github.com/seqnet/su/internal/record"
)

// shardCount fixes the width of the lock table. Shard mutexes are held only
// for map lookup, so contention on them is negligible; 64 keeps unrelated
// lookups from colliding without oversizing the table.
const shardCount = 64

// Store is the slice of the data store the sequencer needs: the latest
// assigned message of a process log. Absence must be fault.KindNotFound -
// that is how a genesis message is detected.
type Store interface {
	ReadLatestMessage(ctx context.Context, processID string) (record.Message, error)
}

// Sequencer assigns schedule values inside per-process exclusive regions.
// Safe for concurrent use from any goroutine.
type Sequencer struct {
	store   Store
	clock   Clock
	log     *slog.Logger
	metrics *metrics.Metrics

	shards [shardCount]shard
}

type shard struct {
	mu      sync.Mutex
	regions map[string]*region
}

// region serializes sequencing for one process. The semaphore plays the
// role of a mutex whose waiters respect context cancellation.
type region struct {
	sem *semaphore.Weighted
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithClock replaces the system clock, primarily for deterministic tests.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		s.clock = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sequencer) {
		s.log = log
	}
}

// WithMetrics attaches collectors for sequencing counters and latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) {
		s.metrics = m
	}
}

// New creates a Sequencer reading latest messages from store.
func New(store Store, opts ...Option) *Sequencer {
	s := &Sequencer{
		store: store,
		clock: SystemClock{},
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range s.shards {
		s.shards[i].regions = make(map[string]*region)
	}
	return s
}

// Lease is an entered per-process region carrying the computed schedule
// values. The holder must persist the message carrying Info's values and
// only then call Release. Release is idempotent and must be called on every
// exit path; a dropped lease deadlocks its process until the program exits.
type Lease struct {
	info    record.ScheduleInfo
	region  *region
	release sync.Once
}

// Info returns the schedule values computed under this lease.
func (l *Lease) Info() record.ScheduleInfo {
	return l.info
}

// Release exits the per-process region. Call only after the write carrying
// the values is durably acknowledged, or when abandoning them on error.
func (l *Lease) Release() {
	l.release.Do(func() {
		l.region.sem.Release(1)
	})
}

// Acquire enters the process's exclusive region and computes the next
// schedule values for messageID: nonce prev+1 (or 0 for an empty log),
// hash chained from the previous link (or seeded by the process id), and
// the current wall timestamp.
//
// The returned Lease holds the region. See Lease.Release for the contract;
// prefer Sequence, which cannot release early.
func (s *Sequencer) Acquire(ctx context.Context, processID, messageID string) (*Lease, error) {
	if processID == "" {
		return nil, fault.New(fault.KindValidation, "process id required")
	}
	if messageID == "" {
		return nil, fault.New(fault.KindValidation, "message id required")
	}

	r := s.regionFor(processID)
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("enter region for process %q: %w", processID, err)
	}

	info, err := s.nextInfo(ctx, processID, messageID)
	if err != nil {
		r.sem.Release(1)
		return nil, err
	}

	s.log.Debug("schedule values computed",
		"process_id", processID,
		"message_id", messageID,
		"epoch", info.Epoch,
		"nonce", info.Nonce,
	)

	return &Lease{info: info, region: r}, nil
}

// Sequence is the fused form of Acquire: it computes the next schedule
// values and invokes persist while the region is held, releasing only after
// persist returns. If persist fails the region is released with the store
// untouched by the sequencer, and the next acquisition recomputes the same
// values.
func (s *Sequencer) Sequence(ctx context.Context, processID, messageID string, persist func(record.ScheduleInfo) error) (record.ScheduleInfo, error) {
	start := time.Now()

	lease, err := s.Acquire(ctx, processID, messageID)
	if err != nil {
		return record.ScheduleInfo{}, err
	}
	defer lease.Release()

	info := lease.Info()
	if err := persist(info); err != nil {
		return record.ScheduleInfo{}, err
	}

	s.metrics.RecordMessageSequenced()
	s.metrics.ObserveSequenceDuration(time.Since(start))

	return info, nil
}

// Stamp enters the process's region just long enough to mint a creation
// timestamp: epoch 0, nonce 0, empty hash chain, current wall time. It
// never touches the store. Used only when persisting a new process record,
// which carries no position in any log.
func (s *Sequencer) Stamp(ctx context.Context, processID string) (record.ScheduleInfo, error) {
	if processID == "" {
		return record.ScheduleInfo{}, fault.New(fault.KindValidation, "process id required")
	}

	r := s.regionFor(processID)
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return record.ScheduleInfo{}, fmt.Errorf("enter region for process %q: %w", processID, err)
	}
	defer r.sem.Release(1)

	now, err := s.clock.NowMillis()
	if err != nil {
		return record.ScheduleInfo{}, fault.Wrap(fault.KindClock, err, "read wall clock")
	}

	return record.ScheduleInfo{Epoch: 0, Nonce: 0, Timestamp: now, HashChain: ""}, nil
}

// nextInfo derives the next schedule values. Callers hold the region.
func (s *Sequencer) nextInfo(ctx context.Context, processID, messageID string) (record.ScheduleInfo, error) {
	now, err := s.clock.NowMillis()
	if err != nil {
		return record.ScheduleInfo{}, fault.Wrap(fault.KindClock, err, "read wall clock")
	}

	prev, err := s.store.ReadLatestMessage(ctx, processID)
	if fault.IsNotFound(err) {
		return record.ScheduleInfo{
			Epoch:     0,
			Nonce:     0,
			Timestamp: now,
			HashChain: chain.Link(processID, messageID),
		}, nil
	}
	if err != nil {
		return record.ScheduleInfo{}, err
	}

	return record.ScheduleInfo{
		Epoch:     prev.Epoch,
		Nonce:     prev.Nonce + 1,
		Timestamp: now,
		HashChain: chain.Link(prev.HashChain, messageID),
	}, nil
}

// regionFor returns the region for a process, creating it on first use.
// Entries live for the lifetime of the Sequencer.
func (s *Sequencer) regionFor(processID string) *region {
	sh := &s.shards[shardIndex(processID)]

	sh.mu.Lock()
	defer sh.mu.Unlock()

	r, ok := sh.regions[processID]
	if !ok {
		r = &region{sem: semaphore.NewWeighted(1)}
		sh.regions[processID] = r
	}
	return r
}

// shardIndex hashes a process id onto the shard array.
func shardIndex(processID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(processID))
	return h.Sum32() % shardCount
}
