package testutil

import "sync"

// FixedRequestIDs returns predetermined request ids in order, then repeats
// the last one. Deterministic ids keep golden log output byte-stable.
//
// Implements unit.RequestIDGenerator.
//
// Thread-safety: safe for concurrent use via internal mutex. Concurrent
// writers consume ids in a nondeterministic order, so golden tests should
// drive writes sequentially.
type FixedRequestIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRequestIDs creates a generator over the given ids. With no ids it
// always returns "req-test-default".
func NewFixedRequestIDs(ids ...string) *FixedRequestIDs {
	if len(ids) == 0 {
		ids = []string{"req-test-default"}
	}
	return &FixedRequestIDs{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedRequestIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
