// Package testutil provides deterministic stand-ins for the scheduler
// unit's time source and external collaborators. Production code never
// imports this package.
package testutil

import "sync"

// FixedClock is a deterministic millisecond clock for tests.
//
// Every call to NowMillis returns the current value and then advances it by
// Step, so a scenario that stamps N messages sees N distinct, predictable
// timestamps. A zero Step freezes time.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu   sync.Mutex
	now  int64
	step int64
}

// NewFixedClock creates a clock starting at now, advancing by step per read.
func NewFixedClock(now, step int64) *FixedClock {
	return &FixedClock{now: now, step: step}
}

// NowMillis returns the current timestamp and advances the clock.
// Implements sequencer.Clock.
func (c *FixedClock) NowMillis() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now += c.step
	return now, nil
}

// Set repositions the clock. Used to simulate wall-clock jumps mid-test.
func (c *FixedClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// FailingClock always returns Err. It exercises the clock fault path.
type FailingClock struct {
	Err error
}

// NowMillis returns the configured error.
// Implements sequencer.Clock.
func (c FailingClock) NowMillis() (int64, error) {
	return 0, c.Err
}
