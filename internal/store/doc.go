// Package store provides SQLite-backed durable storage for the scheduler
// unit: per-process message logs, process records, the scheduler registry,
// and process-to-scheduler assignments.
//
// # Invariants backed by the schema
//
//   - UNIQUE(process_id, nonce) on messages: the storage-layer backstop for
//     the sequencer's gap-free, duplicate-free ordering. The sequencer's
//     per-process region is the real guarantee; the constraint turns a
//     serialization bug into a loud error instead of a forked log.
//   - UNIQUE(url) on schedulers: the registry holds one row per unit.
//   - assignments.process_id PRIMARY KEY: a process is pinned to exactly
//     one scheduler, forever.
//
// # Error discipline
//
// Every method returns fault-classified errors: absent rows are
// fault.KindNotFound (callers branch on this for genesis detection,
// insert-on-missing, and redirect fallbacks), everything else is wrapped
// as fault.KindStore. Messages and processes reject duplicate ids loudly -
// absorbing a replay would report values persisted that the log never
// kept. Assignments are the one first-write-wins table (ON CONFLICT DO
// NOTHING): a pin is immutable and re-pinning to the same row is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
