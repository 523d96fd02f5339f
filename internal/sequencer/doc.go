// Package sequencer implements per-process message ordering.
//
// The sequencer is the heart of the scheduler unit - it assigns each
// message a strictly increasing, gap-free nonce and a hash-chain link that
// commits to the entire prefix of the process's log.
//
// ARCHITECTURE:
//
// Per-Process Exclusive Regions:
// Every process id maps to its own region in a sharded lock table. A
// message is sequenced by entering the region, deriving the next values
// from the latest persisted message, and holding the region until the new
// message is durably written. Two guarantees follow:
//   - Same process: submissions serialize; each computation observes the
//     previous write, so nonces are contiguous and links never fork.
//   - Distinct processes: no shared lock anywhere on the hot path; shards
//     only guard table lookup, never sequencing work.
//
// Regions are backed by weighted semaphores so waiting respects context
// cancellation. Table entries are never evicted; the table grows with the
// number of distinct processes this unit has sequenced, matching the
// lifetime of their logs.
//
// Value derivation:
//   - empty log:  epoch 0, nonce 0, hash = H(process_id || message_id)
//   - otherwise:  epoch unchanged, nonce+1, hash = H(prev_hash || message_id)
//
// Epochs are carried but never incremented today; epoch rotation is
// reserved for a future log-segmentation scheme.
//
// CRITICAL PATTERNS:
//
// Hold Through Persistence:
// The region MUST NOT be released between computing values and persisting
// the message that carries them. A caller that releases early lets a
// concurrent submission read the same latest message and mint a duplicate
// nonce. Use Sequence for the fused compute-and-persist form, or hold the
// Lease from Acquire until the store write is acknowledged.
//
// Store Is the Source of Truth:
// Nothing is cached across acquisitions. Every entry to the region re-reads
// the latest persisted message, so a crash between compute and persist
// loses nothing - the next acquisition recomputes identical values.
package sequencer
