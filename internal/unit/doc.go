// Package unit composes the scheduler unit's write and read paths.
//
// The unit is thin coordination over the real machinery: the builder
// parses and finalizes signed items, the sequencer assigns positions, the
// uploader makes items durable on the ledger, and the store keeps the
// authoritative log.
//
// ARCHITECTURE:
//
// Write Path (WriteItem):
// 1. Builder parses the raw item and exposes its tags.
// 2. Tags are validated BEFORE anything is stamped, uploaded, or stored;
//    a malformed item never leaves a trace.
// 3. Process items get a creation timestamp; Message items enter their
//    target process's exclusive region where finalize, upload, and the
//    store write all happen while the region is held.
// 4. The caller gets back the upload receipt and the stamped values.
//
// Read Path:
// Point reads by message id or process id, an ordered log page per
// process, and a combined lookup that resolves an id as a message first
// and a process log second.
//
// CRITICAL PATTERNS:
//
// Sequence Inside the Region:
// A message's finalize-upload-store span runs under its process's region
// via Sequencer.Sequence. Nothing here may release the region between
// computing values and the store write acknowledging them.
//
// Validate Before Side Effects:
// Tag validation failures are pure rejections. Upload and store writes
// only begin after the item is known to be well-formed.
package unit
