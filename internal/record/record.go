// Package record defines the persistent domain records of the scheduler
// unit. It sits at the bottom of the dependency graph: every other package
// imports it and it imports nothing.
package record

// Message is one assigned slot in a process's message log. For a fixed
// ProcessID the set of nonces is exactly 0..N-1 with no gaps or duplicates,
// and each HashChain commits to the entire prefix of the log.
type Message struct {
	MessageID string `json:"message_id"`
	ProcessID string `json:"process_id"`
	Epoch     int32  `json:"epoch"` // always 0 today, reserved for rotation
	Nonce     int32  `json:"nonce"`
	Timestamp int64  `json:"timestamp"` // ms since Unix epoch
	HashChain string `json:"hash_chain"`
	Raw       []byte `json:"-"` // finalized signed item bytes
}

// Process is the root record of a message log, created exactly once by the
// first Process-typed item naming it. ProcessID never changes.
type Process struct {
	ProcessID string `json:"process_id"`
	Module    string `json:"module"`
	Scheduler string `json:"scheduler"`
	Timestamp int64  `json:"timestamp"` // ms since Unix epoch
	Raw       []byte `json:"-"`
}

// ScheduleInfo carries the ordering values computed inside a process's
// exclusive region. It is transient working state; the persisted log is
// always the source of truth.
type ScheduleInfo struct {
	Epoch     int32  `json:"epoch"`
	Nonce     int32  `json:"nonce"`
	Timestamp int64  `json:"timestamp"`
	HashChain string `json:"hash_chain"`
}

// Scheduler is one unit in the routing pool. ProcessCount is incremented
// when a new process is assigned to it; this core never deletes entries.
type Scheduler struct {
	RowID        int64  `json:"row_id"` // store-assigned
	URL          string `json:"url"`
	ProcessCount int64  `json:"process_count"`
}

// Assignment pins a process to the scheduler that owns its log. Written
// once per process and never rewritten.
type Assignment struct {
	ProcessID      string `json:"process_id"`
	SchedulerRowID int64  `json:"scheduler_row_id"`
}
