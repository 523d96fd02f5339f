package unit

import (
	"context"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// ReadResult is a combined lookup outcome: exactly one of Message or
// (ProcessID, Log) is populated.
type ReadResult struct {
	Message   *record.Message  `json:"message,omitempty"`
	ProcessID string           `json:"process_id,omitempty"`
	Log       []record.Message `json:"log,omitempty"`
}

// ReadMessage returns one message by id.
func (u *Unit) ReadMessage(ctx context.Context, messageID string) (record.Message, error) {
	m, err := u.deps.Store.ReadMessage(ctx, messageID)
	if err != nil {
		u.recordFault(err)
		return record.Message{}, err
	}
	u.metrics.RecordRead("message")
	return m, nil
}

// ReadProcess returns one process record by id.
func (u *Unit) ReadProcess(ctx context.Context, processID string) (record.Process, error) {
	p, err := u.deps.Store.ReadProcess(ctx, processID)
	if err != nil {
		u.recordFault(err)
		return record.Process{}, err
	}
	u.metrics.RecordRead("process")
	return p, nil
}

// ReadProcessLog returns the ordered message log of a known process,
// optionally windowed by timestamp: from is exclusive, to inclusive, zero
// means unbounded. The process must exist; an empty log is a valid page.
func (u *Unit) ReadProcessLog(ctx context.Context, processID string, from, to int64) ([]record.Message, error) {
	if _, err := u.deps.Store.ReadProcess(ctx, processID); err != nil {
		u.recordFault(err)
		return nil, err
	}
	log, err := u.deps.Store.ReadMessages(ctx, processID, from, to)
	if err != nil {
		u.recordFault(err)
		return nil, err
	}
	u.metrics.RecordRead("log")
	return log, nil
}

// Read resolves an id that may name either a message or a process: a
// message wins, otherwise the process's log page is returned, otherwise
// the id is unknown.
func (u *Unit) Read(ctx context.Context, id string, from, to int64) (*ReadResult, error) {
	m, err := u.deps.Store.ReadMessage(ctx, id)
	if err == nil {
		u.metrics.RecordRead("message")
		return &ReadResult{Message: &m}, nil
	}
	if !fault.IsNotFound(err) {
		u.recordFault(err)
		return nil, err
	}

	if _, err := u.deps.Store.ReadProcess(ctx, id); err != nil {
		if fault.IsNotFound(err) {
			err = fault.Newf(fault.KindNotFound, "message or process %q not found", id)
		}
		u.recordFault(err)
		return nil, err
	}
	log, err := u.deps.Store.ReadMessages(ctx, id, from, to)
	if err != nil {
		u.recordFault(err)
		return nil, err
	}
	u.metrics.RecordRead("log")
	return &ReadResult{ProcessID: id, Log: log}, nil
}
