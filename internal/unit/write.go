package unit

import (
	"context"
	"log/slog"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/item"
	"github.com/seqnet/su/internal/record"
)

// WriteResult reports an accepted item: its upload receipt and the
// schedule values stamped into it.
type WriteResult struct {
	ID       string              `json:"id"`
	Type     string              `json:"type"`
	Receipt  *item.Receipt       `json:"receipt"`
	Schedule record.ScheduleInfo `json:"schedule"`
}

// WriteItem accepts one raw signed item, either a Process creation or a
// Message. Tags are validated before any side effect; a rejected item is
// never uploaded or stored.
func (u *Unit) WriteItem(ctx context.Context, raw []byte) (*WriteResult, error) {
	log := u.log.With("request_id", u.requestIDs.Generate())

	it, err := u.deps.Builder.Parse(ctx, raw)
	if err != nil {
		u.recordFault(err)
		return nil, err
	}

	if !it.Tags.Has(item.TagDataProtocol) {
		return nil, u.reject("Data-Protocol tag not present")
	}
	typeTag, ok := it.Tags.Get(item.TagType)
	if !ok {
		return nil, u.reject("Type tag not present")
	}

	var result *WriteResult
	switch typeTag {
	case item.TypeProcess:
		result, err = u.writeProcess(ctx, log, raw, it)
	case item.TypeMessage:
		result, err = u.writeMessage(ctx, log, raw, it)
	default:
		return nil, u.reject("Type tag has an invalid value %q", typeTag)
	}
	if err != nil {
		u.recordFault(err)
		return nil, err
	}

	u.metrics.RecordItemWritten(result.Type)
	return result, nil
}

// writeProcess creates a process record: stamp a creation timestamp,
// finalize and upload the item, then persist. A process is created exactly
// once; the store rejects a replayed process id.
func (u *Unit) writeProcess(ctx context.Context, log *slog.Logger, raw []byte, it *item.Item) (*WriteResult, error) {
	if !it.Tags.Has(item.TagModule) || !it.Tags.Has(item.TagScheduler) {
		return nil, fault.New(fault.KindValidation,
			"required Module and Scheduler tags for Process type not present")
	}

	info, err := u.deps.Sequencer.Stamp(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	fin, err := u.deps.Builder.Finalize(ctx, raw, info)
	if err != nil {
		return nil, err
	}
	receipt, err := u.deps.Uploader.Upload(ctx, fin.Binary)
	if err != nil {
		return nil, err
	}

	module, _ := it.Tags.Get(item.TagModule)
	scheduler, _ := it.Tags.Get(item.TagScheduler)
	err = u.deps.Store.WriteProcess(ctx, record.Process{
		ProcessID: it.ID,
		Module:    module,
		Scheduler: scheduler,
		Timestamp: info.Timestamp,
		Raw:       fin.Binary,
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RecordProcessCreated()
	log.Info("process saved",
		"process_id", it.ID,
		"module", module,
		"timestamp", info.Timestamp,
	)

	return &WriteResult{ID: it.ID, Type: item.TypeProcess, Receipt: receipt, Schedule: info}, nil
}

// writeMessage sequences a message into its target process's log.
// Finalize, upload, and the store write all run while the process's
// exclusive region is held, so a concurrent message for the same process
// cannot observe the log without this entry.
func (u *Unit) writeMessage(ctx context.Context, log *slog.Logger, raw []byte, it *item.Item) (*WriteResult, error) {
	if it.Target == "" {
		return nil, fault.New(fault.KindValidation, "message requires a target process")
	}

	var receipt *item.Receipt
	info, err := u.deps.Sequencer.Sequence(ctx, it.Target, it.ID, func(info record.ScheduleInfo) error {
		fin, err := u.deps.Builder.Finalize(ctx, raw, info)
		if err != nil {
			return err
		}
		r, err := u.deps.Uploader.Upload(ctx, fin.Binary)
		if err != nil {
			return err
		}
		if err := u.deps.Store.WriteMessage(ctx, record.Message{
			MessageID: it.ID,
			ProcessID: it.Target,
			Epoch:     info.Epoch,
			Nonce:     info.Nonce,
			Timestamp: info.Timestamp,
			HashChain: info.HashChain,
			Raw:       fin.Binary,
		}); err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("message saved",
		"message_id", it.ID,
		"process_id", it.Target,
		"nonce", info.Nonce,
		"timestamp", info.Timestamp,
	)

	return &WriteResult{ID: it.ID, Type: item.TypeMessage, Receipt: receipt, Schedule: info}, nil
}

// reject builds a validation fault and counts it. Only for rejections that
// return before the type dispatch; later failures are counted once by the
// dispatch's error path.
func (u *Unit) reject(format string, args ...any) error {
	err := fault.Newf(fault.KindValidation, format, args...)
	u.recordFault(err)
	return err
}

// recordFault counts a classified failure; unclassified errors are not
// labeled.
func (u *Unit) recordFault(err error) {
	if kind := fault.KindOf(err); kind != "" {
		u.metrics.RecordFault(kind)
	}
}
