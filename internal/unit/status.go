package unit

import (
	"context"
	"fmt"

	"github.com/seqnet/su/internal/chain"
	"github.com/seqnet/su/internal/fault"
)

// Status is the unit's liveness view of the underlying ledger.
type Status struct {
	Timestamp int64 `json:"timestamp"`

	// BlockHeight is zero-padded to 12 digits so heights sort
	// lexicographically.
	BlockHeight string `json:"block_height"`
}

// Status reports the current wall timestamp and the gateway's block height.
func (u *Unit) Status(ctx context.Context) (Status, error) {
	now, err := u.clock.NowMillis()
	if err != nil {
		return Status{}, fault.Wrap(fault.KindClock, err, "read wall clock")
	}
	height, err := u.deps.Gateway.BlockHeight(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("query gateway block height: %w", err)
	}
	return Status{
		Timestamp:   now,
		BlockHeight: fmt.Sprintf("%012d", height),
	}, nil
}

// Health is the unit's self-identification.
type Health struct {
	Timestamp int64  `json:"timestamp"`
	Address   string `json:"address"`
}

// Health reports the current wall timestamp and this unit's wallet address.
func (u *Unit) Health(ctx context.Context) (Health, error) {
	now, err := u.clock.NowMillis()
	if err != nil {
		return Health{}, fault.Wrap(fault.KindClock, err, "read wall clock")
	}
	addr, err := u.deps.Wallet.Address()
	if err != nil {
		return Health{}, fmt.Errorf("read wallet address: %w", err)
	}
	return Health{Timestamp: now, Address: addr}, nil
}

// VerifyProcess recomputes the hash chain over a process's stored log and
// returns the number of verified messages. A process with no messages
// verifies trivially; an id with neither messages nor a process record is
// not found.
func (u *Unit) VerifyProcess(ctx context.Context, processID string) (int, error) {
	msgs, err := u.deps.Store.ReadMessages(ctx, processID, 0, 0)
	if err != nil {
		u.recordFault(err)
		return 0, err
	}
	if len(msgs) == 0 {
		if _, err := u.deps.Store.ReadProcess(ctx, processID); err != nil {
			u.recordFault(err)
			return 0, err
		}
		return 0, nil
	}
	if err := chain.VerifyLog(processID, msgs); err != nil {
		u.recordFault(err)
		return 0, err
	}
	return len(msgs), nil
}
