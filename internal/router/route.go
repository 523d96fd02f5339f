package router

import (
	"context"
	"fmt"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/item"
	"github.com/seqnet/su/internal/record"
)

// outcome labels for decision metrics.
const (
	outcomeLocal    = "local"
	outcomeRedirect = "redirect"
	outcomeError    = "error"
)

// RouteProcessID decides placement for a process-keyed read. The native
// process is always local; every other process goes to its assigned unit.
// An unassigned process is a not-found fault: this unit cannot answer for
// a log it does not own.
func (r *Router) RouteProcessID(ctx context.Context, processID string) (redirect string, err error) {
	if !r.cfg.Enabled {
		return "", nil
	}
	defer func() { r.metrics.RecordRouteDecision("process_id", outcomeOf(redirect, err)) }()

	if processID == "" {
		return "", fault.New(fault.KindValidation, "process id required")
	}
	if processID == r.cfg.NativeProcessID {
		return "", nil
	}

	return r.redirectFor(ctx, processID)
}

// RouteTransaction decides placement for a transaction-keyed read, where
// the id may name either a process or a message. A process id resolves
// directly; a message id cannot be resolved alone, so the caller-supplied
// process hint breaks the tie. With no resolution either way the id is
// ambiguous.
func (r *Router) RouteTransaction(ctx context.Context, txID, processIDHint string) (redirect string, err error) {
	if !r.cfg.Enabled {
		return "", nil
	}
	defer func() { r.metrics.RecordRouteDecision("transaction", outcomeOf(redirect, err)) }()

	if txID == "" {
		return "", fault.New(fault.KindValidation, "transaction id required")
	}
	if txID == r.cfg.NativeProcessID {
		return "", nil
	}

	target := txID
	if _, lookErr := r.store.ReadAssignment(ctx, txID); lookErr != nil {
		if !fault.IsNotFound(lookErr) {
			return "", lookErr
		}
		if processIDHint == "" {
			return "", fault.New(fault.KindAmbiguous,
				"unable to locate process; message id queries need the process id hint")
		}
		target = processIDHint
	}

	redirect, err = r.redirectFor(ctx, target)
	if fault.IsNotFound(err) {
		// The hint did not resolve either; report the same ambiguity the
		// missing hint would have.
		return "", fault.New(fault.KindAmbiguous,
			"unable to locate process; message id queries need the process id hint")
	}
	return redirect, err
}

// RouteItem decides placement for an incoming signed item. Process-typed
// items are load-balanced onto the pool and pinned; Message-typed items
// follow their target's pin. Anything else cannot be routed.
func (r *Router) RouteItem(ctx context.Context, raw []byte) (redirect string, err error) {
	if !r.cfg.Enabled {
		return "", nil
	}
	defer func() { r.metrics.RecordRouteDecision("item", outcomeOf(redirect, err)) }()

	it, err := r.builder.Parse(ctx, raw)
	if err != nil {
		return "", err
	}

	typeTag, ok := it.Tags.Get(item.TagType)
	if !ok {
		return "", fault.New(fault.KindValidation, "cannot route item: missing Type tag")
	}

	switch typeTag {
	case item.TypeProcess:
		if it.ID == r.cfg.NativeProcessID {
			return "", fault.Newf(fault.KindValidation,
				"cannot recreate the native process %q", it.ID)
		}
		sched, err := r.assign(ctx, it.ID)
		if err != nil {
			return "", err
		}
		return sched.URL, nil

	case item.TypeMessage:
		if it.Target == r.cfg.NativeProcessID {
			return "", nil
		}
		return r.redirectFor(ctx, it.Target)

	default:
		return "", fault.Newf(fault.KindValidation, "cannot route item: invalid Type tag %q", typeTag)
	}
}

// assign pins a new process to the least-loaded scheduler: first minimum
// process count in registration order. The read-pick-increment-persist
// span runs under assignMu so concurrent spawns on this router cannot pick
// from stale counts. Assignment and count are persisted in that order;
// the assignment record is what correctness depends on, the count is load
// accounting.
//
// A process that already has a pin keeps it: resubmitting a creation item
// routes to the same unit and never inflates a count.
func (r *Router) assign(ctx context.Context, processID string) (record.Scheduler, error) {
	r.assignMu.Lock()
	defer r.assignMu.Unlock()

	if existing, err := r.store.ReadAssignment(ctx, processID); err == nil {
		return r.store.ReadScheduler(ctx, existing.SchedulerRowID)
	} else if !fault.IsNotFound(err) {
		return record.Scheduler{}, err
	}

	schedulers, err := r.store.ReadAllSchedulers(ctx)
	if err != nil {
		return record.Scheduler{}, err
	}
	if len(schedulers) == 0 {
		return record.Scheduler{}, fault.New(fault.KindExhausted, "could not balance schedulers: registry is empty")
	}

	least := schedulers[0]
	for _, s := range schedulers[1:] {
		if s.ProcessCount < least.ProcessCount {
			least = s
		}
	}
	least.ProcessCount++

	if err := r.store.WriteAssignment(ctx, record.Assignment{
		ProcessID:      processID,
		SchedulerRowID: least.RowID,
	}); err != nil {
		return record.Scheduler{}, fmt.Errorf("pin process %q: %w", processID, err)
	}
	if err := r.store.UpdateSchedulerProcessCount(ctx, least.RowID, least.ProcessCount); err != nil {
		return record.Scheduler{}, fmt.Errorf("update scheduler load: %w", err)
	}

	r.metrics.RecordAssignment()
	r.log.Info("process assigned",
		"process_id", processID,
		"scheduler_url", least.URL,
		"process_count", least.ProcessCount,
	)

	return least, nil
}

// redirectFor resolves an assigned process to its owning unit's URL.
func (r *Router) redirectFor(ctx context.Context, processID string) (string, error) {
	assignment, err := r.store.ReadAssignment(ctx, processID)
	if err != nil {
		return "", err
	}
	sched, err := r.store.ReadScheduler(ctx, assignment.SchedulerRowID)
	if err != nil {
		return "", err
	}
	return sched.URL, nil
}

// outcomeOf classifies a decision for metrics.
func outcomeOf(redirect string, err error) string {
	switch {
	case err != nil:
		return outcomeError
	case redirect == "":
		return outcomeLocal
	default:
		return outcomeRedirect
	}
}
