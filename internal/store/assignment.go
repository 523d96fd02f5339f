package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// WriteAssignment pins a process to a scheduler.
// Uses ON CONFLICT(process_id) DO NOTHING: assignments are immutable, so
// the first write wins and replays are silent no-ops.
func (s *Store) WriteAssignment(ctx context.Context, a record.Assignment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments (process_id, scheduler_row_id)
		VALUES (?, ?)
		ON CONFLICT(process_id) DO NOTHING
	`,
		a.ProcessID,
		a.SchedulerRowID,
	)
	if err != nil {
		return fault.Wrap(fault.KindStore, err, "write assignment")
	}

	return nil
}

// ReadAssignment retrieves the scheduler assignment for a process.
// Returns fault.KindNotFound if the process was never assigned - the router
// treats that as "not one of ours" and falls back or errors per operation.
func (s *Store) ReadAssignment(ctx context.Context, processID string) (record.Assignment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT process_id, scheduler_row_id
		FROM assignments
		WHERE process_id = ?
	`, processID)

	var a record.Assignment
	err := row.Scan(&a.ProcessID, &a.SchedulerRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Assignment{}, fault.Newf(fault.KindNotFound, "process %q not assigned", processID)
	}
	if err != nil {
		return record.Assignment{}, fault.Wrap(fault.KindStore, err, "read assignment")
	}
	return a, nil
}
