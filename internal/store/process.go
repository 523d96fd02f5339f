package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// WriteProcess inserts a process record. A process is created exactly once:
// reusing an existing process id violates the primary key and surfaces as a
// store fault.
func (s *Store) WriteProcess(ctx context.Context, p record.Process) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processes
		(process_id, module, scheduler, timestamp, raw)
		VALUES (?, ?, ?, ?, ?)
	`,
		p.ProcessID,
		p.Module,
		p.Scheduler,
		p.Timestamp,
		p.Raw,
	)
	if err != nil {
		return fault.Wrapf(fault.KindStore, err, "write process %q", p.ProcessID)
	}

	return nil
}

// ReadAllProcessIDs returns every known process id in creation order.
//
// Returns an empty slice (not nil) when no processes exist.
func (s *Store) ReadAllProcessIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT process_id
		FROM processes
		ORDER BY timestamp ASC, process_id ASC
	`)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, err, "query processes")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fault.Wrap(fault.KindStore, err, "scan process id")
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Wrap(fault.KindStore, err, "iterate processes")
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// ReadProcess retrieves a process record by ID.
// Returns fault.KindNotFound if no such process exists.
func (s *Store) ReadProcess(ctx context.Context, processID string) (record.Process, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT process_id, module, scheduler, timestamp, raw
		FROM processes
		WHERE process_id = ?
	`, processID)

	var p record.Process
	err := row.Scan(&p.ProcessID, &p.Module, &p.Scheduler, &p.Timestamp, &p.Raw)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Process{}, fault.Newf(fault.KindNotFound, "process %q not found", processID)
	}
	if err != nil {
		return record.Process{}, fault.Wrap(fault.KindStore, err, "read process")
	}
	return p, nil
}
