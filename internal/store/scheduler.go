package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// WriteScheduler inserts a scheduler registry entry and returns its
// store-assigned row id. The URL must be unique: registering the same unit
// twice is a reconcile bug, so the constraint violation surfaces.
func (s *Store) WriteScheduler(ctx context.Context, sched record.Scheduler) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO schedulers (url, process_count)
		VALUES (?, ?)
	`,
		sched.URL,
		sched.ProcessCount,
	)
	if err != nil {
		return 0, fault.Wrap(fault.KindStore, err, "write scheduler")
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStore, err, "write scheduler: last insert id")
	}
	return rowID, nil
}

// ReadScheduler retrieves a scheduler by row id.
// Returns fault.KindNotFound if no such scheduler exists.
func (s *Store) ReadScheduler(ctx context.Context, rowID int64) (record.Scheduler, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT row_id, url, process_count
		FROM schedulers
		WHERE row_id = ?
	`, rowID)

	return scanSchedulerRow(row, func() error {
		return fault.Newf(fault.KindNotFound, "scheduler row %d not found", rowID)
	})
}

// ReadSchedulerByURL retrieves a scheduler by its unique URL.
// Returns fault.KindNotFound if no such scheduler exists; reconcile uses
// that to decide between inserting and leaving the row alone.
func (s *Store) ReadSchedulerByURL(ctx context.Context, url string) (record.Scheduler, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT row_id, url, process_count
		FROM schedulers
		WHERE url = ?
	`, url)

	return scanSchedulerRow(row, func() error {
		return fault.Newf(fault.KindNotFound, "scheduler %q not found", url)
	})
}

// UpdateSchedulerProcessCount persists a scheduler's process count after a
// load-balanced assignment. Returns fault.KindNotFound if the row vanished,
// which would mean the registry was mutated outside this unit.
func (s *Store) UpdateSchedulerProcessCount(ctx context.Context, rowID, processCount int64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE schedulers
		SET process_count = ?
		WHERE row_id = ?
	`, processCount, rowID)
	if err != nil {
		return fault.Wrap(fault.KindStore, err, "update scheduler")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fault.Wrap(fault.KindStore, err, "update scheduler: rows affected")
	}
	if affected == 0 {
		return fault.Newf(fault.KindNotFound, "scheduler row %d not found", rowID)
	}
	return nil
}

// ReadAllSchedulers returns the whole registry in row id order. Row id
// order is registration order, which fixes the tie break when several
// schedulers share the minimum process count.
//
// Returns an empty slice (not nil) for an empty registry.
func (s *Store) ReadAllSchedulers(ctx context.Context) ([]record.Scheduler, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_id, url, process_count
		FROM schedulers
		ORDER BY row_id ASC
	`)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, err, "query schedulers")
	}
	defer rows.Close()

	var scheds []record.Scheduler
	for rows.Next() {
		var sc record.Scheduler
		if err := rows.Scan(&sc.RowID, &sc.URL, &sc.ProcessCount); err != nil {
			return nil, fault.Wrap(fault.KindStore, err, "scan scheduler")
		}
		scheds = append(scheds, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Wrap(fault.KindStore, err, "iterate schedulers")
	}

	// Return empty slice instead of nil
	if scheds == nil {
		scheds = []record.Scheduler{}
	}

	return scheds, nil
}

// scanSchedulerRow scans a single row into a Scheduler, mapping absence to
// the caller's not-found fault.
func scanSchedulerRow(row *sql.Row, notFound func() error) (record.Scheduler, error) {
	var sc record.Scheduler
	err := row.Scan(&sc.RowID, &sc.URL, &sc.ProcessCount)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Scheduler{}, notFound()
	}
	if err != nil {
		return record.Scheduler{}, fault.Wrap(fault.KindStore, err, "read scheduler")
	}
	return sc, nil
}
