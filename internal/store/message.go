package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// WriteMessage appends a sequenced message to its process log.
// Duplicates fail loudly: a reused message id, or a second message claiming
// an already occupied (process_id, nonce) slot, violates a unique
// constraint and surfaces as a store fault. Silently absorbing either would
// let a caller believe values were persisted when the log kept something
// else.
func (s *Store) WriteMessage(ctx context.Context, m record.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages
		(message_id, process_id, epoch, nonce, timestamp, hash_chain, raw)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		m.MessageID,
		m.ProcessID,
		m.Epoch,
		m.Nonce,
		m.Timestamp,
		m.HashChain,
		m.Raw,
	)
	if err != nil {
		return fault.Wrapf(fault.KindStore, err, "write message %q", m.MessageID)
	}

	return nil
}

// ReadMessage retrieves a single message by ID.
// Returns fault.KindNotFound if no such message exists.
func (s *Store) ReadMessage(ctx context.Context, messageID string) (record.Message, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT message_id, process_id, epoch, nonce, timestamp, hash_chain, raw
		FROM messages
		WHERE message_id = ?
	`, messageID)

	m, err := scanMessageRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Message{}, fault.Newf(fault.KindNotFound, "message %q not found", messageID)
	}
	if err != nil {
		return record.Message{}, fault.Wrap(fault.KindStore, err, "read message")
	}
	return m, nil
}

// ReadLatestMessage retrieves the most recently assigned message of a
// process log - the one with the highest nonce. The sequencer derives the
// next slot from it. Returns fault.KindNotFound for an empty log, which is
// how a genesis message is detected.
func (s *Store) ReadLatestMessage(ctx context.Context, processID string) (record.Message, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT message_id, process_id, epoch, nonce, timestamp, hash_chain, raw
		FROM messages
		WHERE process_id = ?
		ORDER BY nonce DESC
		LIMIT 1
	`, processID)

	m, err := scanMessageRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Message{}, fault.Newf(fault.KindNotFound, "process %q has no messages", processID)
	}
	if err != nil {
		return record.Message{}, fault.Wrap(fault.KindStore, err, "read latest message")
	}
	return m, nil
}

// ReadMessages returns a process log page ordered by nonce ascending.
// from and to bound the page by timestamp - from exclusive (cursor
// semantics: pass the timestamp of the last message already seen), to
// inclusive. Zero means unbounded on that side.
//
// Returns an empty slice (not nil) for an empty page.
func (s *Store) ReadMessages(ctx context.Context, processID string, from, to int64) ([]record.Message, error) {
	query := `
		SELECT message_id, process_id, epoch, nonce, timestamp, hash_chain, raw
		FROM messages
		WHERE process_id = ?`
	args := []any{processID}

	if from > 0 {
		query += ` AND timestamp > ?`
		args = append(args, from)
	}
	if to > 0 {
		query += ` AND timestamp <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY nonce ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStore, err, "query messages")
	}
	defer rows.Close()

	var msgs []record.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStore, err, "scan message")
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Wrap(fault.KindStore, err, "iterate messages")
	}

	// Return empty slice instead of nil
	if msgs == nil {
		msgs = []record.Message{}
	}

	return msgs, nil
}

// scanMessage scans a result row into a Message.
func scanMessage(rows *sql.Rows) (record.Message, error) {
	var m record.Message
	if err := rows.Scan(
		&m.MessageID, &m.ProcessID, &m.Epoch, &m.Nonce,
		&m.Timestamp, &m.HashChain, &m.Raw,
	); err != nil {
		return record.Message{}, err
	}
	return m, nil
}

// scanMessageRow scans a single row into a Message.
func scanMessageRow(row *sql.Row) (record.Message, error) {
	var m record.Message
	if err := row.Scan(
		&m.MessageID, &m.ProcessID, &m.Epoch, &m.Nonce,
		&m.Timestamp, &m.HashChain, &m.Raw,
	); err != nil {
		return record.Message{}, err
	}
	return m, nil
}
