package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tally/internal/ledger"
)

// AddRecurrent inserts a recurrence template and returns its assigned id.
func (s *Store) AddRecurrent(ctx context.Context, entry ledger.RecurrentEntry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}
	now := timestamp()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO recurrent_entries (name, value, frequency, start_date, end_date, category, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Name,
		entry.Value,
		string(entry.Frequency),
		entry.Start,
		entry.End,
		entry.Category,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recurrent entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read recurrent entry id: %w", err)
	}
	return id, nil
}

// GetRecurrent loads a recurrence template by id.
func (s *Store) GetRecurrent(ctx context.Context, id int64) (ledger.RecurrentEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recurrentColumns+" FROM recurrent_entries WHERE id = ?", id)
	entry, err := scanRecurrent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.RecurrentEntry{}, notFound(ledger.TableRecurrent, id)
	}
	if err != nil {
		return ledger.RecurrentEntry{}, fmt.Errorf("get recurrent entry: %w", err)
	}
	return entry, nil
}

// UpdateRecurrent overwrites the stored fields of the template identified by
// entry.ID.
func (s *Store) UpdateRecurrent(ctx context.Context, entry ledger.RecurrentEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE recurrent_entries
         SET name = ?, value = ?, frequency = ?, start_date = ?, end_date = ?, category = ?, updated_at = ?
         WHERE id = ?`,
		entry.Name,
		entry.Value,
		string(entry.Frequency),
		entry.Start,
		entry.End,
		entry.Category,
		timestamp(),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update recurrent entry: %w", err)
	}
	return requireAffected(res, ledger.TableRecurrent, entry.ID)
}

// RemoveRecurrent deletes a recurrence template by id.
func (s *Store) RemoveRecurrent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recurrent_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove recurrent entry: %w", err)
	}
	return requireAffected(res, ledger.TableRecurrent, id)
}

// ListRecurrent returns all recurrence templates ordered by id.
func (s *Store) ListRecurrent(ctx context.Context) ([]ledger.RecurrentEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recurrentColumns+" FROM recurrent_entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list recurrent entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.RecurrentEntry
	for rows.Next() {
		entry, err := scanRecurrent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurrent entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurrent entries: %w", err)
	}
	return entries, nil
}
