package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tally/internal/ledger"
)

// AddStandard inserts a dated entry and returns its assigned id.
func (s *Store) AddStandard(ctx context.Context, entry ledger.Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}
	now := timestamp()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO standard_entries (name, value, date, category, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Name,
		entry.Value,
		entry.Date,
		entry.Category,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert standard entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read standard entry id: %w", err)
	}
	return id, nil
}

// GetStandard loads a dated entry by id.
func (s *Store) GetStandard(ctx context.Context, id int64) (ledger.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+standardColumns+" FROM standard_entries WHERE id = ?", id)
	entry, err := scanStandard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Entry{}, notFound(ledger.TableStandard, id)
	}
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("get standard entry: %w", err)
	}
	return entry, nil
}

// UpdateStandard overwrites the stored fields of the entry identified by
// entry.ID.
func (s *Store) UpdateStandard(ctx context.Context, entry ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE standard_entries
         SET name = ?, value = ?, date = ?, category = ?, updated_at = ?
         WHERE id = ?`,
		entry.Name,
		entry.Value,
		entry.Date,
		entry.Category,
		timestamp(),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update standard entry: %w", err)
	}
	return requireAffected(res, ledger.TableStandard, entry.ID)
}

// RemoveStandard deletes a dated entry by id.
func (s *Store) RemoveStandard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM standard_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove standard entry: %w", err)
	}
	return requireAffected(res, ledger.TableStandard, id)
}

// ListStandard returns all dated entries ordered by id.
func (s *Store) ListStandard(ctx context.Context) ([]ledger.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+standardColumns+" FROM standard_entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list standard entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		entry, err := scanStandard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan standard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standard entries: %w", err)
	}
	return entries, nil
}
