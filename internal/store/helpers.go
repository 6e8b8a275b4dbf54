package store

import (
	"database/sql"
	"fmt"
	"time"

	"tally/internal/errkit"
	"tally/internal/ledger"
)

const standardColumns = "id, name, value, date, category"

const recurrentColumns = "id, name, value, frequency, start_date, end_date, category"

func scanStandard(scanner interface{ Scan(dest ...any) error }) (ledger.Entry, error) {
	var entry ledger.Entry
	if err := scanner.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Value,
		&entry.Date,
		&entry.Category,
	); err != nil {
		return ledger.Entry{}, err
	}
	return entry, nil
}

func scanRecurrent(scanner interface{ Scan(dest ...any) error }) (ledger.RecurrentEntry, error) {
	var (
		entry     ledger.RecurrentEntry
		frequency string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Value,
		&frequency,
		&entry.Start,
		&entry.End,
		&entry.Category,
	); err != nil {
		return ledger.RecurrentEntry{}, err
	}
	entry.Frequency = ledger.Frequency(frequency)
	return entry, nil
}

func notFound(table ledger.Table, id int64) error {
	return errkit.Wrap(errkit.ErrNotFound, "store", string(table), fmt.Sprintf("element %d not found", id), nil)
}

func requireAffected(res sql.Result, table ledger.Table, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("count affected rows: %w", err)
	}
	if affected == 0 {
		return notFound(table, id)
	}
	return nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
