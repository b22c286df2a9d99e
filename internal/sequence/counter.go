package sequence

import (
	"context"
	"database/sql"
)

// The counter row is upserted atomically so concurrent first-saves in the
// same month are serialized by the database instead of racing on a
// "find max, add one" read.
const nextValueQuery = `
	INSERT INTO sequence_counters (scope, value)
	VALUES ($1, 1)
	ON CONFLICT (scope)
	DO UPDATE SET value = sequence_counters.value + 1
	RETURNING value
`

type pgCounter struct {
	db *sql.DB
}

// NewCounter returns a Counter backed by the sequence_counters table.
func NewCounter(db *sql.DB) Counter {
	return &pgCounter{db: db}
}

func (c *pgCounter) Next(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := c.db.QueryRowContext(ctx, nextValueQuery, scope).Scan(&value)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// NextInTx increments the scope counter within an existing transaction, so a
// document and its number commit or roll back together.
func NextInTx(ctx context.Context, tx *sql.Tx, scope string) (int64, error) {
	var value int64
	err := tx.QueryRowContext(ctx, nextValueQuery, scope).Scan(&value)
	if err != nil {
		return 0, err
	}
	return value, nil
}
