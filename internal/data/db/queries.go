package db

import (
	"context"
	"database/sql"
	"fmt"
)

// KVRow is a row of the kv_store table.
type KVRow struct {
	Key       string
	Value     []byte
	CreatedAt int64
	UpdatedAt int64
}

// KVGet returns the row for key, or sql.ErrNoRows.
func (db *DB) KVGet(ctx context.Context, key string) (KVRow, error) {
	var row KVRow
	err := db.conn.QueryRowContext(ctx,
		"SELECT key, value, created_at, updated_at FROM kv_store WHERE key = ?", key,
	).Scan(&row.Key, &row.Value, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

// KVSet inserts or replaces the value for a key. created_at is kept on update.
func (db *DB) KVSet(ctx context.Context, key string, value []byte, now int64) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now, now)
	return err
}

// KVDelete removes a key. Missing keys are ignored.
func (db *DB) KVDelete(ctx context.Context, key string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key)
	return err
}

// KVHas returns the number of rows stored under key (0 or 1).
func (db *DB) KVHas(ctx context.Context, key string) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store WHERE key = ?", key).Scan(&count)
	return count, err
}

// KVListKeys returns all keys in sorted order.
func (db *DB) KVListKeys(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// WithTx executes fn within a transaction, rolling back if fn returns an error.
func (db *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
