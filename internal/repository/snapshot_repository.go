package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	createStateTable = `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	upsertState = `INSERT INTO state(bucket, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	selectState = `SELECT bucket, payload FROM state`
)

// SnapshotRepository persists JSON encoded buckets into a SQLite state table.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository ensures the state table exists.
func NewSnapshotRepository(ctx context.Context, db *sqlx.DB) (*SnapshotRepository, error) {
	if _, err := db.ExecContext(ctx, createStateTable); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SnapshotRepository{db: db}, nil
}

// SaveAll marshals and upserts every bucket in one transaction.
func (r *SnapshotRepository) SaveAll(ctx context.Context, buckets map[string]interface{}) (retErr error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for bucket, value := range buckets {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if _, err := tx.ExecContext(ctx, upsertState, bucket, payload); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadAll returns the raw payload of every stored bucket.
func (r *SnapshotRepository) LoadAll(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := r.db.QueryxContext(ctx, selectState)
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out[bucket] = json.RawMessage(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}
	return out, nil
}
