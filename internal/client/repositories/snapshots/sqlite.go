package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthnav/internal/dbx"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Snapshot, error) {
	s := Snapshot{Key: key}
	var updated int64
	err := r.db.QueryRowContext(ctx,
		`SELECT version, value, updated_at FROM persisted_state WHERE key = ?`, key,
	).Scan(&s.Version, &s.Value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot[%s]: %w", key, err)
	}
	s.UpdatedAt = time.UnixMilli(updated).UTC()
	return &s, nil
}

func (r *SQLiteRepository) put(ctx context.Context, db dbx.DBTX, s Snapshot) error {
	if s.Value == nil {
		s.Value = []byte{}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO persisted_state (key, version, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.Key, s.Version, s.Value, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to put snapshot[%s]: %w", s.Key, err)
	}
	return nil
}

func (r *SQLiteRepository) Put(ctx context.Context, s Snapshot) error {
	return r.put(ctx, r.db, s)
}

func (r *SQLiteRepository) PutAll(ctx context.Context, ss ...Snapshot) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, s := range ss {
			if err := r.put(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM persisted_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM persisted_state`)
	if err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, version, value, updated_at FROM persisted_state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		var s Snapshot
		var updated int64
		if err := rows.Scan(&s.Key, &s.Version, &s.Value, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		s.UpdatedAt = time.UnixMilli(updated).UTC()
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return result, nil
}

var _ Repository = (*SQLiteRepository)(nil)
