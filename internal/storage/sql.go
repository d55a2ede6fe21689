package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps documents in a kv_store table. It works with both the
// postgres and sqlite drivers; placeholders are rebound per driver.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps db and creates the kv_store table if needed
func NewSQLStore(db *sqlx.DB) (*SQLStore, error) {
	s := &SQLStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	timestampType := "TEXT"
	if s.db.DriverName() == "postgres" {
		timestampType = "TIMESTAMP WITH TIME ZONE"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kv_store (
			user_id TEXT NOT NULL,
			doc_key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at %s NOT NULL,
			PRIMARY KEY (user_id, doc_key)
		)`, timestampType),
		`CREATE INDEX IF NOT EXISTS idx_kv_store_updated_at ON kv_store(updated_at)`,
	}

	for i, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, userID, key string) ([]byte, error) {
	query := s.db.Rebind(`SELECT value FROM kv_store WHERE user_id = ? AND doc_key = ?`)

	var value string
	if err := s.db.GetContext(ctx, &value, query, userID, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, userID, key string, value []byte) error {
	query := s.db.Rebind(`
		INSERT INTO kv_store (user_id, doc_key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, doc_key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)

	if _, err := s.db.ExecContext(ctx, query, userID, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, userID, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_store WHERE user_id = ? AND doc_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, userID, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
