package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS client_sessions (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (namespace, key)
)`

// SessionStore хранит ключи сессии в Postgres, одна строка на ключ.
type SessionStore struct {
	db        *sql.DB
	namespace string
}

func NewSessionStore(db *sql.DB, namespace string) *SessionStore {
	if namespace == "" {
		namespace = "default"
	}
	return &SessionStore{db: db, namespace: namespace}
}

// EnsureSchema создает таблицу сессии, если ее еще нет.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		if isUniqueViolation(err) {
			// параллельный CREATE TABLE IF NOT EXISTS столкнулся на pg_type
			return nil
		}
		return fmt.Errorf("create client_sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	const query = `
		SELECT key, value
		FROM client_sessions
		WHERE namespace = $1 AND key = ANY($2)
	`
	rows, err := s.db.QueryContext(ctx, query, s.namespace, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("query session keys: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan session key: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session keys: %w", err)
	}
	return out, nil
}

func (s *SessionStore) MultiSet(ctx context.Context, items map[string]string) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	const query = `
		INSERT INTO client_sessions (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	for key, value := range items {
		if _, err := tx.ExecContext(ctx, query, s.namespace, key, value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store session key %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *SessionStore) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `DELETE FROM client_sessions WHERE namespace = $1 AND key = ANY($2)`
	if _, err := s.db.ExecContext(ctx, query, s.namespace, pq.Array(keys)); err != nil {
		return fmt.Errorf("remove session keys: %w", err)
	}
	return nil
}

const uniqueViolation = "23505"

// isUniqueViolation понимает ошибки обоих драйверов: lib/pq и pgx.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolation
	}
	return false
}
