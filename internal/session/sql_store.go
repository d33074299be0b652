package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const sessionsDDL = `
CREATE TABLE IF NOT EXISTS sessions (
	id_hash CHAR(64) NOT NULL PRIMARY KEY,
	token TEXT NOT NULL,
	expires_at DATETIME NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

// SQLStore keeps sessions in a MySQL table.
type SQLStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db, now: time.Now}
}

// EnsureSchema creates the sessions table when missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, sessionsDDL); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (string, error) {
	var (
		token   string
		expires sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT token, expires_at FROM sessions WHERE id_hash = ?`, storageKey(id),
	).Scan(&token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session get: %w", err)
	}
	if expires.Valid && !s.clock().Before(expires.Time) {
		_ = s.Delete(ctx, id)
		return "", ErrNotFound
	}
	return token, nil
}

func (s *SQLStore) Put(ctx context.Context, id, token string, ttl time.Duration) error {
	var expires any
	if ttl > 0 {
		expires = s.clock().Add(ttl).UTC()
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO sessions (id_hash, token, expires_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), expires_at = VALUES(expires_at)`,
		storageKey(id), token, expires,
	)
	if err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id_hash = ?`, storageKey(id)); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// PurgeExpired removes rows whose expiry has passed.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.clock().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
