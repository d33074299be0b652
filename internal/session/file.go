package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps a single user's token on disk for the CLI. The id is ignored.
type FileStore struct {
	Path string
	now  func() time.Time
}

type fileRecord struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires,omitzero"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, now: time.Now}
}

func (s *FileStore) Get(_ context.Context, _ string) (string, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Token == "" {
		return "", ErrNotFound
	}
	if !rec.Expires.IsZero() && !s.clock().Before(rec.Expires) {
		_ = os.Remove(s.Path)
		return "", ErrNotFound
	}
	return rec.Token, nil
}

func (s *FileStore) Put(_ context.Context, _ string, token string, ttl time.Duration) error {
	rec := fileRecord{Token: token}
	if ttl > 0 {
		rec.Expires = s.clock().Add(ttl).UTC()
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.Path, raw, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, _ string) error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *FileStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
