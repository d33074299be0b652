// Package session keeps the user's opaque API bearer token between requests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no live token exists for an id.
var ErrNotFound = errors.New("session not found")

// Store maps a session id to a bearer token.
type Store interface {
	Get(ctx context.Context, id string) (string, error)
	Put(ctx context.Context, id, token string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}
