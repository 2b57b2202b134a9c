package session

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound is returned when no non-revoked record matches a hash.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshRecord is the persisted half of a refresh token. The raw secret is never stored.
type RefreshRecord struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Revoked reports whether the record carries a revocation timestamp.
func (r RefreshRecord) Revoked() bool {
	return r.RevokedAt != nil
}

// Expired reports whether the record's expiry is at or before now.
func (r RefreshRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// RefreshStore persists refresh-token records keyed by the hash of their secret.
type RefreshStore interface {
	// Create inserts rec. TokenHash is unique.
	Create(ctx context.Context, rec RefreshRecord) error

	// FindActiveByHash returns the non-revoked record with the given hash or ErrTokenNotFound.
	// Expiry is not checked here.
	FindActiveByHash(ctx context.Context, tokenHash string) (RefreshRecord, error)

	// Revoke sets RevokedAt on the record if it is not already revoked.
	Revoke(ctx context.Context, id string, at time.Time) error
}
