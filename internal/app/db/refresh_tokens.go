package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardroom/internal/app/session"
)

// RefreshTokenStore implements session.RefreshStore.
type RefreshTokenStore struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenStore returns a RefreshTokenStore on pool.
func NewRefreshTokenStore(pool *pgxpool.Pool) *RefreshTokenStore {
	return &RefreshTokenStore{pool: pool}
}

var _ session.RefreshStore = (*RefreshTokenStore)(nil)

func (s *RefreshTokenStore) Create(ctx context.Context, rec session.RefreshRecord) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.pool.Exec(ctx, query, rec.ID, rec.UserID, rec.TokenHash, rec.ExpiresAt, rec.CreatedAt); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) FindActiveByHash(ctx context.Context, tokenHash string) (session.RefreshRecord, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	var rec session.RefreshRecord
	err := s.pool.QueryRow(ctx, query, tokenHash).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TokenHash,
		&rec.ExpiresAt,
		&rec.RevokedAt,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.RefreshRecord{}, session.ErrTokenNotFound
		}
		return session.RefreshRecord{}, fmt.Errorf("find refresh token: %w", err)
	}
	return rec, nil
}

func (s *RefreshTokenStore) Revoke(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE refresh_tokens SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`
	if _, err := s.pool.Exec(ctx, query, id, at); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
