/*
Package session implements the login, refresh, logout and bearer authentication protocol.

Access tokens are short-lived signed JWTs carried in the Authorization header or the
real-time connect URL. Refresh tokens are opaque random secrets carried only in an
http-only cookie; only their SHA-256 digest is persisted. Refresh does not rotate the
secret: it stays valid until its fixed expiry or an explicit logout.
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"boardroom/internal/app/user"
	"boardroom/internal/pkg/auth/jwt"
	"boardroom/internal/pkg/auth/refresh"
	"boardroom/internal/pkg/clock"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/randx"
)

var (
	// ErrUnauthenticated is the single rejection of Login, Refresh and Authenticate.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned by Authorize when the role is not allowed.
	ErrForbidden = errors.New("forbidden")
)

// Config carries the session lifetimes.
type Config struct {
	RefreshLifetime time.Duration
}

// LoginResult is returned by a successful Login. RefreshToken is the raw secret and
// must only ever be written to the refresh cookie.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             user.Summary
}

// Service orchestrates the session protocol.
type Service struct {
	users    user.Store
	tokens   RefreshStore
	hasher   user.PasswordHasher
	issuer   *jwt.Issuer
	clock    clock.Clock
	lifetime time.Duration
	logger   zerolog.Logger

	// dummyHash is verified against when no identity matches, so unknown nicknames
	// cost the same hashing work as wrong passwords.
	dummyHash string
}

// NewService constructs a Service. A non-positive refresh lifetime is rejected.
func NewService(users user.Store, tokens RefreshStore, hasher user.PasswordHasher, issuer *jwt.Issuer, clk clock.Clock, cfg Config) (*Service, error) {
	if users == nil || tokens == nil || hasher == nil || issuer == nil {
		return nil, errors.New("session: stores, hasher and issuer are required")
	}
	if cfg.RefreshLifetime <= 0 {
		return nil, fmt.Errorf("session: refresh lifetime must be positive, got %s", cfg.RefreshLifetime)
	}
	if clk == nil {
		clk = clock.Real{}
	}

	dummy, err := hasher.Hash("unused-login-placeholder")
	if err != nil {
		return nil, fmt.Errorf("session: prepare dummy hash: %w", err)
	}

	return &Service{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		issuer:   issuer,
		clock:    clk,
		lifetime: cfg.RefreshLifetime,
		logger:   logx.Component("session"),

		dummyHash: dummy,
	}, nil
}

// RefreshLifetime returns the configured refresh-token lifetime.
func (s *Service) RefreshLifetime() time.Duration {
	return s.lifetime
}

// Login verifies credentials and issues an access token and a new refresh secret.
func (s *Service) Login(ctx context.Context, nickname, password string) (LoginResult, error) {
	if err := user.ValidateNickname(nickname); err != nil {
		return LoginResult{}, ErrUnauthenticated
	}

	u, err := s.users.GetByNicknameNorm(ctx, user.NormalizeNickname(nickname))
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			s.logger.Error().Err(err).Msg("Failed to load user for login.")
		}
		s.hasher.Verify(s.dummyHash, password)
		return LoginResult{}, ErrUnauthenticated
	}

	if !s.hasher.Verify(u.PasswordHash, password) || !u.IsActive {
		return LoginResult{}, ErrUnauthenticated
	}

	access, _, err := s.issuer.Mint(u.ID, string(u.Role))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to mint access token.")
		return LoginResult{}, err
	}

	secret, hash, err := refresh.NewSecret()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate refresh secret.")
		return LoginResult{}, err
	}

	now := s.clock.Now()
	rec := RefreshRecord{
		ID:        randx.ID(),
		UserID:    u.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.lifetime),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to persist refresh token.")
		return LoginResult{}, err
	}

	s.logger.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("User logged in.")

	return LoginResult{
		AccessToken:      access,
		RefreshToken:     secret,
		RefreshExpiresAt: rec.ExpiresAt,
		User:             u.Summary(),
	}, nil
}

// Refresh exchanges a raw refresh secret for a new access token. The secret is not rotated.
func (s *Service) Refresh(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrUnauthenticated
	}

	rec, err := s.tokens.FindActiveByHash(ctx, refresh.Hash(raw))
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			s.logger.Error().Err(err).Msg("Failed to look up refresh token.")
		}
		return "", ErrUnauthenticated
	}

	if rec.Expired(s.clock.Now()) {
		return "", ErrUnauthenticated
	}

	u, err := s.activeUser(ctx, rec.UserID)
	if err != nil {
		return "", err
	}

	access, _, err := s.issuer.Mint(u.ID, string(u.Role))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to mint access token.")
		return "", err
	}

	return access, nil
}

// Logout revokes the record matching raw, if any. It never fails; storage errors are logged.
func (s *Service) Logout(ctx context.Context, raw string) {
	if raw == "" {
		return
	}

	rec, err := s.tokens.FindActiveByHash(ctx, refresh.Hash(raw))
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			s.logger.Warn().Err(err).Msg("Failed to look up refresh token on logout.")
		}
		return
	}

	if err := s.tokens.Revoke(ctx, rec.ID, s.clock.Now()); err != nil {
		s.logger.Warn().Err(err).Str("token_id", rec.ID).Msg("Failed to revoke refresh token.")
		return
	}

	s.logger.Info().Str("user_id", rec.UserID).Msg("User logged out.")
}

// Authenticate resolves a bearer access token to an active identity.
func (s *Service) Authenticate(ctx context.Context, bearer string) (user.User, error) {
	if bearer == "" {
		return user.User{}, ErrUnauthenticated
	}

	claims, err := s.issuer.Verify(bearer)
	if err != nil {
		return user.User{}, ErrUnauthenticated
	}

	return s.activeUser(ctx, claims.Subject)
}

// Authorize reports ErrForbidden unless u's role is one of allowed.
func Authorize(u user.User, allowed ...user.Role) error {
	for _, r := range allowed {
		if u.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

func (s *Service) activeUser(ctx context.Context, id string) (user.User, error) {
	if !randx.IsValidID(id) {
		return user.User{}, ErrUnauthenticated
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			s.logger.Error().Err(err).Str("user_id", id).Msg("Failed to load user.")
		}
		return user.User{}, ErrUnauthenticated
	}

	if !u.IsActive {
		return user.User{}, ErrUnauthenticated
	}

	return u, nil
}
