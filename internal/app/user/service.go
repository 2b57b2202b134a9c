package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"boardroom/internal/pkg/clock"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/randx"
)

// CreateInput is the admin request to create a user.
type CreateInput struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// PatchInput is a partial update; nil fields are left untouched.
type PatchInput struct {
	Nickname *string `json:"nickname"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
}

// Service implements admin user management on top of a Store.
type Service struct {
	store  Store
	hasher PasswordHasher
	clock  clock.Clock
	logger zerolog.Logger
}

// NewService constructs a Service.
func NewService(store Store, hasher PasswordHasher, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{
		store:  store,
		hasher: hasher,
		clock:  clk,
		logger: logx.Component("users"),
	}
}

// List returns every user, newest first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// Get returns the user with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	if !randx.IsValidID(id) {
		return User{}, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// Create adds an active user with role USER. Admins are only created by bootstrap.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	return s.create(ctx, in.Nickname, in.Password, RoleUser)
}

// CreateWithRole adds an active user with an explicit role.
func (s *Service) CreateWithRole(ctx context.Context, nickname, password string, role Role) (User, error) {
	return s.create(ctx, nickname, password, role)
}

func (s *Service) create(ctx context.Context, nickname, password string, role Role) (User, error) {
	if err := ValidateNickname(nickname); err != nil {
		return User{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return User{}, err
	}

	norm := NormalizeNickname(nickname)

	// Checked before hashing so a conflict does not pay for bcrypt.
	if _, err := s.store.GetByNicknameNorm(ctx, norm); err == nil {
		return User{}, ErrNicknameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}

	now := s.clock.Now()
	created, err := s.store.Create(ctx, User{
		ID:           randx.ID(),
		Nickname:     nickname,
		NicknameNorm: norm,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return User{}, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("User created.")

	return created, nil
}

// Patch applies the non-nil fields of in to the user with the given id.
func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Nickname != nil {
		if err := ValidateNickname(*in.Nickname); err != nil {
			return User{}, err
		}

		norm := NormalizeNickname(*in.Nickname)
		existing, err := s.store.GetByNicknameNorm(ctx, norm)
		switch {
		case err == nil && existing.ID != u.ID:
			return User{}, ErrNicknameTaken
		case err != nil && !errors.Is(err, ErrNotFound):
			return User{}, err
		}

		u.Nickname = *in.Nickname
		u.NicknameNorm = norm
	}

	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}

	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	u.UpdatedAt = s.clock.Now()

	updated, err := s.store.Update(ctx, u)
	if err != nil {
		return User{}, fmt.Errorf("update user %s: %w", id, err)
	}

	s.logger.Info().
		Str("user_id", updated.ID).
		Bool("nickname_changed", in.Nickname != nil).
		Bool("password_changed", in.Password != nil).
		Bool("is_active", updated.IsActive).
		Msg("User updated.")

	return updated, nil
}
