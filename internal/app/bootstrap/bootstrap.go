// Package bootstrap seeds the first ADMIN identity at process start.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"boardroom/internal/app/user"
	"boardroom/internal/pkg/logx"
)

// Config selects whether and how the admin is seeded.
type Config struct {
	Enabled  bool
	Strict   bool // prod: refuse to start instead of warning
	Nickname string
	Password string
}

// ErrBootstrap wraps every misconfiguration reported in strict mode.
var ErrBootstrap = errors.New("admin bootstrap failed")

// SeedAdmin creates an ADMIN from cfg when enabled and none exists yet. It is idempotent.
// Misconfiguration is an error in strict mode and a logged skip otherwise.
func SeedAdmin(ctx context.Context, store user.Store, users *user.Service, cfg Config) error {
	logger := logx.Component("bootstrap")

	if !cfg.Enabled {
		return nil
	}

	exists, err := store.HasRole(ctx, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check for existing admin: %w", err)
	}
	if exists {
		logger.Debug().Msg("Admin already present; bootstrap skipped.")
		return nil
	}

	fail := func(msg string) error {
		if cfg.Strict {
			return fmt.Errorf("%w: %s", ErrBootstrap, msg)
		}
		logger.Warn().Msg(msg + " Skipping bootstrap in dev.")
		return nil
	}

	if cfg.Nickname == "" || cfg.Password == "" {
		return fail("BOOTSTRAP_ADMIN_ENABLED=true but BOOTSTRAP_ADMIN_NICKNAME/PASSWORD not set.")
	}

	admin, err := users.CreateWithRole(ctx, cfg.Nickname, cfg.Password, user.RoleAdmin)
	switch {
	case errors.Is(err, user.ErrInvalidNickname):
		return fail("Invalid admin nickname.")
	case errors.Is(err, user.ErrInvalidPassword):
		return fail("Invalid admin password length.")
	case errors.Is(err, user.ErrNicknameTaken):
		return fail("Bootstrap admin nickname conflicts with an existing user.")
	case err != nil:
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info().Str("user_id", admin.ID).Msg("Bootstrap admin created.")
	return nil
}
