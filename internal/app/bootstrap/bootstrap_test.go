package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"boardroom/internal/app/memstore"
	"boardroom/internal/app/user"
)

func newUsers() (*memstore.Users, *user.Service) {
	store := memstore.NewUsers()
	return store, user.NewService(store, user.BcryptHasher{Cost: bcrypt.MinCost}, nil)
}

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	ctx := context.Background()
	store, users := newUsers()
	cfg := Config{Enabled: true, Strict: true, Nickname: "Root", Password: "pw"}

	require.NoError(t, SeedAdmin(ctx, store, users, cfg))
	require.NoError(t, SeedAdmin(ctx, store, users, cfg))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, user.RoleAdmin, list[0].Role)
	assert.Equal(t, "root", list[0].NicknameNorm)
}

func TestSeedAdmin_Disabled(t *testing.T) {
	ctx := context.Background()
	store, users := newUsers()

	require.NoError(t, SeedAdmin(ctx, store, users, Config{Enabled: false, Strict: true}))

	has, err := store.HasRole(ctx, user.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSeedAdmin_Misconfiguration(t *testing.T) {
	cases := map[string]Config{
		"missing credentials": {Enabled: true},
		"blank nickname":      {Enabled: true, Nickname: "   ", Password: "pw"},
		"conflict":            {Enabled: true, Nickname: "TAKEN", Password: "pw"},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, users := newUsers()
			_, err := users.Create(ctx, user.CreateInput{Nickname: "taken", Password: "pw"})
			require.NoError(t, err)

			cfg.Strict = false
			assert.NoError(t, SeedAdmin(ctx, store, users, cfg), "dev skips")

			cfg.Strict = true
			assert.ErrorIs(t, SeedAdmin(ctx, store, users, cfg), ErrBootstrap, "prod refuses")

			has, err := store.HasRole(ctx, user.RoleAdmin)
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}
