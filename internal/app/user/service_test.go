package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"boardroom/internal/app/memstore"
	"boardroom/internal/app/user"
	"boardroom/internal/pkg/clock"
)

func newService(t *testing.T) (*user.Service, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC))
	return user.NewService(memstore.NewUsers(), user.BcryptHasher{Cost: bcrypt.MinCost}, clk), clk
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, user.CreateInput{Nickname: "  Alice  Smith ", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "  Alice  Smith ", u.Nickname)
	assert.Equal(t, "alice smith", u.NicknameNorm)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, clk.Now(), u.CreatedAt)
	assert.NotEqual(t, "pw", u.PasswordHash)

	_, err = svc.Create(ctx, user.CreateInput{Nickname: "ALICE SMITH", Password: "pw"})
	assert.ErrorIs(t, err, user.ErrNicknameTaken)

	_, err = svc.Create(ctx, user.CreateInput{Nickname: "   ", Password: "pw"})
	assert.ErrorIs(t, err, user.ErrInvalidNickname)

	_, err = svc.Create(ctx, user.CreateInput{Nickname: "bob", Password: ""})
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
}

func TestService_CreateWithRole(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.CreateWithRole(context.Background(), "root", "pw", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)

	_, err = svc.CreateWithRole(context.Background(), "x", "pw", user.Role("OWNER"))
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestService_GetAndList(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, user.CreateInput{Nickname: "first", Password: "pw"})
	require.NoError(t, err)
	clk.Advance(time.Minute)
	second, err := svc.Create(ctx, user.CreateInput{Nickname: "second", Password: "pw"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = svc.Get(ctx, "6f1c1d7e-4a52-4c53-9b8e-0d6f3f7f2a11")
	assert.ErrorIs(t, err, user.ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestService_Patch(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()
	hasher := user.BcryptHasher{Cost: bcrypt.MinCost}

	alice, err := svc.Create(ctx, user.CreateInput{Nickname: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.CreateInput{Nickname: "bob", Password: "pw"})
	require.NoError(t, err)

	clk.Advance(time.Hour)

	t.Run("nickname conflict with another user", func(t *testing.T) {
		_, err := svc.Patch(ctx, alice.ID, user.PatchInput{Nickname: ptr(" BOB ")})
		assert.ErrorIs(t, err, user.ErrNicknameTaken)
	})

	t.Run("renaming to own normalized nickname is allowed", func(t *testing.T) {
		u, err := svc.Patch(ctx, alice.ID, user.PatchInput{Nickname: ptr("Alice")})
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Nickname)
		assert.Equal(t, "alice", u.NicknameNorm)
	})

	t.Run("empty nickname", func(t *testing.T) {
		_, err := svc.Patch(ctx, alice.ID, user.PatchInput{Nickname: ptr("  ")})
		assert.ErrorIs(t, err, user.ErrInvalidNickname)
	})

	t.Run("password and active flag", func(t *testing.T) {
		u, err := svc.Patch(ctx, alice.ID, user.PatchInput{Password: ptr("new-pw"), IsActive: ptr(false)})
		require.NoError(t, err)
		assert.False(t, u.IsActive)
		assert.True(t, hasher.Verify(u.PasswordHash, "new-pw"))
		assert.Equal(t, clk.Now(), u.UpdatedAt)
		assert.Equal(t, alice.CreatedAt, u.CreatedAt)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Patch(ctx, "6f1c1d7e-4a52-4c53-9b8e-0d6f3f7f2a11", user.PatchInput{IsActive: ptr(true)})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUser_Projections(t *testing.T) {
	u := user.User{ID: "1", Nickname: "Al", PasswordHash: "secret", Role: user.RoleAdmin, IsActive: true}

	assert.Equal(t, user.Summary{ID: "1", Nickname: "Al", Role: user.RoleAdmin}, u.Summary())

	p := u.Profile()
	assert.Equal(t, "1", p.ID)
	assert.True(t, p.IsActive)
}
