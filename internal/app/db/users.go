package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardroom/internal/app/user"
)

const (
	userColumns   = `id, nickname, nickname_norm, password_hash, role, is_active, created_at, updated_at`
	nicknameIndex = "ix_users_nickname_norm"
)

// UserStore implements user.Store.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore returns a UserStore on pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

var _ user.Store = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	query := `
		INSERT INTO users (id, nickname, nickname_norm, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	row := s.pool.QueryRow(ctx, query,
		u.ID, u.Nickname, u.NicknameNorm, u.PasswordHash, string(u.Role), u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	created, err := scanUser(row)
	if err != nil {
		if isNicknameConflict(err) {
			return user.User{}, user.ErrNicknameTaken
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.one(row)
}

func (s *UserStore) GetByNicknameNorm(ctx context.Context, nicknameNorm string) (user.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE nickname_norm = $1`, nicknameNorm)
	return s.one(row)
}

func (s *UserStore) List(ctx context.Context) ([]user.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserStore) Update(ctx context.Context, u user.User) (user.User, error) {
	query := `
		UPDATE users
		SET nickname = $2, nickname_norm = $3, password_hash = $4, is_active = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + userColumns

	row := s.pool.QueryRow(ctx, query, u.ID, u.Nickname, u.NicknameNorm, u.PasswordHash, u.IsActive, u.UpdatedAt)
	updated, err := scanUser(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return user.User{}, user.ErrNotFound
	case isNicknameConflict(err):
		return user.User{}, user.ErrNicknameTaken
	case err != nil:
		return user.User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *UserStore) HasRole(ctx context.Context, role user.Role) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, string(role)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

func (s *UserStore) one(row pgx.Row) (user.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	err := row.Scan(&u.ID, &u.Nickname, &u.NicknameNorm, &u.PasswordHash, &role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}

	u.Role, err = user.ParseRole(role)
	if err != nil {
		return user.User{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return u, nil
}

func isNicknameConflict(err error) bool {
	return IsUniqueViolation(err) && violatedConstraint(err) == nicknameIndex
}
