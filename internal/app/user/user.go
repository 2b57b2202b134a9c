/*
Package user contains the identity model, nickname rules, password hashing and the
admin-facing user management service.
*/
package user

import (
	"errors"
	"time"
)

// Role is the closed set of role tags an identity can carry.
type Role string

const (
	// RoleUser is a regular board participant.
	RoleUser Role = "USER"

	// RoleAdmin can manage users.
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a stored or transported role tag into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

var (
	// ErrNotFound is returned when no identity matches a lookup.
	ErrNotFound = errors.New("user not found")

	// ErrNicknameTaken is returned when the normalized nickname already exists.
	ErrNicknameTaken = errors.New("nickname already exists")

	// ErrInvalidNickname is returned for a nickname that is empty after whitespace collapsing.
	ErrInvalidNickname = errors.New("nickname cannot be empty")

	// ErrInvalidPassword is returned for a password outside [MinPasswordBytes, MaxPasswordBytes].
	ErrInvalidPassword = errors.New("invalid password length")

	// ErrInvalidRole is returned for a role tag outside the known set.
	ErrInvalidRole = errors.New("invalid role")
)

// User is a persisted identity.
type User struct {
	ID           string
	Nickname     string
	NicknameNorm string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary is the public projection returned by login and /me.
type Summary struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

// Summary returns the public projection of u.
func (u User) Summary() Summary {
	return Summary{ID: u.ID, Nickname: u.Nickname, Role: u.Role}
}

// Profile is the admin projection of a user.
type Profile struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile returns the admin projection of u. The password hash is never part of it.
func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Nickname:  u.Nickname,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
