package user

import "context"

// Store persists identities.
//
// Implementations enforce uniqueness of NicknameNorm and report conflicts as
// ErrNicknameTaken; missing rows are reported as ErrNotFound.
type Store interface {
	// Create inserts u and returns it with server-side timestamps filled in.
	Create(ctx context.Context, u User) (User, error)

	// GetByID loads the identity with the given id.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByNicknameNorm loads the identity owning the normalized nickname.
	GetByNicknameNorm(ctx context.Context, nicknameNorm string) (User, error)

	// List returns every identity, newest first.
	List(ctx context.Context) ([]User, error)

	// Update overwrites the mutable fields of u (nickname, password hash, active flag).
	Update(ctx context.Context, u User) (User, error)

	// HasRole reports whether at least one identity carries role.
	HasRole(ctx context.Context, role Role) (bool, error)
}
