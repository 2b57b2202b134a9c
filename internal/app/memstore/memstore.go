/*
Package memstore provides in-process implementations of the user, refresh-token and
asset stores. It backs STORE_DRIVER=memory and the service tests; data does not
survive a restart.
*/
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"boardroom/internal/app/asset"
	"boardroom/internal/app/session"
	"boardroom/internal/app/user"
)

// Users implements user.Store.
type Users struct {
	mu     sync.RWMutex
	byID   map[string]user.User
	byNorm map[string]string
}

// NewUsers returns an empty Users store.
func NewUsers() *Users {
	return &Users{
		byID:   make(map[string]user.User),
		byNorm: make(map[string]string),
	}
}

var _ user.Store = (*Users)(nil)

func (s *Users) Create(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byNorm[u.NicknameNorm]; ok {
		return user.User{}, user.ErrNicknameTaken
	}

	s.byID[u.ID] = u
	s.byNorm[u.NicknameNorm] = u.ID
	return u, nil
}

func (s *Users) GetByID(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *Users) GetByNicknameNorm(_ context.Context, nicknameNorm string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNorm[nicknameNorm]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *Users) List(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Users) Update(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[u.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if owner, taken := s.byNorm[u.NicknameNorm]; taken && owner != u.ID {
		return user.User{}, user.ErrNicknameTaken
	}

	delete(s.byNorm, cur.NicknameNorm)
	cur.Nickname = u.Nickname
	cur.NicknameNorm = u.NicknameNorm
	cur.PasswordHash = u.PasswordHash
	cur.IsActive = u.IsActive
	cur.UpdatedAt = u.UpdatedAt

	s.byID[cur.ID] = cur
	s.byNorm[cur.NicknameNorm] = cur.ID
	return cur, nil
}

func (s *Users) HasRole(_ context.Context, role user.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.byID {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// RefreshTokens implements session.RefreshStore.
type RefreshTokens struct {
	mu     sync.RWMutex
	byID   map[string]session.RefreshRecord
	byHash map[string]string
}

// NewRefreshTokens returns an empty RefreshTokens store.
func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{
		byID:   make(map[string]session.RefreshRecord),
		byHash: make(map[string]string),
	}
}

var _ session.RefreshStore = (*RefreshTokens)(nil)

// ErrDuplicateHash is returned by Create when the token hash already exists.
var ErrDuplicateHash = errors.New("refresh token hash already exists")

func (s *RefreshTokens) Create(_ context.Context, rec session.RefreshRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHash[rec.TokenHash]; ok {
		return ErrDuplicateHash
	}
	s.byID[rec.ID] = rec
	s.byHash[rec.TokenHash] = rec.ID
	return nil
}

func (s *RefreshTokens) FindActiveByHash(_ context.Context, tokenHash string) (session.RefreshRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byHash[tokenHash]
	if !ok {
		return session.RefreshRecord{}, session.ErrTokenNotFound
	}
	rec := s.byID[id]
	if rec.Revoked() {
		return session.RefreshRecord{}, session.ErrTokenNotFound
	}
	return rec, nil
}

func (s *RefreshTokens) Revoke(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok || rec.Revoked() {
		return nil
	}
	rec.RevokedAt = &at
	s.byID[id] = rec
	return nil
}

// Records returns a copy of every stored record. Tests use it to inspect what was persisted.
func (s *RefreshTokens) Records() []session.RefreshRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]session.RefreshRecord, 0, len(s.byID))
	for _, rec := range s.byID {
		out = append(out, rec)
	}
	return out
}

// Assets implements asset.Store.
type Assets struct {
	mu    sync.RWMutex
	items []asset.Asset
}

// NewAssets returns an empty Assets store.
func NewAssets() *Assets {
	return &Assets{}
}

var _ asset.Store = (*Assets)(nil)

func (s *Assets) Create(_ context.Context, a asset.Asset) (asset.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, a)
	return a, nil
}

func (s *Assets) List(_ context.Context) ([]asset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]asset.Asset, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
