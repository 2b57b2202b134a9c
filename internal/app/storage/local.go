package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"boardroom/internal/pkg/logx"
)

// DefaultPublicPath is the URL prefix under which the local backend's files are served.
const DefaultPublicPath = "/storage/uploads"

// localStore writes files under a directory served by the HTTP router.
type localStore struct {
	dir        string
	publicPath string
	logger     zerolog.Logger
}

func newLocalStore(cfg ServiceConfig) (*localStore, error) {
	if cfg.UploadDir == "" {
		return nil, errors.New("storage: upload dir is required for the local backend")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}

	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = DefaultPublicPath
	}

	return &localStore{
		dir:        cfg.UploadDir,
		publicPath: publicPath,
		logger:     logx.Component("storage.local"),
	}, nil
}

// Put streams body to <dir>/<key>. A partially written file is removed on failure.
func (s *localStore) Put(ctx context.Context, key, _ string, body io.Reader) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, key)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to create upload file.")
		return "", fmt.Errorf("storage: create %s: %w", key, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(dst)
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to write upload file.")
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("storage: close %s: %w", key, err)
	}

	return path.Join(s.publicPath, key), nil
}

// Delete removes <dir>/<key>. A missing file is not an error.
func (s *localStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to delete upload file.")
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
