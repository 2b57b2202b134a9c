package asset

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"boardroom/internal/app/storage"
	"boardroom/internal/pkg/clock"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/randx"
)

// UploadInput describes one multipart upload.
type UploadInput struct {
	Type        string
	Name        string
	ContentType string
	Body        io.Reader
	UploaderID  string
}

// Service stores asset files and records them.
type Service struct {
	store   Store
	storage storage.StorageService
	clock   clock.Clock
	logger  zerolog.Logger
}

// NewService constructs a Service.
func NewService(store Store, files storage.StorageService, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{
		store:   store,
		storage: files,
		clock:   clk,
		logger:  logx.Component("assets"),
	}
}

// List returns every asset, newest first.
func (s *Service) List(ctx context.Context) ([]Asset, error) {
	return s.store.List(ctx)
}

// Upload validates in, writes the file as <id><ext> and records it.
// The file is removed again if the record cannot be written.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Asset, error) {
	typ, err := ParseType(in.Type)
	if err != nil {
		return Asset{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Asset{}, ErrInvalidName
	}
	ext, err := ExtensionFor(in.ContentType)
	if err != nil {
		return Asset{}, err
	}

	id := randx.ID()
	key := id + ext

	url, err := s.storage.Put(ctx, key, in.ContentType, in.Body)
	if err != nil {
		return Asset{}, err
	}

	var uploader *string
	if in.UploaderID != "" {
		uploader = &in.UploaderID
	}

	created, err := s.store.Create(ctx, Asset{
		ID:               id,
		Type:             typ,
		Name:             in.Name,
		FileURL:          url,
		UploadedByUserID: uploader,
		CreatedAt:        s.clock.Now(),
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned upload.")
		}
		return Asset{}, err
	}

	s.logger.Info().
		Str("asset_id", created.ID).
		Str("type", string(created.Type)).
		Str("uploader_id", in.UploaderID).
		Msg("Asset uploaded.")

	return created, nil
}
