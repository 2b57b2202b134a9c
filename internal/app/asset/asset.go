/*
Package asset validates and records uploaded board images (maps and avatars).
*/
package asset

import (
	"context"
	"errors"
	"time"
)

// Type is the closed set of asset kinds.
type Type string

const (
	TypeMap    Type = "MAP"
	TypeAvatar Type = "AVATAR"
)

// ParseType converts a form value into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeMap, TypeAvatar:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

var (
	ErrInvalidType      = errors.New("invalid asset type, use MAP or AVATAR")
	ErrInvalidName      = errors.New("asset name cannot be empty")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// extensions maps accepted media types to the stored file extension.
var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ExtensionFor returns the file extension for an accepted media type. The client's
// filename is never consulted.
func ExtensionFor(mimeType string) (string, error) {
	ext, ok := extensions[mimeType]
	if !ok {
		return "", ErrUnsupportedMedia
	}
	return ext, nil
}

// Asset is a persisted upload.
type Asset struct {
	ID               string
	Type             Type
	Name             string
	FileURL          string
	UploadedByUserID *string
	WidthCells       *int
	HeightCells      *int
	CreatedAt        time.Time
}

// View is the API projection of an asset.
type View struct {
	ID               string    `json:"id"`
	Type             Type      `json:"type"`
	Name             string    `json:"name"`
	FileURL          string    `json:"fileUrl"`
	UploadedByUserID *string   `json:"uploadedByUserId"`
	CreatedAt        time.Time `json:"createdAt"`
}

// View returns the API projection of a.
func (a Asset) View() View {
	return View{
		ID:               a.ID,
		Type:             a.Type,
		Name:             a.Name,
		FileURL:          a.FileURL,
		UploadedByUserID: a.UploadedByUserID,
		CreatedAt:        a.CreatedAt,
	}
}

// Store persists asset records.
type Store interface {
	Create(ctx context.Context, a Asset) (Asset, error)

	// List returns every asset, newest first.
	List(ctx context.Context) ([]Asset, error)
}
