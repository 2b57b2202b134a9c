/*
Package randx provides cryptographically secure random values and unique identifiers.

It is used for opaque URL-safe secrets (refresh tokens) and UUID v4 identifiers for
users, refresh records, assets and board connections.
*/
package randx

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// URLSafeToken returns nBytes of crypto/rand output encoded as unpadded base64url.
func URLSafeToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", nBytes)
	}

	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ID generates a standard UUID v4 string.
func ID() string {
	return uuid.New().String()
}

// IsValidID reports whether s parses as a UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
