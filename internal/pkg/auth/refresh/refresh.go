/*
Package refresh mints opaque refresh secrets and derives their at-rest digest.

The raw secret is handed to the client once and never stored. Only Hash(secret) is
persisted, and lookups always key on that digest. SHA-256 is used instead of the slow
password hash because the input already carries 384 bits of entropy and the digest
must be usable as a unique lookup key.
*/
package refresh

import (
	"crypto/sha256"
	"encoding/hex"

	"boardroom/internal/pkg/randx"
)

// SecretBytes is the amount of random input in a refresh secret.
const SecretBytes = 48

// NewSecret returns a fresh URL-safe refresh secret and its storage digest.
func NewSecret() (secret string, hash string, err error) {
	secret, err = randx.URLSafeToken(SecretBytes)
	if err != nil {
		return "", "", err
	}
	return secret, Hash(secret), nil
}

// Hash returns the lowercase hex SHA-256 digest of secret.
func Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
