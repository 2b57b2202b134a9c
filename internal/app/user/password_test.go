package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, h.Verify(hash, "s3cret"))
	assert.False(t, h.Verify(hash, "S3cret"))
	assert.False(t, h.Verify("not-a-hash", "s3cret"))
}

func TestBcryptHasher_Length(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = h.Hash(strings.Repeat("x", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = h.Hash(strings.Repeat("x", MaxPasswordBytes))
	assert.NoError(t, err)
}
