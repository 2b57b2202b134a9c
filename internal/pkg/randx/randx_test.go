package randx

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLSafeToken(t *testing.T) {
	a, err := URLSafeToken(48)
	require.NoError(t, err)
	b, err := URLSafeToken(48)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)

	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 48)
}

func TestURLSafeTokenRejectsNonPositiveLength(t *testing.T) {
	_, err := URLSafeToken(0)
	assert.Error(t, err)
}

func TestID(t *testing.T) {
	id := ID()
	assert.True(t, IsValidID(id))
	assert.NotEqual(t, id, ID())
	assert.False(t, IsValidID("guest_123"))
}
