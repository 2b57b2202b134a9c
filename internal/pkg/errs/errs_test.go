package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorUsesTemplate(t *testing.T) {
	err := NewError(ErrUnauthenticated)

	assert.Equal(t, ErrUnauthenticated, err.Code)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "Invalid credentials.", err.Message)
}

func TestNewErrorFormatsDetails(t *testing.T) {
	err := NewError(ErrInvalidPassword, 1, 72)

	assert.Equal(t, "Password must be between 1 and 72 bytes.", err.Message)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(987654)

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorHidesUnderlyingCause(t *testing.T) {
	err := NewError(ErrUnknown, errors.New("pq: connection refused"))

	assert.NotContains(t, err.Message, "connection refused")
}

func TestEveryTemplateHasStatus(t *testing.T) {
	for code, tmpl := range errorMap {
		assert.NotZero(t, tmpl.Status, "code %d", code)
		assert.Equal(t, code, tmpl.Code)
	}
}
