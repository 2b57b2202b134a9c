package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardroom/internal/pkg/clock"
)

var epoch = time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)

func newTestIssuer(t *testing.T, secret string, clk clock.Clock) *Issuer {
	t.Helper()
	iss, err := NewIssuer(secret, 15*time.Minute, clk)
	require.NoError(t, err)
	return iss
}

func TestMintAndVerify(t *testing.T) {
	clk := clock.NewFake(epoch)
	iss := newTestIssuer(t, "test-secret", clk)

	token, exp, err := iss.Mint("user-1", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(15*time.Minute), exp)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, epoch.Unix(), claims.IssuedAt)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt)
}

func TestVerifyRejections(t *testing.T) {
	clk := clock.NewFake(epoch)
	iss := newTestIssuer(t, "test-secret", clk)
	other := newTestIssuer(t, "other-secret", clk)

	foreign, _, err := other.Mint("user-1", "USER")
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: epoch.Add(time.Hour).Unix()},
		Role:           "USER",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: epoch.Add(time.Hour).Unix()},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"different secret", foreign},
		{"missing subject", noSubject},
		{"missing expiry", noExpiry},
		{"other algorithm", hs512},
		{"garbage", "invalid.token.here"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := iss.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	clk := clock.NewFake(epoch)
	iss := newTestIssuer(t, "test-secret", clk)

	token, _, err := iss.Mint("user-1", "USER")
	require.NoError(t, err)

	clk.Advance(15*time.Minute + time.Second)

	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerValidation(t *testing.T) {
	_, err := NewIssuer("", time.Minute, nil)
	assert.Error(t, err)

	_, err = NewIssuer("secret", 0, nil)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"missing", "", "", false},
		{"basic scheme", "Basic dXNlcjpwdw==", "", false},
		{"empty token", "Bearer   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := BearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
