// Package jwt mints and verifies the signed, short-lived access tokens of the session protocol.
package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"boardroom/internal/pkg/clock"
)

// Algorithm is the only accepted signing algorithm.
const Algorithm = "HS256"

// ErrInvalidToken covers every verification failure: bad signature, wrong algorithm,
// malformed payload, missing subject or an expiry in the past.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer signs and verifies access tokens with a shared HMAC secret.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	clock    clock.Clock
	parser   *jwt.Parser
}

// NewIssuer returns an Issuer. An empty secret or a non-positive lifetime is rejected.
func NewIssuer(secret string, lifetime time.Duration, clk clock.Clock) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("jwt: access lifetime must be positive, got %s", lifetime)
	}
	if clk == nil {
		clk = clock.Real{}
	}

	return &Issuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		clock:    clk,
		// Time-based claims are checked against the injected clock in Verify.
		parser: &jwt.Parser{
			ValidMethods:         []string{Algorithm},
			SkipClaimsValidation: true,
		},
	}, nil
}

// Lifetime returns the configured access-token lifetime.
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

// Mint signs a token for subject with the given role, valid from now for the configured lifetime.
func (i *Issuer) Mint(subject, role string) (string, time.Time, error) {
	now := i.clock.Now()
	expiresAt := now.Add(i.lifetime)

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks the signature and algorithm of tokenString, then its expiry and subject.
// Any failure is reported as ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := i.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyExpiresAt(i.clock.Now().Unix(), true) {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", false
	}

	return tokenString, true
}
