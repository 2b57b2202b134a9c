package jwt

import "github.com/golang-jwt/jwt"

// Claims is the payload of an access token.
//
// Subject, IssuedAt and ExpiresAt come from the embedded standard claims and are encoded
// as the top-level "sub", "iat" and "exp" fields.
type Claims struct {
	jwt.StandardClaims

	// Role is the role tag of the subject at issuance ("USER" or "ADMIN").
	Role string `json:"role"`
}
