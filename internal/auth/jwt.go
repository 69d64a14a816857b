// Package auth validates bearer credentials and resolves them to user IDs.
// Token issuance lives with the identity service; this package only needs
// the shared secret to verify signatures (and to mint development tokens).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, expired, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenValidator resolves a bearer token to a stable user identifier.
type TokenValidator interface {
	// Validate returns the user ID carried by a valid token, or
	// ErrInvalidToken.
	Validate(token string) (string, error)
}

// claims is the internal claims type used for JWT parsing.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// JWTValidator validates HS256-signed tokens carrying a userId claim.
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a validator for tokens signed with secret.
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// Validate parses and verifies a token, returning its user ID.
func (v *JWTValidator) Validate(token string) (string, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", ErrInvalidToken
	}

	if parsed.UserID == "" {
		return "", ErrInvalidToken
	}

	return parsed.UserID, nil
}

// Generate mints a signed token for userID, valid for ttl.
// Used by the development test-token endpoint.
func (v *JWTValidator) Generate(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}

// Compile-time verification that JWTValidator implements TokenValidator.
var _ TokenValidator = (*JWTValidator)(nil)
