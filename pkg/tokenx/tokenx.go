// Package tokenx signs and verifies the compact session tokens that prove a
// user's identity to the server. Tokens are HS256 JWTs signed with a single
// process-wide secret; once issued they stay valid until their expiry, there
// is no revocation list.
package tokenx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when the caller doesn't care.
const DefaultTTL = 24 * time.Hour

var (
	ErrMalformed    = errors.New("tokenx: malformed token")
	ErrBadSignature = errors.New("tokenx: invalid signature")
	ErrExpired      = errors.New("tokenx: token expired")
)

// Principal is the identity and role a verified token proves. It is derived
// fresh from the token on every request and never persisted.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // "USER" or "ADMIN"
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == "ADMIN" }

// Claims is the JWT payload. Identity fields ride alongside the registered
// iat/exp claims; the subject is the user id.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Codec issues and verifies tokens under one shared secret. It holds no
// mutable state; the clock is injectable so expiry behaviour is testable.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec returns a Codec using the wall clock.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, now: time.Now}
}

// NewCodecAt returns a Codec with a custom clock. Tests use this to
// fast-forward past a token's expiry.
func NewCodecAt(secret []byte, now func() time.Time) *Codec {
	return &Codec{secret: secret, now: now}
}

// Issue serialises the principal plus issued-at and expiry into a signed
// token string. Pure function of principal + secret + clock.
func (c *Codec) Issue(p Principal, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token, returning the embedded principal.
// Verification is all-or-nothing: any failure maps to exactly one of
// ErrMalformed, ErrBadSignature or ErrExpired.
func (c *Codec) Verify(token string) (Principal, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Principal{}, mapParseError(err)
	}

	return Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// Unexpected alg or unusable key material counts as a bad signature;
		// the caller must not learn more than "not yours".
		return ErrBadSignature
	default:
		return ErrMalformed
	}
}
