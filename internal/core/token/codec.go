// Package token implements the signed session-token codec. A single Codec
// instance owns the server-held HS256 secret and the configured lifetime, so
// tests can run isolated instances with distinct secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tivit/users-api/internal/core/domain"
)

var ErrBadSignature = errors.New("token signature invalid")
var ErrExpired = errors.New("token expired")
var ErrMalformed = errors.New("token malformed")

const defaultTTL = 30 * time.Minute

// Claims is the payload embedded in every issued token. The role claim is
// frozen at issuance time; a role change requires a fresh login.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed, time-bound tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to the 30-minute default.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue builds claims for the user and returns the signed token string.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token string and returns the
// embedded claims. Claims from a failed Decode must never be trusted.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}

// TTL reports the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
