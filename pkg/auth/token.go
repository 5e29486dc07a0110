// Package auth resolves the caller identity of inbound requests through a
// fixed precedence chain over signed tokens, the session store, and share
// tokens, and issues new session-backed credentials.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec creates and verifies compact signed tokens carrying an
// opaque payload, using a shared HS256 secret.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec over the shared application secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Sign wraps payload in a signed token.
func (c *TokenCodec) Sign(payload map[string]any) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(payload))
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes a token and returns its payload. A missing, expired,
// tampered, or otherwise invalid token yields an empty payload, never an
// error: absence is a first-class value in the precedence chain.
func (c *TokenCodec) Verify(tokenString string) map[string]any {
	if tokenString == "" {
		return map[string]any{}
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return map[string]any{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return map[string]any{}
	}
	return map[string]any(claims)
}
