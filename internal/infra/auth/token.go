// Package auth inspects stored bearer tokens. Tokens are issued and
// verified by the server; the client only reads the claims to recover
// the acting user id and warn about expiry before a request is wasted.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdesk/taskdesk/internal/domain"
)

// Claims are the token claims the client cares about.
type Claims struct {
	UserID int    `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Inspect parses a bearer token without verifying its signature (the
// client does not hold the server's key) and returns its claims.
func Inspect(token string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return &claims, nil
}

// CheckExpiry returns ErrTokenExpired when the token carries an
// expiry in the past. Tokens without an expiry claim pass.
func CheckExpiry(token string, now time.Time) error {
	claims, err := Inspect(token)
	if err != nil {
		return err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return domain.ErrTokenExpired
	}
	return nil
}
