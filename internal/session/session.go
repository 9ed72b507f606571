// Package session reads the authenticated caller from the JWT that the auth
// middleware stores in the Fiber context.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalsKey is where the JWT middleware stores the parsed *jwt.Token.
const LocalsKey = "user"

var ErrNoSession = errors.New("no authenticated session")

// Claims is the subset of token claims the API relies on.
type Claims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// FromContext extracts the caller's claims. The subject must be a UUID.
func FromContext(c *fiber.Ctx) (*Claims, error) {
	token, ok := c.Locals(LocalsKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	if _, err := uuid.Parse(sub); err != nil {
		return nil, errors.New("malformed sub claim")
	}

	out := &Claims{UserID: sub}
	out.Email, _ = claims["email"].(string)
	out.TokenID, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// UserID returns the caller's user id.
func UserID(c *fiber.Ctx) (string, error) {
	claims, err := FromContext(c)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
