package middleware

import (
	"context"
	"log/slog"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/session"
)

// AuthCookie carries the session token for browser clients.
const AuthCookie = "auth-token"

// JWTProtected accepts a bearer token or the auth cookie.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey:  session.LocalsKey,
		TokenLookup: "header:Authorization,cookie:" + AuthCookie,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// RevocationChecker reports whether a token id was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RejectRevoked must run after JWTProtected. Tokens without a jti cannot be
// revoked and pass through.
func RejectRevoked(checker RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := session.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if claims.TokenID == "" {
			return c.Next()
		}

		revoked, err := checker.IsRevoked(c.UserContext(), claims.TokenID)
		if err != nil {
			// Fail closed.
			slog.Error("denylist lookup failed", "error", err, "path", c.Path())
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Service temporarily unavailable",
			})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: token has been revoked",
			})
		}
		return c.Next()
	}
}
