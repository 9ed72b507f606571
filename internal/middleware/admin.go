package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/session"
)

// CurrentUserKey holds the *models.User loaded by the admin guards.
const CurrentUserKey = "currentUser"

// AdminRequired admits admins and super admins. Roles are read from the
// database on every request so that demotions apply immediately.
func AdminRequired(users repository.UserRepository) fiber.Handler {
	return requireRole(users, func(u *models.User) bool {
		return u.IsAdmin || u.IsSuperAdmin
	}, "Forbidden")
}

// SuperAdminRequired admits only the super admin.
func SuperAdminRequired(users repository.UserRepository) fiber.Handler {
	return requireRole(users, func(u *models.User) bool {
		return u.IsSuperAdmin
	}, "Forbidden - Super Admin access required")
}

func requireRole(users repository.UserRepository, allowed func(*models.User) bool, forbidden string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := session.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if err != nil {
			slog.Error("admin check failed", "error", err, "user_id", userID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		if !allowed(user) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: forbidden,
			})
		}
		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}
