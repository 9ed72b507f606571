package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/metrics"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/validation"
)

const genericError = "Something went wrong"

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "Unauthorized")
}

func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Invalid request body")
}

// respondError maps service errors to a status and a client-facing message.
// Anything unrecognised is logged and answered with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusBadRequest, "An account with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrSuperAdminExists):
		return fail(c, fiber.StatusBadRequest, "Super admin already exists")
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrJournalNotFound):
		return fail(c, fiber.StatusNotFound, "Journal entry not found")
	case errors.Is(err, services.ErrExerciseNotFound):
		return fail(c, fiber.StatusNotFound, "Exercise not found")
	case errors.Is(err, services.ErrProtectedAccount):
		return fail(c, fiber.StatusForbidden, "Cannot modify a Super Admin account")
	}

	metrics.TrackError("internal")
	slog.Error("request failed",
		"error", err,
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
	)
	return fail(c, fiber.StatusInternalServerError, genericError)
}
