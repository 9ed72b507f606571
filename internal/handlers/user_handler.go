package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	user, err := h.userService.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MeResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		OnboardingComplete: user.OnboardingComplete,
		IsAdmin:            user.IsAdmin,
		IsSuperAdmin:       user.IsSuperAdmin,
		Preferences:        user.Preferences,
	})
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	user, err := h.userService.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProfileResponse{Name: user.Name, Email: user.Email, Profile: user.Profile})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if _, err := h.userService.UpdateProfile(c.UserContext(), userID, &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *UserHandler) Onboarding(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.userService.CompleteOnboarding(c.UserContext(), userID, req.Completed); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
