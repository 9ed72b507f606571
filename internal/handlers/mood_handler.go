package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

type MoodHandler struct {
	moodService *services.MoodService
}

func NewMoodHandler(moodService *services.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

func (h *MoodHandler) Create(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.CreateMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	entry, err := h.moodService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: entry.ID})
}

func (h *MoodHandler) List(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	moods, err := h.moodService.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MoodListResponse{Moods: moods})
}
