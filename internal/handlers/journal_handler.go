package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

type JournalHandler struct {
	journalService *services.JournalService
}

func NewJournalHandler(journalService *services.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

func (h *JournalHandler) Create(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.CreateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	entry, err := h.journalService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: entry.ID})
}

func (h *JournalHandler) List(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	entries, err := h.journalService.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.JournalListResponse{Entries: entries})
}

func (h *JournalHandler) Update(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.UpdateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if _, err := h.journalService.Update(c.UserContext(), userID, c.Params("id"), &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *JournalHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.journalService.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
