package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

// ExerciseHandler serves guided exercises and learning articles.
type ExerciseHandler struct {
	exerciseService *services.ExerciseService
}

func NewExerciseHandler(exerciseService *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"exercises": h.exerciseService.Exercises(c.Query("difficulty"))})
}

func (h *ExerciseHandler) Recommended(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	rec, err := h.exerciseService.RecommendedExercises(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

func (h *ExerciseHandler) RecordSession(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.ExerciseSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	s, err := h.exerciseService.RecordSession(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "sessionId": s.ID})
}

func (h *ExerciseHandler) Articles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"articles":   h.exerciseService.Articles(c.Query("category")),
		"categories": h.exerciseService.Categories(),
	})
}

func (h *ExerciseHandler) RecommendedArticles(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	rec, err := h.exerciseService.RecommendedArticles(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}
