package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdminUsersResponse{Users: users})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	var req dto.DeleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.adminService.DeleteUser(c.UserContext(), &req); err != nil {
		if errors.Is(err, services.ErrProtectedAccount) {
			return fail(c, fiber.StatusForbidden, "Cannot delete Super Admin")
		}
		return respondError(c, err)
	}
	h.audit(c, "user deleted", req.UserID)
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.adminService.ChangePassword(c.UserContext(), &req); err != nil {
		if errors.Is(err, services.ErrProtectedAccount) {
			return fail(c, fiber.StatusForbidden, "Cannot change Super Admin password")
		}
		return respondError(c, err)
	}
	h.audit(c, "user password changed", req.UserID)
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	id, err := h.adminService.CreateAdmin(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return fail(c, fiber.StatusBadRequest, "Email already in use")
		}
		return respondError(c, err)
	}
	h.audit(c, "admin created", id)
	return c.JSON(fiber.Map{"success": true, "adminId": id})
}

func (h *AdminHandler) Export(c *fiber.Ctx) error {
	doc, err := h.adminService.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc)
}

func (h *AdminHandler) audit(c *fiber.Ctx, action, targetID string) {
	actor, _ := session.UserID(c)
	slog.Info(action, "user_id", actor, "target_id", targetID, "request_id", c.Locals("requestid"))
}
