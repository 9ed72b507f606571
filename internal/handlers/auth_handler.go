package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mileusna/useragent"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/metrics"
	"github.com/mindora/wellness/internal/middleware"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, token, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		metrics.TrackAuthAttempt("failure", "signup")
		return respondError(c, err)
	}
	metrics.TrackAuthAttempt("success", "signup")

	h.setAuthCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(authResponse(user, token))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, token, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		metrics.TrackAuthAttempt("failure", "login")
		return respondError(c, err)
	}
	metrics.TrackAuthAttempt("success", "login")

	ua := useragent.Parse(c.Get(fiber.HeaderUserAgent))
	slog.Info("user logged in",
		"user_id", user.ID,
		"browser", ua.Name,
		"os", ua.OS,
		"device", deviceType(ua),
	)

	h.setAuthCookie(c, token)
	return c.JSON(authResponse(user, token))
}

// Logout denylists the presented token until it would have expired and
// clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := session.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	if claims.TokenID != "" {
		if err := h.authService.Logout(c.UserContext(), claims.TokenID, claims.ExpiresAt); err != nil {
			return respondError(c, err)
		}
	}

	c.ClearCookie(middleware.AuthCookie)
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) CheckSuperAdmin(c *fiber.Ctx) error {
	exists, err := h.authService.HasSuperAdmin(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuperAdminExistsResponse{Exists: exists})
}

func (h *AuthHandler) SetupSuperAdmin(c *fiber.Ctx) error {
	var req dto.SetupSuperAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if _, err := h.authService.SetupSuperAdmin(c.UserContext(), &req); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return fail(c, fiber.StatusBadRequest, "Email already registered")
		}
		return respondError(c, err)
	}
	slog.Info("super admin created")
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWTExpiry),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func authResponse(user *models.User, token string) dto.AuthResponse {
	return dto.AuthResponse{
		Success: true,
		User:    dto.UserSummary{ID: user.ID, Email: user.Email, Name: user.Name},
		Token:   token,
	}
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Tablet:
		return "tablet"
	case ua.Mobile:
		return "mobile"
	case ua.Desktop:
		return "desktop"
	}
	return "unknown"
}
