package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mileusna/useragent"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/validation"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{&validation.Error{Field: "mood", Message: "Invalid mood value"}, fiber.StatusBadRequest, "Invalid mood value"},
		{fmt.Errorf("wrapped: %w", &validation.Error{Message: "Content is required"}), fiber.StatusBadRequest, "Content is required"},
		{services.ErrEmailTaken, fiber.StatusBadRequest, "An account with this email already exists"},
		{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid email or password"},
		{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
		{fmt.Errorf("update: %w", services.ErrJournalNotFound), fiber.StatusNotFound, "Journal entry not found"},
		{errors.New("connection reset"), fiber.StatusInternalServerError, genericError},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body dto.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if !body.Error || body.Message != tt.message {
				t.Errorf("body = %+v, want message %q", body, tt.message)
			}
		})
	}
}

func TestDeviceType(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "mobile"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "desktop"},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", "bot"},
	}
	for _, tt := range tests {
		if got := deviceType(useragent.Parse(tt.ua)); got != tt.want {
			t.Errorf("deviceType(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
