package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
)

const (
	adminID = "0b0c6bb7-1f4c-4c48-9a5e-2cc0f2f5c001"
	userID  = "0b0c6bb7-1f4c-4c48-9a5e-2cc0f2f5c002"
)

var testCfg = &config.Config{JWTSecret: "test-secret"}

func sign(t *testing.T, sub, jti string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"jti": jti,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testCfg.JWTSecret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, id string) (bool, error) { return r[id], nil }

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()
	for _, u := range []models.User{
		{ID: adminID, Email: "admin@example.com", IsAdmin: true},
		{ID: userID, Email: "user@example.com"},
	} {
		u := u
		if err := store.Users.Create(ctx, &u); err != nil {
			t.Fatal(err)
		}
	}

	app := fiber.New()
	api := app.Group("/api", JWTProtected(testCfg), RejectRevoked(revokedSet{"gone": true}))
	api.Get("/me", func(c *fiber.Ctx) error { return c.SendString("ok") })
	api.Get("/admin", AdminRequired(store.Users), func(c *fiber.Ctx) error { return c.SendString("admin") })
	api.Get("/super", SuperAdminRequired(store.Users), func(c *fiber.Ctx) error { return c.SendString("super") })
	return app
}

func TestAuthGuards(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		path   string
		bearer string
		cookie string
		want   int
	}{
		{"no token", "/api/me", "", "", fiber.StatusUnauthorized},
		{"bearer", "/api/me", sign(t, userID, "a"), "", fiber.StatusOK},
		{"cookie", "/api/me", "", sign(t, userID, "b"), fiber.StatusOK},
		{"revoked", "/api/me", sign(t, userID, "gone"), "", fiber.StatusUnauthorized},
		{"bad subject", "/api/me", sign(t, "not-a-uuid", "c"), "", fiber.StatusUnauthorized},
		{"user on admin route", "/api/admin", sign(t, userID, "d"), "", fiber.StatusForbidden},
		{"admin on admin route", "/api/admin", sign(t, adminID, "e"), "", fiber.StatusOK},
		{"admin on super route", "/api/super", sign(t, adminID, "f"), "", fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", AuthCookie+"="+tt.cookie)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestAuthHeaderNeedsBearerScheme(t *testing.T) {
	app := newApp(t)
	tok := sign(t, userID, "scheme")

	for header, want := range map[string]int{
		"Bearer " + tok: fiber.StatusOK,
		"bearer " + tok: fiber.StatusOK,
		tok:             fiber.StatusUnauthorized,
	} {
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != want {
			t.Errorf("Authorization %.10q... status = %d, want %d", header, resp.StatusCode, want)
		}
	}
}
