package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/cache"
	"github.com/mindora/wellness/internal/catalog"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/handlers"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	store := repository.NewMemoryStore()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}

	authService := services.NewAuthService(store.Users, cache.NewMemoryDenylist(), cfg)
	app := fiber.New()
	Setup(app, Options{Config: cfg, Users: store.Users, Revocations: authService}, Handlers{
		Auth:     handlers.NewAuthHandler(authService, cfg),
		Health:   handlers.NewHealthHandler(store, nil),
		Mood:     handlers.NewMoodHandler(services.NewMoodService(store.Moods)),
		Journal:  handlers.NewJournalHandler(services.NewJournalService(store.Journals)),
		Exercise: handlers.NewExerciseHandler(services.NewExerciseService(cat, store.Exercises, store.Moods)),
		User:     handlers.NewUserHandler(services.NewUserService(store.Users)),
		Report:   handlers.NewReportHandler(services.NewReportService(store, time.UTC)),
		Admin:    handlers.NewAdminHandler(services.NewAdminService(store, authService)),
	})
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path, body string) (*http.Response, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func (c *client) expect(method, path, body string, status int) []byte {
	c.t.Helper()
	resp, data := c.do(method, path, body)
	if resp.StatusCode != status {
		c.t.Fatalf("%s %s = %d, want %d: %s", method, path, resp.StatusCode, status, data)
	}
	return data
}

func (c *client) login(email, password string) {
	c.t.Helper()
	data := c.expect("POST", "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, fiber.StatusOK)
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Token == "" {
		c.t.Fatalf("login response %s", data)
	}
	c.token = out.Token
}

func TestUserFlow(t *testing.T) {
	c := &client{t: t, app: newTestApp(t)}

	c.expect("GET", "/api/health", "", fiber.StatusOK)
	c.expect("GET", "/api/mood", "", fiber.StatusUnauthorized)

	resp, data := c.do("POST", "/api/auth/signup", `{"email":"Jane@Example.com","password":"Secret123","name":"Jane Doe"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup = %d: %s", resp.StatusCode, data)
	}
	if !strings.Contains(resp.Header.Get("Set-Cookie"), "auth-token=") {
		t.Errorf("signup did not set the auth cookie")
	}
	if !strings.Contains(string(data), `"email":"jane@example.com"`) {
		t.Errorf("signup body = %s", data)
	}

	data = c.expect("POST", "/api/auth/signup", `{"email":"jane@example.com","password":"Secret123","name":"Jane"}`, fiber.StatusBadRequest)
	if !strings.Contains(string(data), "An account with this email already exists") {
		t.Errorf("duplicate signup body = %s", data)
	}

	data = c.expect("POST", "/api/auth/login", `{"email":"jane@example.com","password":"Nope1234"}`, fiber.StatusUnauthorized)
	if !strings.Contains(string(data), "Invalid email or password") {
		t.Errorf("bad login body = %s", data)
	}

	c.login("jane@example.com", "Secret123")

	data = c.expect("POST", "/api/mood", `{"mood":9}`, fiber.StatusBadRequest)
	if !strings.Contains(string(data), "Invalid mood value") {
		t.Errorf("invalid mood body = %s", data)
	}
	c.expect("POST", "/api/mood", `{"mood":4,"note":"calm","triggers":["work"]}`, fiber.StatusCreated)
	c.expect("POST", "/api/mood", `{"mood":2}`, fiber.StatusCreated)

	data = c.expect("GET", "/api/mood", "", fiber.StatusOK)
	var moods struct {
		Moods []struct {
			Mood int `json:"mood"`
		} `json:"moods"`
	}
	if err := json.Unmarshal(data, &moods); err != nil || len(moods.Moods) != 2 {
		t.Fatalf("moods = %s", data)
	}

	data = c.expect("POST", "/api/journal", `{"content":""}`, fiber.StatusBadRequest)
	if !strings.Contains(string(data), "Content is required") {
		t.Errorf("empty journal body = %s", data)
	}
	data = c.expect("POST", "/api/journal", `{"content":"first entry","title":"Day one"}`, fiber.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(data, &created)
	c.expect("PUT", "/api/journal/"+created.ID, `{"content":"edited"}`, fiber.StatusOK)
	c.expect("PUT", "/api/journal/missing", `{"content":"edited"}`, fiber.StatusNotFound)

	data = c.expect("POST", "/api/exercises/session", `{}`, fiber.StatusBadRequest)
	if !strings.Contains(string(data), "Exercise ID is required") {
		t.Errorf("session body = %s", data)
	}
	c.expect("POST", "/api/exercises/session", `{"exerciseId":"box-breathing"}`, fiber.StatusCreated)
	c.expect("GET", "/api/exercises/recommended", "", fiber.StatusOK)
	c.expect("GET", "/api/articles?category=Sleep", "", fiber.StatusOK)

	data = c.expect("GET", "/api/user/analytics?range=week", "", fiber.StatusOK)
	if !strings.Contains(string(data), `"avgMood":"3.0"`) || !strings.Contains(string(data), `"totalEntries":2`) {
		t.Errorf("analytics = %s", data)
	}
	data = c.expect("GET", "/api/user/analytics?range=WEEK", "", fiber.StatusOK)
	if !strings.Contains(string(data), `"range":"WEEK"`) {
		t.Errorf("unknown range should be echoed as given: %s", data)
	}

	resp, data = c.do("GET", "/api/user/report/excel", "")
	if resp.StatusCode != fiber.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv") {
		t.Fatalf("csv report = %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "attachment") {
		t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
	}
	if strings.Contains(string(data), "jane@example.com") {
		t.Error("csv report includes personal data by default")
	}

	resp, _ = c.do("GET", "/api/user/report", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(resp.Header.Get("Content-Disposition"), "Wellness_Report_Jane_Doe_week_") {
		t.Errorf("workbook = %d %q", resp.StatusCode, resp.Header.Get("Content-Disposition"))
	}

	c.expect("GET", "/api/admin/users", "", fiber.StatusForbidden)

	c.expect("POST", "/api/auth/logout", "", fiber.StatusOK)
	c.expect("GET", "/api/user/me", "", fiber.StatusUnauthorized)
}

func TestSuperAdminFlow(t *testing.T) {
	c := &client{t: t, app: newTestApp(t)}

	data := c.expect("GET", "/api/auth/check-super-admin", "", fiber.StatusOK)
	if string(data) != `{"exists":false}` {
		t.Errorf("check-super-admin = %s", data)
	}
	c.expect("POST", "/api/auth/setup-super-admin", `{"email":"root@example.com","password":"Secret123"}`, fiber.StatusOK)
	data = c.expect("POST", "/api/auth/setup-super-admin", `{"email":"two@example.com","password":"Secret123"}`, fiber.StatusBadRequest)
	if !strings.Contains(string(data), "Super admin already exists") {
		t.Errorf("second setup body = %s", data)
	}

	c.expect("POST", "/api/auth/signup", `{"email":"user@example.com","password":"Secret123","name":"Plain User"}`, fiber.StatusCreated)

	c.login("root@example.com", "Secret123")
	data = c.expect("GET", "/api/admin/users", "", fiber.StatusOK)
	var users struct {
		Users []struct {
			ID           string `json:"id"`
			Email        string `json:"email"`
			IsSuperAdmin bool   `json:"isSuperAdmin"`
		} `json:"users"`
	}
	if err := json.Unmarshal(data, &users); err != nil || len(users.Users) != 2 {
		t.Fatalf("users = %s", data)
	}
	var rootID, userID string
	for _, u := range users.Users {
		if u.IsSuperAdmin {
			rootID = u.ID
		} else {
			userID = u.ID
		}
	}

	data = c.expect("POST", "/api/admin/users/password", `{"userId":"`+rootID+`","newPassword":"Another123"}`, fiber.StatusForbidden)
	if !strings.Contains(string(data), "Cannot change Super Admin password") {
		t.Errorf("protected password body = %s", data)
	}
	c.expect("POST", "/api/admin/users/password", `{"userId":"`+userID+`","newPassword":"Another123"}`, fiber.StatusOK)

	data = c.expect("POST", "/api/admin/create-admin", `{"name":"Ops","email":"ops@example.com","password":"Secret123"}`, fiber.StatusOK)
	if !strings.Contains(string(data), `"adminId"`) {
		t.Errorf("create-admin body = %s", data)
	}
	data = c.expect("GET", "/api/admin/stats", "", fiber.StatusOK)
	if !strings.Contains(string(data), `"totalUsers":3`) {
		t.Errorf("stats = %s", data)
	}

	resp, _ := c.do("GET", "/api/admin/export", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(resp.Header.Get("Content-Disposition"), "wellness-data-") {
		t.Errorf("export = %d %q", resp.StatusCode, resp.Header.Get("Content-Disposition"))
	}

	c.expect("DELETE", "/api/admin/users", `{"userId":"`+userID+`"}`, fiber.StatusOK)

	c.login("ops@example.com", "Secret123")
	c.expect("GET", "/api/admin/stats", "", fiber.StatusOK)
	c.expect("GET", "/api/admin/export", "", fiber.StatusForbidden)
}
