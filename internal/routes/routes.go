package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/handlers"
	"github.com/mindora/wellness/internal/metrics"
	"github.com/mindora/wellness/internal/middleware"
	"github.com/mindora/wellness/internal/repository"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Mood     *handlers.MoodHandler
	Journal  *handlers.JournalHandler
	Exercise *handlers.ExerciseHandler
	User     *handlers.UserHandler
	Report   *handlers.ReportHandler
	Admin    *handlers.AdminHandler
}

// Options carries what the route guards need besides the handlers.
type Options struct {
	Config      *config.Config
	Users       repository.UserRepository
	Revocations middleware.RevocationChecker
	// LimiterStorage shares rate-limit counters between instances. Nil keeps
	// them in process memory.
	LimiterStorage fiber.Storage
}

func Setup(app *fiber.App, opts Options, h Handlers) {
	cfg := opts.Config

	if cfg.MetricsEnabled {
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(rateLimit(60, opts.LimiterStorage))

	api.Get("/health", h.Health.Check)

	protected := []fiber.Handler{
		middleware.JWTProtected(cfg),
		middleware.RejectRevoked(opts.Revocations),
	}

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth", rateLimit(10, opts.LimiterStorage))
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/check-super-admin", h.Auth.CheckSuperAdmin)
	auth.Post("/setup-super-admin", h.Auth.SetupSuperAdmin)
	auth.Post("/logout", append(protected, h.Auth.Logout)...)

	mood := api.Group("/mood", protected...)
	mood.Post("/", h.Mood.Create)
	mood.Get("/", h.Mood.List)

	journal := api.Group("/journal", protected...)
	journal.Post("/", h.Journal.Create)
	journal.Get("/", h.Journal.List)
	journal.Put("/:id", h.Journal.Update)
	journal.Delete("/:id", h.Journal.Delete)

	exercises := api.Group("/exercises", protected...)
	exercises.Get("/", h.Exercise.List)
	exercises.Get("/recommended", h.Exercise.Recommended)
	exercises.Post("/session", h.Exercise.RecordSession)

	articles := api.Group("/articles", protected...)
	articles.Get("/", h.Exercise.Articles)
	articles.Get("/recommended", h.Exercise.RecommendedArticles)

	user := api.Group("/user", protected...)
	user.Get("/me", h.User.Me)
	user.Get("/profile", h.User.Profile)
	user.Put("/profile", h.User.UpdateProfile)
	user.Post("/onboarding", h.User.Onboarding)
	user.Get("/analytics", h.Report.Analytics)
	user.Get("/report", h.Report.Workbook)
	user.Get("/report/pdf", h.Report.Summary)
	user.Get("/report/excel", h.Report.SummaryCSV)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", append(protected, middleware.AdminRequired(opts.Users))...)
	admin.Get("/users", h.Admin.Users)
	admin.Get("/stats", h.Admin.Stats)

	superAdmin := middleware.SuperAdminRequired(opts.Users)
	admin.Delete("/users", superAdmin, h.Admin.DeleteUser)
	admin.Post("/users/password", superAdmin, h.Admin.ChangePassword)
	admin.Post("/create-admin", superAdmin, h.Admin.CreateAdmin)
	admin.Get("/export", superAdmin, h.Admin.Export)
}

func rateLimit(max int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Storage:           storage,
	})
}
