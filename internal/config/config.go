package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	// Storage
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MongoURI string
	MongoDB  string

	// Redis backs the token denylist and the rate limiter. Empty means in-process.
	RedisURL string

	// JWT
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieSecure bool

	// Server
	Port        string
	CORSOrigins string

	// Reports
	ReportLocation *time.Location

	// Catalog override, empty uses the embedded catalog.
	CatalogPath string

	MetricsEnabled bool
	SentryDSN      string
	AppEnv         string
	LogLevel       string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	return &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "mindora"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "mindora"),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiry:    parseDuration(getEnv("JWT_EXPIRY", "168h")),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		ReportLocation: parseLocation(getEnv("REPORT_TIMEZONE", "Local")),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		MetricsEnabled: getEnv("METRICS_ENABLED", "true") == "true",
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Validate reports the first missing setting required to serve traffic.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errMissing("JWT_SECRET")
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBPassword == "" {
			return errMissing("DB_PASSWORD")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errMissing("MONGO_URI")
		}
	case DriverMemory:
	default:
		return &Error{Key: "DB_DRIVER", Reason: "unsupported driver " + c.DBDriver}
	}
	return nil
}

// Error describes an invalid or missing configuration key.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return e.Key + ": " + e.Reason
}

func errMissing(key string) error {
	return &Error{Key: key, Reason: "environment variable is required"}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

func parseLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown REPORT_TIMEZONE, falling back to local time", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}
