package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	SecretKey     string
	JWTExpiry     time.Duration
	SessionExpiry time.Duration
	CookieSecure  bool

	// Image generation
	GenerationProvider string // "vertex" or "gemini"
	GCPProjectID       string
	GCPLocation        string
	GeminiAPIKey       string
	ImageModel         string // prompt-only generation
	ReferenceModel     string // generation conditioned on a reference image
	GenerationTimeout  time.Duration

	// Uploads
	MaxPlanSize int64

	// Observability (optional)
	SentryDSN string

	// Storage (local directory or S3-compatible bucket)
	StorageDriver          string // "local" or "s3"
	StaticDir              string // local root, renderings live under <StaticDir>/renderings
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPublic  time.Duration // Expiry for rendering URLs - default: 7 days
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Architect 3D Home Modeler"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/architect.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		SecretKey:     envRequired("SECRET_KEY"),
		JWTExpiry:     envDuration("JWT_EXPIRY", 168*time.Hour),      // 7 days
		SessionExpiry: envDuration("SESSION_EXPIRY", 30*24*time.Hour), // 30 days
		CookieSecure:  envBool("COOKIE_SECURE", envString("APP_ENV", "development") == "production"),

		// Image generation (validated on every generation attempt)
		GenerationProvider: envString("GENERATION_PROVIDER", "vertex"),
		GCPProjectID:       envString("GCP_PROJECT_ID", ""),
		GCPLocation:        envString("GCP_LOCATION", "us-central1"),
		GeminiAPIKey:       envString("GEMINI_API_KEY", ""),
		ImageModel:         envString("IMAGE_MODEL", "imagen-3.0-generate-002"),
		ReferenceModel:     envString("REFERENCE_MODEL", "gemini-2.5-flash-image"),
		GenerationTimeout:  envDuration("GENERATION_TIMEOUT", 0), // 0 = inherit the service's own timeout

		// Uploads
		MaxPlanSize: envInt64("MAX_PLAN_SIZE", 10<<20),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver:         envString("STORAGE_DRIVER", "local"),
		StaticDir:             envString("STATIC_DIR", "./static"),
		S3Region:              envString("S3_REGION", ""),
		S3Bucket:              envString("S3_BUCKET", ""),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic: envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
	}

	if cfg.StorageDriver == "s3" {
		validateS3(cfg)
	}

	return cfg
}

// validateS3 ensures the bucket settings are present when S3 storage is selected.
func validateS3(cfg *Config) {
	missing := cfg.MissingS3Settings()
	if len(missing) > 0 {
		slog.Error("s3 storage requires bucket settings", "missing", missing,
			"hint", "set STORAGE_DRIVER=local to keep renderings on disk")
		os.Exit(1)
	}
}

// MissingS3Settings lists the env keys the S3 driver needs but that are empty.
func (c *Config) MissingS3Settings() []string {
	var missing []string
	if c.S3Region == "" {
		missing = append(missing, "S3_REGION")
	}
	if c.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if c.S3AccessKey == "" {
		missing = append(missing, "S3_ACCESS_KEY")
	}
	if c.S3SecretKey == "" {
		missing = append(missing, "S3_SECRET_KEY")
	}
	return missing
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,

		CookieSecure: c.CookieSecure,
		MaxPlanSize:  c.MaxPlanSize,

		StorageDriver: c.StorageDriver,
		S3Endpoint:    c.S3Endpoint, // Needed for CSP policies
		S3Bucket:      c.S3Bucket,
		S3Region:      c.S3Region,
	}
}
