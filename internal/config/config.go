// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, storage selection, rate limiting, staff authentication, the
// notification mail relay, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable with STORE_DRIVER.
const (
	StoreSQL  = "sql"
	StoreFile = "file"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// StoreConfig selects where contacts are kept.
type StoreConfig struct {
	Driver      string // STORE_DRIVER: sql|file
	DBDriver    string // DB_DRIVER: sqlite|postgres (sql only)
	DBPath      string // DB_PATH, SQLite file
	DatabaseURL string // DATABASE_URL, Postgres DSN
	DataDir     string // DATA_DIR, directory of contacts.json (file only)
}

// AuthConfig verifies staff bearer tokens.
type AuthConfig struct {
	JWTSecret string // JWT_SECRET; empty keeps staff routes closed
	JWTIssuer string // JWT_ISSUER; optional
}

// MailConfig is the SMTP relay used for new-contact notifications. An empty
// Host disables mail and notifications are only logged.
type MailConfig struct {
	Host    string        // EMAIL_HOST
	Port    int           // EMAIL_PORT, 465 means implicit TLS
	User    string        // EMAIL_USER, also the default recipient
	Pass    string        // EMAIL_PASS
	From    string        // EMAIL_FROM
	To      []string      // EMAIL_TO, comma separated
	Timeout time.Duration // NOTIFY_TIMEOUT per delivery
}

// Enabled reports whether an SMTP host is configured.
func (m MailConfig) Enabled() bool { return m.Host != "" }

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int64
	GinMode           string // debug|release|test
	Environment       string // APP_ENV, reported by /health

	// Logging / Docs
	LogLevel       string
	LogPretty      bool
	SwaggerEnabled bool
	APIBasePath    string

	Store StoreConfig

	// Rate limiting: RateLimitMax requests per RateLimitWindow per client.
	RateLimitMax    int
	RateLimitWindow time.Duration

	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency-Key records for public submissions.
	IdempotencyTTL        time.Duration
	IdempotencyPurgeEvery time.Duration

	Auth AuthConfig
	Mail MailConfig
	OTEL OTELConfig
}

// defaultOrigins mirrors the local front-end ports used in development.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
	"http://localhost:8081",
	"http://localhost:8082",
	"http://localhost:8083",
	"http://localhost:8084",
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "5001"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getdur("SHUTDOWN_TIMEOUT", 20*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		MaxBodyBytes:      int64(getint("MAX_BODY_BYTES", 1<<20)),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		Environment:       getenv("APP_ENV", "development"),

		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		Store: StoreConfig{
			Driver:      strings.ToLower(getenv("STORE_DRIVER", StoreSQL)),
			DBDriver:    strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			DBPath:      getenv("DB_PATH", "renacod.db"),
			DatabaseURL: getenv("DATABASE_URL", ""),
			DataDir:     getenv("DATA_DIR", "data"),
		},

		RateLimitMax:    getint("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", 15*time.Minute),

		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", getenv("FRONTEND_URL", ""))),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL:        getdur("IDEMPOTENCY_TTL", 24*time.Hour),
		IdempotencyPurgeEvery: getdur("IDEMPOTENCY_PURGE_INTERVAL", time.Hour),

		Auth: AuthConfig{
			JWTSecret: getenv("JWT_SECRET", ""),
			JWTIssuer: getenv("JWT_ISSUER", ""),
		},

		Mail: MailConfig{
			Host:    getenv("EMAIL_HOST", ""),
			Port:    getint("EMAIL_PORT", 587),
			User:    getenv("EMAIL_USER", ""),
			Pass:    getenv("EMAIL_PASS", ""),
			From:    getenv("EMAIL_FROM", ""),
			To:      splitCSV(getenv("EMAIL_TO", "")),
			Timeout: getdur("NOTIFY_TIMEOUT", 15*time.Second),
		},

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "renacod-contact-api"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 && cfg.Environment == "development" {
		cfg.CORS.AllowedOrigins = append([]string(nil), defaultOrigins...)
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}
	if len(cfg.Mail.To) == 0 && cfg.Mail.User != "" {
		cfg.Mail.To = []string{cfg.Mail.User}
	}

	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		return errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 || cfg.MaxBodyBytes <= 0 {
		return errors.New("MAX_HEADER_BYTES and MAX_BODY_BYTES must be > 0")
	}

	switch cfg.Store.Driver {
	case StoreSQL:
		switch cfg.Store.DBDriver {
		case "sqlite":
			if strings.TrimSpace(cfg.Store.DBPath) == "" {
				return errors.New("DB_PATH must not be empty")
			}
		case "postgres":
			if strings.TrimSpace(cfg.Store.DatabaseURL) == "" {
				return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
			}
		default:
			return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.Store.DBDriver)
		}
	case StoreFile:
		if strings.TrimSpace(cfg.Store.DataDir) == "" {
			return errors.New("DATA_DIR must not be empty")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be sql or file, got %q", cfg.Store.Driver)
	}

	if cfg.RateLimitMax < 1 {
		return errors.New("RATE_LIMIT_MAX must be >= 1")
	}
	if cfg.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be > 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 || cfg.IdempotencyPurgeEvery <= 0 {
		return errors.New("IDEMPOTENCY_TTL and IDEMPOTENCY_PURGE_INTERVAL must be > 0")
	}
	if cfg.Mail.Enabled() {
		if cfg.Mail.Port < 1 || cfg.Mail.Port > 65535 {
			return errors.New("EMAIL_PORT must be a valid TCP port")
		}
		if cfg.Mail.From == "" || len(cfg.Mail.To) == 0 {
			return errors.New("EMAIL_FROM (or EMAIL_USER) and a recipient are required when EMAIL_HOST is set")
		}
		if cfg.Mail.Timeout <= 0 {
			return errors.New("NOTIFY_TIMEOUT must be > 0")
		}
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
