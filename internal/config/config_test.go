package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	// No special env needed; defaults are valid.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.APIBasePath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load defaults ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "5001" || cfg.APIBasePath != "/api" || cfg.Environment != "development" {
		t.Fatalf("server defaults unexpected: port=%q base=%q env=%q", cfg.Port, cfg.APIBasePath, cfg.Environment)
	}
	if cfg.Store.Driver != StoreSQL || cfg.Store.DBDriver != "sqlite" || cfg.Store.DBPath != "renacod.db" || cfg.Store.DataDir != "data" {
		t.Fatalf("store defaults unexpected: %+v", cfg.Store)
	}
	if cfg.RateLimitMax != 100 || cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("rate limit defaults unexpected: %d per %v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if len(cfg.CORS.AllowedOrigins) != len(defaultOrigins) || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("development origins expected, got %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Mail.Enabled() || cfg.Mail.Port != 587 {
		t.Fatalf("mail should be disabled by default: %+v", cfg.Mail)
	}
	if cfg.IdempotencyTTL != 24*time.Hour || cfg.IdempotencyPurgeEvery != time.Hour {
		t.Fatalf("idempotency defaults unexpected: ttl=%v purge=%v", cfg.IdempotencyTTL, cfg.IdempotencyPurgeEvery)
	}
	if cfg.OTEL.ServiceName != "renacod-contact-api" {
		t.Fatalf("otel service name default unexpected: %q", cfg.OTEL.ServiceName)
	}
}

func TestLoad_NoDefaultOriginsOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Fatalf("expected no origins in production, got %#v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_FrontendURLFallback(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://renacod.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://renacod.com"}) {
		t.Fatalf("FRONTEND_URL not used: %#v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MailDefaultsFromUser(t *testing.T) {
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_USER", "ops@renacod.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Mail.Enabled() || cfg.Mail.From != "ops@renacod.com" || !reflect.DeepEqual(cfg.Mail.To, []string{"ops@renacod.com"}) {
		t.Fatalf("mail defaults unexpected: %+v", cfg.Mail)
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("MAX_BODY_BYTES", "4096")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"
	t.Setenv("APP_ENV", "staging")

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "v2/") // no leading slash + trailing slash -> "/v2"

	// Storage
	t.Setenv("STORE_DRIVER", "FILE")
	t.Setenv("DATA_DIR", "/var/lib/renacod")

	// Rate limiting (invalid max falls back to the default)
	t.Setenv("RATE_LIMIT_MAX", "x")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("FRONTEND_URL", "https://ignored.example")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// Idempotency
	t.Setenv("IDEMPOTENCY_TTL", "48h")
	t.Setenv("IDEMPOTENCY_PURGE_INTERVAL", "10m")

	// Auth
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "renacod")

	// Mail
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("EMAIL_USER", "bot@renacod.com")
	t.Setenv("EMAIL_FROM", "noreply@renacod.com")
	t.Setenv("EMAIL_TO", "sales@renacod.com, ops@renacod.com")
	t.Setenv("NOTIFY_TIMEOUT", "5s")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.MaxBodyBytes != 4096 ||
		cfg.GinMode != "release" ||
		cfg.Environment != "staging" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging / Docs
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/v2" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	if cfg.Store.Driver != StoreFile || cfg.Store.DataDir != "/var/lib/renacod" {
		t.Fatalf("store unexpected: %+v", cfg.Store)
	}

	if cfg.RateLimitMax != 100 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("rate limiting unexpected: %d per %v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	// Web protection
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	if cfg.IdempotencyTTL != 48*time.Hour || cfg.IdempotencyPurgeEvery != 10*time.Minute {
		t.Fatalf("idempotency unexpected: ttl=%v purge=%v", cfg.IdempotencyTTL, cfg.IdempotencyPurgeEvery)
	}

	if cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.JWTIssuer != "renacod" {
		t.Fatalf("auth unexpected: %+v", cfg.Auth)
	}

	wantTo := []string{"sales@renacod.com", "ops@renacod.com"}
	if cfg.Mail.Host != "smtp.example.com" || cfg.Mail.Port != 465 || cfg.Mail.From != "noreply@renacod.com" ||
		!reflect.DeepEqual(cfg.Mail.To, wantTo) || cfg.Mail.Timeout != 5*time.Second {
		t.Fatalf("mail unexpected: %+v", cfg.Mail)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty PORT via spaces", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"max body bytes <= 0", map[string]string{"MAX_BODY_BYTES": "-1"}, "MAX_BODY_BYTES"},
		{"unknown store driver", map[string]string{"STORE_DRIVER": "mongo"}, "STORE_DRIVER"},
		{"unknown db driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"empty DB_PATH", map[string]string{"DB_PATH": "   "}, "DB_PATH must not be empty"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"file store without dir", map[string]string{"STORE_DRIVER": "file", "DATA_DIR": "  "}, "DATA_DIR"},
		{"rate limit max < 1", map[string]string{"RATE_LIMIT_MAX": "0"}, "RATE_LIMIT_MAX"},
		{"rate limit window <= 0", map[string]string{"RATE_LIMIT_WINDOW": "0s"}, "RATE_LIMIT_WINDOW"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl non-positive", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"email port out of range", map[string]string{"EMAIL_HOST": "smtp", "EMAIL_USER": "a@b.c", "EMAIL_PORT": "70000"}, "EMAIL_PORT"},
		{"email without sender", map[string]string{"EMAIL_HOST": "smtp"}, "EMAIL_FROM"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}

	// Note: API_BASE_PATH validation is effectively unreachable due to normalizeBasePath
	// always ensuring a leading '/' and returning "/" for empty input.
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", "42")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"}
	for i, v := range trueVals {
		k := "B_T_" + config_strconv(i)
		t.Setenv(k, v)
		if !getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	falseVals := []string{"0", "false", "FALSE", " no ", "N", "off", "Off"}
	for i, v := range falseVals {
		k := "B_F_" + config_strconv(i)
		t.Setenv(k, v)
		if getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	// default on unset/empty
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	in := " a, ,b ,  c  ,"
	want := []string{"a", "b", "c"}
	if got := splitCSV(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}

	// normalizeBasePath
	if normalizeBasePath("") != "/" {
		t.Fatalf("normalizeBasePath empty -> '/' failed")
	}
	if normalizeBasePath("v1") != "/v1" {
		t.Fatalf("normalizeBasePath missing leading slash failed")
	}
	if normalizeBasePath("/v1/") != "/v1" {
		t.Fatalf("normalizeBasePath trailing slash trim failed")
	}
	if normalizeBasePath(" / ") != "/" {
		t.Fatalf("normalizeBasePath whitespace failed")
	}
}

// small helper (avoid fmt just for ints)
func config_strconv(i int) string { return string('a' + rune(i)) }

// Ensure ambient env from the shell does not leak into defaults.
func TestMain(m *testing.M) {
	for _, k := range []string{
		"PORT", "APP_ENV", "API_BASE_PATH", "STORE_DRIVER", "DB_DRIVER", "DATABASE_URL",
		"CORS_ALLOWED_ORIGINS", "FRONTEND_URL", "EMAIL_HOST", "EMAIL_USER", "EMAIL_FROM", "EMAIL_TO",
		"LOG_LEVEL", "OTEL_SERVICE_NAME",
	} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
