// Package httpapi wires the HTTP transport (Gin) to the contact services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, rate limiting, and staff
// authentication.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/renacod/backend/docs" // registers the OpenAPI document
	"github.com/renacod/backend/internal/config"
	"github.com/renacod/backend/internal/http/handlers"
	"github.com/renacod/backend/internal/http/middleware"
	"github.com/renacod/backend/internal/repo"
)

// Dependencies are the collaborators the routes are bound to.
type Dependencies struct {
	Contacts handlers.ContactService
	Reports  handlers.ReportService
	// Store backs the health check; nil skips the probe.
	Store handlers.Pinger
	// Replays marks retried submissions before rate limiting; nil disables it.
	Replays middleware.IdempotencyLookup
	// Verifier authenticates staff bearer tokens.
	Verifier middleware.TokenVerifier
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the contact API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Compression
//  8. CORS and Security headers
//
// Within the API group the idempotency validator runs before the rate
// limiter so that a replayed submission is not counted twice.
func RegisterRoutes(r *gin.Engine, deps Dependencies, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey, "X-API-Key"},
		MaskQuery:   []string{"search"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(limitBody(maxBody))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics("/metrics"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) gzip for JSON and CSV bodies; the scrape endpoint negotiates its own
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 8) CORS posture and security headers
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "Route "+c.Request.URL.Path+" not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps.Contacts, deps.Reports, deps.Store, cfg.Environment)

	// Liveness/health, registered before the API middleware so probes are
	// never rate limited
	r.GET("/health", h.Health)

	api := groupWithPrefix(r, cfg.APIBasePath)
	if cfg.APIBasePath != "" && cfg.APIBasePath != "/" {
		api.GET("/health", h.Health)
	}

	// Idempotency validation (before rate limiting)
	lookup := deps.Replays
	if lookup == nil {
		lookup = noReplays
	}
	api.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, lookup))

	// Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByUserOrIP())
	api.Use(rl.Handler())

	// Public intake
	api.POST("/contact", h.SubmitContact)

	// Staff triage and reporting
	verifier := deps.Verifier
	if verifier == nil {
		verifier = middleware.JWTVerifier{} // no secret: every token is rejected
	}
	staff := api.Group("/contact",
		middleware.Authenticate(verifier),
		middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager),
		middleware.NoStore(),
	)
	{
		staff.GET("", h.ListContacts)
		staff.GET("/stats", h.ContactStats)
		staff.GET("/export", h.ExportContacts)
		staff.PATCH("/bulk", h.BulkUpdateContacts)

		staff.GET("/:id", h.GetContact)
		staff.PATCH("/:id", h.UpdateContact)
		staff.PATCH("/:id/respond", h.MarkResponded)
		staff.DELETE("/:id", middleware.RequireRole(middleware.RoleAdmin), h.DeleteContact)
	}
}

// ReplayFinder is the part of the SQL store the idempotency lookup needs.
type ReplayFinder interface {
	FindReplay(ctx context.Context, clientID, key string, now time.Time) (string, error)
}

// ReplayLookup adapts a ReplayFinder to the idempotency middleware.
func ReplayLookup(f ReplayFinder) middleware.IdempotencyLookup {
	return func(ctx context.Context, clientID, key string, now time.Time) (bool, error) {
		if _, err := f.FindReplay(ctx, clientID, key, now); err != nil {
			if repo.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}

func noReplays(context.Context, string, string, time.Time) (bool, error) { return false, nil }

// corsMiddleware allows the configured front-end origins. With none
// configured every origin is allowed, without credentials.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", "Content-Disposition", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
