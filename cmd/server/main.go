// Command server runs the Renacod contact API.
//
//	@title						Renacod Contact API
//	@version					1.0
//	@description				Contact form intake and staff triage for the Renacod website.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and a staff JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/renacod/backend/internal/config"
	httpapi "github.com/renacod/backend/internal/http"
	"github.com/renacod/backend/internal/http/handlers"
	"github.com/renacod/backend/internal/http/middleware"
	"github.com/renacod/backend/internal/notify"
	"github.com/renacod/backend/internal/observability"
	"github.com/renacod/backend/internal/repo"
	"github.com/renacod/backend/internal/services"
	"github.com/renacod/backend/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := observability.Build{
		Version:     sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version),
		Environment: cfg.Environment,
	}
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, build)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.close()

	notifier, err := newNotifier(cfg.Mail)
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.Mail.Timeout)

	contacts := services.NewContactService(st.contacts, dispatcher)
	contacts.ReplayTTL = cfg.IdempotencyTTL
	deps := httpapi.Dependencies{
		Contacts: contacts,
		Reports:  services.NewReportService(st.contacts),
		Store:    st.contacts,
		Verifier: middleware.JWTVerifier{Secret: []byte(cfg.Auth.JWTSecret), Issuer: cfg.Auth.JWTIssuer},
	}
	if st.sql != nil {
		contacts.Replays = st.sql
		deps.Replays = httpapi.ReplayLookup(st.sql)
		go purgeReplays(ctx, st.sql, cfg.IdempotencyPurgeEvery)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; staff endpoints will reject every request")
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("environment", cfg.Environment).
			Str("store", cfg.Store.Driver).
			Bool("mail", cfg.Mail.Enabled()).
			Msg("Renacod API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	// Let queued notifications finish before the store closes.
	if err := dispatcher.Close(sctx); err != nil {
		log.Warn().Err(err).Msg("notifications still pending at shutdown")
	}
	return nil
}

type contactStore interface {
	services.ContactStore
	handlers.Pinger
}

// openedStore is the selected backend. sql is set only for the SQL driver,
// which also keeps idempotency records.
type openedStore struct {
	contacts contactStore
	sql      *repo.SQLStore
	close    func()
}

func openStore(cfg config.StoreConfig) (*openedStore, error) {
	switch cfg.Driver {
	case config.StoreFile:
		fs := repo.NewFileStore(cfg.DataDir)
		if err := fs.EnsureReady(); err != nil {
			return nil, err
		}
		log.Info().Str("path", fs.Path()).Msg("using JSON file store")
		return &openedStore{contacts: fs, close: func() {}}, nil

	default:
		dsn := cfg.DBPath
		if cfg.DBDriver == repo.DriverPostgres {
			dsn = cfg.DatabaseURL
		}
		db, err := repo.Open(cfg.DBDriver, dsn)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
		}
		if err := repo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		s := repo.NewSQLStore(db)
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("connected to database")
		return &openedStore{contacts: s, sql: s, close: closeDB}, nil
	}
}

// newNotifier returns the SMTP notifier when a mail relay is configured and
// a log-only notifier otherwise.
func newNotifier(cfg config.MailConfig) (notify.Notifier, error) {
	if !cfg.Enabled() {
		log.Warn().Msg("EMAIL_HOST is not set; contact notifications are only logged")
		return notify.LogNotifier{}, nil
	}
	n, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.User,
		Password: cfg.Pass,
		From:     cfg.From,
		To:       cfg.To,
	})
	if err != nil {
		return nil, fmt.Errorf("smtp notifier: %w", err)
	}
	return n, nil
}

func purgeReplays(ctx context.Context, s *repo.SQLStore, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.PurgeReplays(ctx, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged expired idempotency keys")
			}
		}
	}
}
