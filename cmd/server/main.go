package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/scrawl/internal/auth"
	"github.com/dmitrymomot/scrawl/internal/config"
	"github.com/dmitrymomot/scrawl/internal/cookie"
	"github.com/dmitrymomot/scrawl/internal/logger"
	"github.com/dmitrymomot/scrawl/internal/middleware"
	"github.com/dmitrymomot/scrawl/internal/postgres"
	"github.com/dmitrymomot/scrawl/internal/repository"
	"github.com/dmitrymomot/scrawl/internal/router"
	"github.com/dmitrymomot/scrawl/internal/server"
	"github.com/dmitrymomot/scrawl/internal/session"
	"github.com/dmitrymomot/scrawl/internal/web"
	"github.com/dmitrymomot/scrawl/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	logOpts := []logger.Option{logger.WithAppName(cfg.AppName)}
	if cfg.Development {
		logOpts = append(logOpts, logger.WithDevelopment(cfg.AppName))
	}
	log := logger.New(logOpts...)

	db, err := postgres.Connect(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to connect to database", logger.Component("database"), logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString, migrations.FS, log.With(logger.Component("migration"))); err != nil {
		log.Error("failed to migrate database", logger.Component("migration"), logger.Error(err))
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	sessionStore := repository.NewSessionRepository(db)
	posts := repository.NewPostRepository(db)

	sessions := session.NewManager(sessionStore, cfg.SessionTTL)
	cookies := cookie.NewManager(cfg.CookieName, cfg.SessionTTL, cookie.WithSecure(cfg.CookieSecure))
	authenticator := auth.NewAuthenticator(sessions, users, cfg.CookieName)
	gate := auth.NewCredentialGate(users)

	app := web.NewApp(authenticator, gate, sessions, cookies, posts, log)

	r := router.New(
		router.WithContextFactory(web.NewContext),
		router.WithLogger[*web.Context](log.With(logger.Component("router"))),
		router.WithMiddleware(
			middleware.RequestID[*web.Context](),
			middleware.Logging[*web.Context](log.With(logger.Component("http.request"))),
		),
	)
	app.Routes(r)

	eg, ctx := errgroup.WithContext(ctx)

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		log.Error("failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
	eg.Go(s.Run(ctx, r))
	eg.Go(cleanupExpiredSessions(ctx, sessions, cfg.SessionCleanupInterval, log))

	if err := eg.Wait(); err != nil {
		log.Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

// cleanupExpiredSessions sweeps expired session rows on a fixed interval.
// Lookup already treats expired rows as absent, so the sweep only bounds
// table growth.
func cleanupExpiredSessions(ctx context.Context, sessions *session.Manager, interval time.Duration, log *slog.Logger) func() error {
	return func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				deleted, err := sessions.CleanupExpired(ctx)
				if err != nil {
					log.ErrorContext(ctx, "session cleanup failed", logger.Component("session"), logger.Error(err))
					continue
				}
				if deleted > 0 {
					log.InfoContext(ctx, "expired sessions removed", logger.Component("session"), "count", deleted)
				}
			}
		}
	}
}
