// Package main is the entrypoint for the Conference Central API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"conferencecentral/config"
	_ "conferencecentral/docs"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/tasks"
	"conferencecentral/internal/database"
	httpdelivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	cacheStore := cache.NewMemoryStore()
	if cfg.RedisURL != "" {
		cacheStore, err = cache.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("redis connection failed", "err", err)
			os.Exit(1)
		}
		logger.Info("connected to redis")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer setup failed", "err", err)
		os.Exit(1)
	}

	// Repositories
	confRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// The services enqueue tasks the runner executes, and the runner needs
	// the session service; the HandlerFunc closure resolves the cycle by
	// reading runner at call time.
	var runner *services.TaskRunner
	dispatcher := tasks.NewDispatcher(logger, tasks.HandlerFunc(func(ctx context.Context, task domain.Task) error {
		return runner.Handle(ctx, task)
	}))

	conferenceService := services.NewConferenceService(confRepo, registrationRepo, profileRepo, dispatcher, serviceTimeout)
	sessionService := services.NewSessionService(confRepo, sessionRepo, cacheStore, dispatcher, serviceTimeout)
	registrationService := services.NewRegistrationService(confRepo, registrationRepo, serviceTimeout)
	profileService := services.NewProfileService(profileRepo, wishlistRepo, sessionRepo, serviceTimeout)
	announcementService := services.NewAnnouncementService(confRepo, cacheStore, serviceTimeout)
	runner = services.NewTaskRunner(emailService, sessionService)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetricsCollector(registry)

	router := httpdelivery.NewRouter(logger, verifier, cfg.InternalToken, httpdelivery.Controllers{
		Conference:   controllers.NewConferenceController(logger, conferenceService),
		Session:      controllers.NewSessionController(logger, sessionService),
		Profile:      controllers.NewProfileController(logger, profileService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
		Task:         controllers.NewTaskController(logger, announcementService, runner),
	}, registry)

	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.LoggingMiddleware(logger,
			metrics.Middleware(router)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	dispatcher.Stop()
}
