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

	"github.com/jackc/pgx/v5/pgxpool"

	"eventplanner/config"
	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/email"
	httpdelivery "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/jobs"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Event Planner API
// @version 1.0
// @description Event management API with private events, invitations, registrations and reminders.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := postgres.MigrateUp(cfg.DBUrl, postgres.DefaultMigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Separate pgx pool for the job queue; the repositories stay on
	// database/sql.
	pool, err := pgxpool.New(context.Background(), cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("create pgx pool: %w", err)
	}
	defer pool.Close()

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tagRepo := postgres.NewTagRepository(db)

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	// Job queue
	workers := jobs.NewWorkers()
	client, err := jobs.NewClient(pool, workers, logger, jobs.NewPeriodicJobs())
	if err != nil {
		return fmt.Errorf("create job client: %w", err)
	}
	enqueuer := jobs.NewEnqueuer(client)

	// Services
	eventService := services.NewEventService(eventRepo, invitationRepo, categoryRepo, tagRepo, userRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, registrationRepo, invitationRepo, userRepo)
	invitationService := services.NewInvitationService(eventRepo, invitationRepo, userRepo, enqueuer, logger)
	reminderService := services.NewReminderService(eventRepo, registrationRepo, enqueuer, logger)
	notificationService := services.NewNotificationService(notificationRepo)
	catalogService := services.NewCatalogService(venueRepo, speakerRepo, sponsorRepo, categoryRepo, tagRepo)

	jobs.RegisterWorkers(workers,
		jobs.InvitationEmailWorker{
			InvitationRepo: invitationRepo,
			EventRepo:      eventRepo,
			UserRepo:       userRepo,
			Emails:         emailService,
			BaseURL:        cfg.BaseURL,
			Logger:         logger,
		},
		jobs.EventReminderWorker{
			EventRepo:        eventRepo,
			RegistrationRepo: registrationRepo,
			UserRepo:         userRepo,
			NotificationRepo: notificationRepo,
			Emails:           emailService,
			Logger:           logger,
		},
		jobs.ReminderSweepWorker{
			Reminders: reminderService,
			Logger:    logger,
		},
	)

	// HTTP
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mux := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Events:        controllers.NewEventController(logger, eventService, registrationService, invitationService),
		Invitations:   controllers.NewInvitationController(logger, invitationService),
		Notifications: controllers.NewNotificationController(logger, notificationService),
		Venues:        controllers.NewVenueController(logger, catalogService),
		Speakers:      controllers.NewSpeakerController(logger, catalogService),
		Sponsors:      controllers.NewSponsorController(logger, catalogService),
		Taxonomy:      controllers.NewTaxonomyController(logger, catalogService),
		RequireAuth:   middleware.RequireAuth(verifier, logger),
		OptionalAuth:  middleware.OptionalAuth(verifier, logger),
	})
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("start job workers: %w", err)
	}
	logger.Info("background job workers started")

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "err", err)
	}
	if err := client.Stop(shutdownCtx); err != nil {
		logger.Error("job workers shutdown", "err", err)
	}
	logger.Info("shutdown complete")
	return nil
}
