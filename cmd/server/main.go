// Package main wires the application together and starts the HTTP server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"confprogram/config"
	"confprogram/docs"
	"confprogram/internal/adapters/auth"
	"confprogram/internal/adapters/email"
	delivery "confprogram/internal/delivery/http"
	"confprogram/internal/delivery/http/controllers"
	"confprogram/internal/delivery/http/middleware"
	"confprogram/internal/repository/postgres"
	"confprogram/internal/services"
)

// @title Conference Program API
// @version 1.0
// @description Conference event scheduling: events, talks, programs, and enrollments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// Adapters
	hasher := auth.NewBcryptHasher(10)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	talkRepo := postgres.NewTalkRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	userRepo := postgres.NewUserRepository(db)
	enrollmentRepo := postgres.NewEnrollmentRepository(db)

	// Services
	eventService := services.NewEventService(eventRepo, cfg.ContextTimeout)
	talkService := services.NewTalkService(talkRepo, cfg.ContextTimeout)
	scheduleService := services.NewScheduleService(scheduleRepo, eventRepo, talkRepo, cfg.ContextTimeout, cfg.TalkLookupTimeout)
	userService := services.NewUserService(userRepo, hasher, issuer, cfg.TokenExpiry, cfg.ContextTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, eventRepo, userRepo, emailService, logger, cfg.ContextTimeout)

	dispatcher := services.NewDispatcher(logger)
	services.RegisterPersisters(dispatcher, eventService, talkService, scheduleService, userService)

	// HTTP
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:        controllers.NewAuthController(logger, userService),
		Users:       controllers.NewUserController(logger, userService, dispatcher),
		Events:      controllers.NewEventController(logger, eventService, dispatcher),
		Talks:       controllers.NewTalkController(logger, talkService, dispatcher),
		Schedules:   controllers.NewScheduleController(logger, scheduleService, eventService, dispatcher),
		Enrollments: controllers.NewEnrollmentController(logger, enrollmentService, eventService),
		Persistence: controllers.NewPersistenceController(logger, dispatcher),
	}, verifier, logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
