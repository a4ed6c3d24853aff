package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-od-api/internal/auth"
	"github.com/noah-isme/campus-od-api/internal/config"
	"github.com/noah-isme/campus-od-api/internal/database"
	"github.com/noah-isme/campus-od-api/internal/handler"
	"github.com/noah-isme/campus-od-api/internal/middleware"
	"github.com/noah-isme/campus-od-api/internal/models"
	"github.com/noah-isme/campus-od-api/internal/repository"
	"github.com/noah-isme/campus-od-api/internal/router"
	"github.com/noah-isme/campus-od-api/internal/service"
	"github.com/noah-isme/campus-od-api/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	hasher := auth.NewHasher(cfg.BcryptCost)
	sessions := session.NewService(cfg.JWTSecret, cfg.SessionTTL, cfg.IsDevelopment())

	credentialRepo := repository.NewCredentialRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(credentialRepo, staffRepo, hasher, validate, logger)
	applicationService := service.NewApplicationService(applicationRepo, studentRepo, validate, logger)
	reviewService := service.NewReviewService(reviewRepo, studentRepo, validate, logger)

	loginLimiter := middleware.RateLimit("login", cfg.LoginRateMax, cfg.LoginRateEvery)

	authHandler := handler.NewAuthHandler(authService, sessions, loginLimiter, logger)
	studentHandler := handler.NewStudentHandler(applicationService, logger)
	staffHandler := handler.NewStaffHandler(reviewService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    authHandler,
		StudentHandler: studentHandler,
		StaffHandler:   staffHandler,
		Session:        middleware.Protected(sessions, credentialRepo),
		StudentOnly:    middleware.RequireRole(staffRepo, models.UserTypeStudent),
		StaffOnly:      middleware.RequireRole(staffRepo, models.RoleStaff, models.RoleHod, models.RoleAdmin),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
