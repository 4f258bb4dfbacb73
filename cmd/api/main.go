package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/config"
	domainRepo "github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/internal/infrastructure/cache"
	"github.com/sangkips/gymcore-api/internal/infrastructure/database"
	"github.com/sangkips/gymcore-api/internal/infrastructure/repository"
	"github.com/sangkips/gymcore-api/internal/presentation/http/handler"
	"github.com/sangkips/gymcore-api/internal/presentation/http/routes"
	"github.com/sangkips/gymcore-api/pkg/email"
	"github.com/sangkips/gymcore-api/pkg/printer"
	"github.com/sangkips/gymcore-api/pkg/utils"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogging(cfg)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed roles, permissions, the default tier table and the first admin
	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := cache.NewSettingsCache(
		repository.NewSettingsRepository(db),
		cache.NewRedisClient(cfg.Redis),
		cfg.Redis.TTL,
	)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromName:     cfg.SMTP.FromName,
		FromEmail:    cfg.SMTP.FromEmail,
		AppName:      cfg.App.Name,
	})

	// Initialize services
	loc := cfg.Gym.Location
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo, staffRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	staffService := service.NewStaffService(staffRepo, cfg.Gym.TrainerMarker)
	memberService := service.NewMemberService(memberRepo, staffRepo, cfg.Gym.SignupBonus)
	checkInService := service.NewCheckInService(memberRepo, checkInRepo, cfg.Gym.CheckInDuration)
	receiptService := service.NewReceiptService(receiptRepo)
	sessionService := service.NewSessionService(sessionRepo, staffRepo, settingsService)
	commissionService := service.NewCommissionService(
		receiptRepo,
		sessionRepo,
		commissionRepo,
		staffRepo,
		staffService,
		settingsService,
		emailService,
		loc,
	)

	// Initialize receipt printer
	receiptPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		Address: cfg.Printer.Address,
		Device:  cfg.Printer.Device,
	})
	if err != nil {
		log.Warnf("Failed to initialize printer: %v", err)
		receiptPrinter = printer.Disabled()
	}
	printerService := service.NewPrinterService(receiptPrinter, receiptService, cfg.Gym.Name, cfg.Printer.Width, loc)

	// Background housekeeping
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runEvery(ctx, 15*time.Minute, "auto_checkout", func(ctx context.Context) error {
		_, err := checkInService.AutoCheckout(ctx)
		return err
	})
	go runEvery(ctx, time.Hour, "idempotency_cleanup", purgeIdempotencyKeys(idempotencyRepo))

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Staff:      handler.NewStaffHandler(staffService),
		Member:     handler.NewMemberHandler(memberService, loc),
		CheckIn:    handler.NewCheckInHandler(checkInService),
		Receipt:    handler.NewReceiptHandler(receiptService, printerService, loc),
		Session:    handler.NewSessionHandler(sessionService, loc),
		Commission: handler.NewCommissionHandler(commissionService),
		Settings:   handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(log.Fields{
		"port":     port,
		"env":      cfg.App.Env,
		"timezone": loc.String(),
	}).Infof("Starting %s server", cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		log.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stdout)
	if cfg.App.Env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		log.Warnf("unknown LOG_LEVEL %q, using info", cfg.App.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// runEvery calls job on every tick until ctx is cancelled. Failures are logged.
func runEvery(ctx context.Context, interval time.Duration, name string, job func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := job(ctx); err != nil {
				log.WithField("job", name).Errorf("background job failed: %v", err)
			}
		}
	}
}

func purgeIdempotencyKeys(repo domainRepo.IdempotencyRepository) func(context.Context) error {
	return func(ctx context.Context) error {
		removed, err := repo.DeleteExpired(ctx, time.Now())
		if err != nil {
			return err
		}
		if removed > 0 {
			log.WithField("removed", removed).Debug("expired idempotency keys deleted")
		}
		return nil
	}
}
