package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ariasbenraq/gastometro-backend/internal/config"
	"github.com/ariasbenraq/gastometro-backend/internal/handler"
	"github.com/ariasbenraq/gastometro-backend/internal/handler/middleware"
	"github.com/ariasbenraq/gastometro-backend/internal/repository/postgres"
	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
	"github.com/ariasbenraq/gastometro-backend/pkg/email"
	"github.com/ariasbenraq/gastometro-backend/pkg/jwt"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	userRepo := postgres.NewUsuarioRepository(db)
	personalRepo := postgres.NewPersonalRepository(db)
	sessionRepo := postgres.NewRefreshSessionRepository(db)
	resetRepo := postgres.NewPasswordResetRepository(db)
	gastoRepo := postgres.NewGastoRepository(db)
	ingresoRepo := postgres.NewIngresoRepository(db)
	movilidadRepo := postgres.NewMovilidadRepository(db)
	tiendaRepo := postgres.NewTiendaRepository(db)
	balanceRepo := postgres.NewBalanceRepository(db)

	// Initialize JWT token service
	tokenService, err := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Initialize cache
	cacheService := cache.NewCache(redisClient)

	// Initialize email notifier
	notifier := initNotifier(cfg)

	// Initialize services
	refreshService := service.NewRefreshSessionService(
		sessionRepo,
		cfg.Auth.BcryptCost,
		cfg.Auth.RefreshTTLDays,
		cfg.Auth.RefreshIdleTimeout,
	)
	authService := service.NewAuthService(
		userRepo,
		refreshService,
		tokenService,
		cfg.Auth.BcryptCost,
		cfg.Auth.ReservedAdminHandle,
	)
	resetService := service.NewPasswordResetService(
		userRepo,
		resetRepo,
		refreshService,
		notifier,
		cfg.Auth.BcryptCost,
		cfg.Auth.ResetCodeTTL,
	)
	userService := service.NewUserService(userRepo)
	gastoService := service.NewGastoService(gastoRepo, personalRepo, cacheService)
	ingresoService := service.NewIngresoService(ingresoRepo, personalRepo, cacheService)
	movilidadService := service.NewMovilidadService(movilidadRepo, tiendaRepo, cacheService)
	tiendaService := service.NewTiendaService(tiendaRepo, cacheService)
	balanceService := service.NewBalanceService(balanceRepo, cacheService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	passwordHandler := handler.NewPasswordHandler(resetService, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	gastoHandler := handler.NewGastoHandler(gastoService, validate)
	ingresoHandler := handler.NewIngresoHandler(ingresoService, validate)
	movilidadHandler := handler.NewMovilidadHandler(movilidadService, validate)
	tiendaHandler := handler.NewTiendaHandler(tiendaService, validate)
	balanceHandler := handler.NewBalanceHandler(balanceService, validate)
	healthHandler := handler.NewHealthHandler(db, cacheService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Gastometro Backend v1.0",
		ErrorHandler: customErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware())

	authMiddleware := middleware.AuthMiddleware(tokenService)

	// Setup routes
	handler.SetupRoutes(
		app,
		authHandler,
		passwordHandler,
		userHandler,
		gastoHandler,
		ingresoHandler,
		movilidadHandler,
		tiendaHandler,
		balanceHandler,
		healthHandler,
		authMiddleware,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("Server starting on http://localhost%s (%s)", addr, cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			log.Printf("Server failed to start: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

// initDB initializes PostgreSQL database connection with retry logic
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes Redis client and verifies connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// initNotifier picks the configured delivery backend; when email is disabled
// or misconfigured, reset requests answer 503 instead of silently dropping
// codes.
func initNotifier(cfg *config.Config) email.Notifier {
	if !cfg.Email.Enabled {
		log.Println("ℹ Email delivery disabled (set EMAIL_ENABLED=true to enable)")
		return email.DisabledNotifier{}
	}

	emailConfig := &email.Config{
		WebhookURL: cfg.Email.WebhookURL,
		APIKey:     cfg.Email.APIKey,
		From:       cfg.Email.From,
		FromName:   cfg.Email.FromName,
		Timeout:    cfg.Email.Timeout,
	}

	switch cfg.Email.Provider {
	case "resend":
		notifier, err := email.NewResendNotifier(emailConfig)
		if err != nil {
			log.Printf("Warning: failed to initialize Resend notifier: %v", err)
			return email.DisabledNotifier{}
		}
		log.Println("✓ Email notifier initialized (Resend)")
		return notifier
	default:
		notifier, err := email.NewWebhookNotifier(emailConfig)
		if err != nil {
			log.Printf("Warning: failed to initialize email webhook notifier: %v", err)
			return email.DisabledNotifier{}
		}
		log.Printf("✓ Email notifier initialized (webhook) - %s", cfg.Email.WebhookURL)
		return notifier
	}
}

// customErrorHandler handles Fiber errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error handling request [%s %s]: %v", c.Method(), c.Path(), err)

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
