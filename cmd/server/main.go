package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/Ubaid-2/Camera-rental/internal/api/http"
	"github.com/Ubaid-2/Camera-rental/internal/cart"
	"github.com/Ubaid-2/Camera-rental/internal/config"
	"github.com/Ubaid-2/Camera-rental/internal/jobs"
	"github.com/Ubaid-2/Camera-rental/internal/logger"
	"github.com/Ubaid-2/Camera-rental/internal/repository/postgres"
	"github.com/Ubaid-2/Camera-rental/internal/scheduler"
	"github.com/Ubaid-2/Camera-rental/internal/security"
	"github.com/Ubaid-2/Camera-rental/internal/service"
	"github.com/Ubaid-2/Camera-rental/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Environment overrides from a local .env file, if present
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting camera rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Redis for the shopping cart
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr)

	// Repositories
	store := postgres.NewStore(db)

	// Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Blob storage
	blobStore, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir, cfg.Storage.SignSecret)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Using local blob storage", "upload_dir", cfg.Storage.UploadDir)

	// Cart store
	cartStore := cart.NewRedisStore(rdb, time.Duration(cfg.Cart.TTLHours)*time.Hour)

	// Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, blobStore)
	cameraSvc := service.NewCameraService(store.CameraRepository, store.UserRepository)
	cartSvc := service.NewCartService(cartStore, store.CameraRepository)
	availability := service.NewAvailabilityChecker(store.RentalRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.CameraRepository,
		store.UserRepository,
		store.NotificationRepository,
		cartStore,
		availability,
		blobStore,
		emailSvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	adminSvc := service.NewAdminService(store.UserRepository, blobStore, emailSvc)

	// Scheduled jobs
	jobRunner := jobs.NewJobRunner(store, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		User:         userSvc,
		Camera:       cameraSvc,
		Cart:         cartSvc,
		Rental:       rentalSvc,
		Availability: availability,
		Notification: noteSvc,
		Admin:        adminSvc,
		Tokens:       tokenManager,
		BlobStore:    blobStore,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
