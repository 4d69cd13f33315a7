package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cfresh_inventory/config"
	"cfresh_inventory/internal/auth"
	"cfresh_inventory/internal/cache"
	"cfresh_inventory/internal/delivery"
	grpcHandler "cfresh_inventory/internal/delivery/grpc"
	"cfresh_inventory/internal/middleware"
	"cfresh_inventory/internal/report"
	"cfresh_inventory/internal/repository"
	"cfresh_inventory/internal/storage"
	"cfresh_inventory/internal/usecase"
	"cfresh_inventory/pkg/db"
	"cfresh_inventory/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logger.New("info")

	cfg, err := config.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		log.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		log.SetLevel(level)
	}
	log.Info("Starting C Fresh inventory dashboard...")

	// --- Database Connection ---
	database, err := db.Connect(cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	}, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		} else {
			log.Info("Database connection closed.")
		}
	}()
	if cfg.AutoMigrate {
		if err := db.NewMigrator(database, log).Up(context.Background()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	listings := cache.NewNoop()
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warnf("Redis unavailable at %s, listing cache disabled: %v", cfg.RedisAddr, err)
		} else {
			defer client.Close()
			listings = cache.NewRedisListingCache(client, cfg.ListingCacheTTL, log)
			log.Infof("Listing cache enabled on %s", cfg.RedisAddr)
		}
	}

	images, err := storage.NewImageStore(cfg.PublicDir, log)
	if err != nil {
		log.Fatalf("Failed to prepare image storage: %v", err)
	}
	reports, err := storage.NewReportStore(cfg.ReportsDir, log)
	if err != nil {
		log.Fatalf("Failed to prepare report storage: %v", err)
	}

	// --- Dependency Injection ---
	vendorRepo := repository.NewPostgresVendorRepository(database, log)
	productRepo := repository.NewPostgresProductRepository(database, log)
	categoryRepo := repository.NewPostgresCategoryRepository(database, log)
	userRepo := repository.NewPostgresUserRepository(database, log)
	log.Info("Repositories initialized.")

	company := report.Company{Name: cfg.CompanyName, Address: cfg.CompanyAddress, Phone: cfg.CompanyPhone}
	deps := delivery.RouterDeps{
		Vendors:        usecase.NewVendorUseCase(vendorRepo, categoryRepo, images, listings, log),
		Products:       usecase.NewProductUseCase(productRepo, vendorRepo, images, listings, log),
		Categories:     usecase.NewCategoryUseCase(categoryRepo, log),
		Auth:           usecase.NewAuthUseCase(userRepo, log),
		Reports:        usecase.NewReportUseCase(vendorRepo, productRepo, reports, company, log),
		Sessions:       auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		LoginLimiter:   middleware.NewLoginRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst, log),
		DB:             database,
		PublicDir:      cfg.PublicDir,
		APIBaseURL:     cfg.APIBaseURL,
		SecureCookie:   cfg.SessionSecureCookie,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}
	log.Info("Use cases initialized.")

	deps.Templates, err = delivery.LoadTemplates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           delivery.NewRouter(deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- gRPC health ---
	health := grpcHandler.NewHealthServer(database, 0, log)
	lis, err := net.Listen("tcp", cfg.GrpcHealthPort)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.GrpcHealthPort, err)
	}
	go health.Watch(ctx)
	go func() {
		if err := health.Serve(lis); err != nil {
			log.Errorf("gRPC health server stopped: %v", err)
		}
	}()

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutdown signal received...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server forced to shut down: %v", err)
	}
	health.Stop()
	log.Info("Dashboard shut down gracefully.")
}
