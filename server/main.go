package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatly/api/routes"
	"seatly/internal/allocation"
	"seatly/internal/billing"
	"seatly/internal/bookings"
	"seatly/internal/pricing"
	"seatly/internal/seatmap"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/shared/middleware"
	"seatly/pkg/cache"
	"seatly/pkg/logger"
	"seatly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Refund settlement pipeline
	var refundPublisher allocation.RefundPublisher
	var settlementConsumer *billing.SettlementConsumer
	settlementCtx, settlementCancel := context.WithCancel(context.Background())
	defer settlementCancel()

	if cfg.Kafka.Enabled {
		producerConfig := billing.DefaultProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.RefundTopic = cfg.Kafka.RefundTopic

		producer, err := billing.NewRefundProducer(producerConfig)
		if err != nil {
			appLogger.Error("Failed to initialize refund producer", slog.Any("error", err))
			appLogger.Info("Continuing without refund publishing - settlements will not be recorded")
		} else {
			refundPublisher = producer
			defer producer.Close()
		}

		consumerConfig := billing.DefaultConsumerConfig()
		consumerConfig.Brokers = cfg.Kafka.Brokers
		consumerConfig.Topics = []string{cfg.Kafka.RefundTopic}
		consumerConfig.GroupID = cfg.Kafka.SettlementGroupID

		settlementConsumer, err = billing.NewSettlementConsumer(consumerConfig, billing.NewRepository(db.GetPostgreSQL()))
		if err != nil {
			appLogger.Error("Failed to initialize settlement consumer", slog.Any("error", err))
		} else {
			settlementConsumer.Start(settlementCtx, cfg.Kafka.SettlementWorkers)
			defer func() {
				appLogger.Info("Stopping settlement consumer...")
				if err := settlementConsumer.Stop(); err != nil {
					appLogger.Error("Error stopping settlement consumer", slog.Any("error", err))
				}
			}()
		}
	} else {
		appLogger.Info("Kafka disabled - refund events stay in transition results only")
	}

	// Allocation engine backed by the redis state store
	cacheService := cache.NewService(db.GetRedisClient())
	stateRepo := allocation.NewStateRepository(cacheService)
	engine, err := allocation.NewEngine(seatmap.LayoutWithRows(cfg.Cabin.Rows), pricing.DefaultTable(), stateRepo, refundPublisher)
	if err != nil {
		appLogger.Error("Failed to initialize allocation engine", slog.Any("error", err))
		os.Exit(1)
	}

	// Replay stored bookings so every known leg is open before traffic
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	bookingService := bookings.NewService(bookings.NewRepository(db.GetPostgreSQL()), engine)
	opened, err := bookingService.OpenStoredBookings(bootCtx)
	bootCancel()
	if err != nil {
		appLogger.Error("Failed to replay stored bookings", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Stored bookings replayed", slog.Int("legs_opened", opened))

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Setup router with rate limiter
	router := setupRouter(cfg, db, engine, rateLimiter)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Int("open_legs", opened),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, engine *allocation.Engine, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	ginEngine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: request ids, request logs, panic recovery
	ginEngine.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	// CORS configuration
	ginEngine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		ginEngine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, engine)
	appRouter.SetupRoutes(ginEngine)

	return ginEngine
}
