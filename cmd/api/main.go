package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/fridge-chef/backend/config"
	"github.com/pageza/fridge-chef/backend/internal/api"
	"github.com/pageza/fridge-chef/backend/internal/database"
	"github.com/pageza/fridge-chef/backend/internal/logging"
	"github.com/pageza/fridge-chef/backend/internal/middleware"
	"github.com/pageza/fridge-chef/backend/internal/server"
	"github.com/pageza/fridge-chef/backend/internal/service"
	"github.com/pageza/fridge-chef/backend/internal/upload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Initialize generative backends
	client, err := service.NewGenAIClient(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create generative client", zap.Error(err))
	}
	extractor := service.NewIngredientExtractor(client.Models, cfg.VisionModel, logger)
	generator := service.NewRecipeGenerator(client.Models, cfg.TextModel, cfg.MaxOutputTokens, logger)

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Optional rate limiting
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewGenerationRateLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow, logger)
	} else {
		logger.Info("REDIS_URL not set, rate limiting disabled")
	}

	// Optional upload archive
	var archive service.IImageArchive
	if cfg.ArchiveEnabled() {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3", zap.Error(err))
		}
		archive = service.NewImageArchive(s3Config)
	}

	recipeHandler := api.NewRecipeHandler(extractor, generator, uploads, archive, rateLimiter, logger)

	// Create and start server
	srv := server.New(cfg, recipeHandler, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		logger.Info("Received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
