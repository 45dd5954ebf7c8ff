package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/recipespace/backend/config"
	"github.com/recipespace/backend/internal/database"
	"github.com/recipespace/backend/internal/logger"
	"github.com/recipespace/backend/internal/server"
	"github.com/recipespace/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.New(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	// Redis backs logout revocation; the server still works without it.
	redisClient, err := database.NewRedisClient(cfg, zapLogger)
	if err != nil {
		zapLogger.Warn("redis unavailable, token revocation disabled", zap.Error(err))
		redisClient = nil
	}

	var uploadStorage service.UploadStorage
	if cfg.StorageBackend == config.StorageS3 {
		s3cfg, err := config.NewS3Config(context.Background())
		if err != nil {
			zapLogger.Fatal("cannot init s3 storage", zap.Error(err))
		}
		uploadStorage = service.NewS3Storage(s3cfg)
		zapLogger.Info("using s3 upload storage", zap.String("bucket", s3cfg.BucketName))
	} else {
		localStorage, err := service.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			zapLogger.Fatal("cannot init upload storage", zap.Error(err))
		}
		uploadStorage = localStorage
		zapLogger.Info("using local upload storage", zap.String("dir", cfg.UploadDir))
	}

	srv := server.New(cfg, db, redisClient, uploadStorage, zapLogger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zapLogger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown error", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
