package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipespace/backend/config"
	"github.com/recipespace/backend/internal/api"
	"github.com/recipespace/backend/internal/middleware"
	"github.com/recipespace/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New assembles the services and handlers onto a gin engine. redisClient
// may be nil; logout revocation is then disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploadStorage service.UploadStorage, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	authService := service.NewAuthService(db, cfg.JWTSecret, redisClient, logger)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db)
	favoriteService := service.NewFavoriteService(db)
	uploadService := service.NewUploadService(uploadStorage, logger)

	api.RegisterRoutes(router, authService, userService, recipeService, favoriteService, uploadService)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		logger: logger,
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
