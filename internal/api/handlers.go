package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipespace/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipespace API is running",
	})
}

// RegisterRoutes registers all API routes under /api/v1.
func RegisterRoutes(
	router *gin.Engine,
	authService service.IAuthService,
	userService service.IUserService,
	recipeService service.IRecipeService,
	favoriteService service.IFavoriteService,
	uploadService service.IUploadService,
) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewUserHandler(userService, authService, uploadService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, favoriteService, authService, uploadService).RegisterRoutes(v1)
}
