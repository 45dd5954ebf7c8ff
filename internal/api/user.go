package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipespace/backend/internal/middleware"
	"github.com/recipespace/backend/internal/service"
	"github.com/recipespace/backend/internal/types"
)

type UserHandler struct {
	userService   service.IUserService
	authService   service.IAuthService
	uploadService service.IUploadService
}

func NewUserHandler(userService service.IUserService, authService service.IAuthService, uploadService service.IUploadService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		authService:   authService,
		uploadService: uploadService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateUser)
		users.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteUser)
		users.POST("/:id/avatar", middleware.AuthMiddleware(h.authService), h.UploadAvatar)
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// UploadAvatar stores a profile picture and records its reference on the
// user.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	ref, err := h.uploadService.Save(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actorID, id, &types.UpdateUserRequest{
		ProfilePicture: &ref,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
