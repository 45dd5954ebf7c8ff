package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipespace/backend/internal/middleware"
	"github.com/recipespace/backend/internal/service"
	"github.com/recipespace/backend/internal/types"
)

type RecipeHandler struct {
	recipeService   service.IRecipeService
	favoriteService service.IFavoriteService
	authService     service.IAuthService
	uploadService   service.IUploadService
}

func NewRecipeHandler(recipeService service.IRecipeService, favoriteService service.IFavoriteService, authService service.IAuthService, uploadService service.IUploadService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		authService:     authService,
		uploadService:   uploadService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/image", middleware.AuthMiddleware(h.authService), h.UploadImage)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.UnfavoriteRecipe)
		recipes.GET("/:id/favorite", middleware.AuthMiddleware(h.authService), h.IsFavorited)
	}

	favorites := router.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(h.authService))
	{
		favorites.GET("", h.ListFavorites)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := types.RecipeFilter{
		Query: c.Query("q"),
		Tag:   c.Query("tag"),
	}
	filter.Difficulty, _ = strconv.Atoi(c.Query("difficulty"))
	filter.MaxCookingTime, _ = strconv.Atoi(c.Query("max_cooking_time"))
	filter.Skip, _ = strconv.Atoi(c.Query("skip"))
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	if authorID, err := strconv.ParseUint(c.Query("author_id"), 10, 32); err == nil {
		filter.AuthorID = uint(authorID)
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), actorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// UploadImage stores a recipe image and records its reference on the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
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

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), actorID, id, &types.UpdateRecipeRequest{
		Image: &ref,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "recipe favorited"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe unfavorited"})
}

func (h *RecipeHandler) IsFavorited(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	favorited, err := h.favoriteService.IsFavorited(c.Request.Context(), actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	actorID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	recipes, err := h.favoriteService.ListFavorites(c.Request.Context(), actorID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
