package service

import (
	"context"
	"io"
	"time"

	"github.com/recipespace/backend/internal/models"
	"github.com/recipespace/backend/internal/types"
)

// IAuthService defines the credential service contract
type IAuthService interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
	GenerateToken(user *models.User, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	RevokeToken(ctx context.Context, token string) error
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// IUserService defines the user store contract
type IUserService interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, targetID uint, req *types.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, targetID uint) error
}

// IRecipeService defines the recipe store contract
type IRecipeService interface {
	CreateRecipe(ctx context.Context, actorID uint, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	ListRecipes(ctx context.Context, filter *types.RecipeFilter) ([]*models.Recipe, error)
	UpdateRecipe(ctx context.Context, actorID, id uint, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, actorID, id uint) error
}

// IFavoriteService defines the favorites ledger contract
type IFavoriteService interface {
	Add(ctx context.Context, userID, recipeID uint) error
	Remove(ctx context.Context, userID, recipeID uint) error
	IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error)
	ListFavorites(ctx context.Context, userID uint, skip, limit int) ([]*models.Recipe, error)
}

// IUploadService defines the upload contract
type IUploadService interface {
	Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error)
}

var (
	_ IAuthService     = (*AuthService)(nil)
	_ IUserService     = (*UserService)(nil)
	_ IRecipeService   = (*RecipeService)(nil)
	_ IFavoriteService = (*FavoriteService)(nil)
	_ IUploadService   = (*UploadService)(nil)
)
