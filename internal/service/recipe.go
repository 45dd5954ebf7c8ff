package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/models"
	"github.com/recipespace/backend/internal/types"
)

// RecipeService handles recipe CRUD. Only the author may mutate a recipe.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func validateRecipeFields(cookingTime, difficulty int) error {
	if cookingTime <= 0 {
		return fmt.Errorf("%w: cooking_time must be positive", ErrValidation)
	}
	if difficulty < 1 || difficulty > 5 {
		return fmt.Errorf("%w: difficulty must be between 1 and 5", ErrValidation)
	}
	return nil
}

// CreateRecipe creates a new recipe authored by actorID.
func (s *RecipeService) CreateRecipe(ctx context.Context, actorID uint, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if err := validateRecipeFields(req.CookingTime, req.Difficulty); err != nil {
		return nil, err
	}
	if req.AuthorID != 0 && req.AuthorID != actorID {
		return nil, fmt.Errorf("%w: user %d cannot create a recipe authored by user %d", ErrForbidden, actorID, req.AuthorID)
	}

	recipe := models.Recipe{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
		CookingTime: req.CookingTime,
		Difficulty:  req.Difficulty,
		Image:       req.Image,
		Steps:       req.Steps,
		AuthorID:    actorID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists recipes matching the filter, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, filter *types.RecipeFilter) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter != nil {
		if filter.Query != "" {
			like := "%" + strings.ToLower(filter.Query) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
		if filter.Tag != "" {
			like := "%" + strings.ToLower(filter.Tag) + "%"
			if s.db.Dialector.Name() == "postgres" {
				query = query.Where("LOWER(tags::text) LIKE ?", like)
			} else {
				query = query.Where("LOWER(tags) LIKE ?", like)
			}
		}
		if filter.Difficulty > 0 {
			query = query.Where("difficulty = ?", filter.Difficulty)
		}
		if filter.MaxCookingTime > 0 {
			query = query.Where("cooking_time <= ?", filter.MaxCookingTime)
		}
		if filter.AuthorID > 0 {
			query = query.Where("author_id = ?", filter.AuthorID)
		}
		if filter.Skip > 0 {
			query = query.Offset(filter.Skip)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC, id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// UpdateRecipe applies a partial update. Only the author may update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, id uint, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, id)
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, fmt.Errorf("%w: user %d is not the author of recipe %d", ErrForbidden, actorID, id)
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Tags != nil {
		recipe.Tags = *req.Tags
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.Image != nil {
		recipe.Image = *req.Image
	}
	if req.Steps != nil {
		recipe.Steps = *req.Steps
	}

	if err := validateRecipeFields(recipe.CookingTime, recipe.Difficulty); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe hard-deletes a recipe and its ledger rows in one transaction.
// Only the author may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: recipe %d", ErrNotFound, id)
			}
			return err
		}
		if recipe.AuthorID != actorID {
			return fmt.Errorf("%w: user %d is not the author of recipe %d", ErrForbidden, actorID, id)
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}
