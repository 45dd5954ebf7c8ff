package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/models"
)

// FavoriteService is the ledger of which users favorited which recipes. The
// recipe's likes_count is denormalized and must always equal the number of
// ledger rows for that recipe, so every mutation pairs the row change with
// the counter change inside one transaction.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add records that userID favorited recipeID and increments the recipe's
// like counter. Favoriting twice is an error, not a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserAndRecipe(tx, userID, recipeID); err != nil {
			return err
		}

		var existing models.FavoriteRecipe
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: user %d, recipe %d", ErrAlreadyFavorited, userID, recipeID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fav := models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
		if err := tx.Create(&fav).Error; err != nil {
			// Concurrent Add for the same pair loses the race at the
			// composite primary key.
			if isDuplicateEntryError(err) {
				return fmt.Errorf("%w: user %d, recipe %d", ErrAlreadyFavorited, userID, recipeID)
			}
			return err
		}

		// Atomic in SQL so concurrent favorites of the same recipe by
		// different users cannot lose an update.
		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
}

// Remove deletes the pair and decrements the like counter. Removing a pair
// that is not favorited is ErrNotFound.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserAndRecipe(tx, userID, recipeID); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&models.FavoriteRecipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %d has not favorited recipe %d", ErrNotFound, userID, recipeID)
		}

		// Clamped at zero; inside this transaction the counter is at least 1
		// whenever a row was deleted, so the clamp only guards corrupted data.
		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("likes_count",
				gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
	})
}

// IsFavorited reports whether the pair is in the ledger. Unknown users and
// recipes are simply false.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFavorites returns the user's favorited recipes ordered by when they
// were favorited, oldest first, paginated by skip/limit.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint, skip, limit int) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("JOIN favorite_recipes ON favorite_recipes.recipe_id = recipes.id").
		Where("favorite_recipes.user_id = ?", userID).
		Order("favorite_recipes.created_at ASC, recipes.id ASC")
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// ensureUserAndRecipe fails with ErrNotFound if either side of the pair is
// missing.
func ensureUserAndRecipe(tx *gorm.DB, userID, recipeID uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
	}
	return nil
}
