package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/models"
	"github.com/recipespace/backend/internal/types"
)

// UserService handles user record CRUD. Mutations are gated on the acting
// user owning the target record.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update. Only non-nil fields change; omitted
// fields keep their prior values.
func (s *UserService) UpdateUser(ctx context.Context, actorID, targetID uint, req *types.UpdateUserRequest) (*models.User, error) {
	if actorID != targetID {
		return nil, fmt.Errorf("%w: user %d cannot modify user %d", ErrForbidden, actorID, targetID)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, targetID)
		}
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}

	if req.Username != nil || req.Email != nil {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("(username = ? OR email = ?) AND id != ?", user.Username, user.Email, targetID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: username or email taken by another user", ErrConflict)
		}
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, fmt.Errorf("%w: username or email taken by another user", ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// DeleteUser hard-deletes a user. The user's ledger rows, authored recipes
// and the ledger rows pointing at those recipes go in the same transaction,
// and every surviving recipe the user had favorited gets its like counter
// decremented, so likes_count stays equal to the ledger cardinality.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if actorID != targetID {
		return fmt.Errorf("%w: user %d cannot delete user %d", ErrForbidden, actorID, targetID)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, targetID)
			}
			return err
		}

		if err := tx.Exec(`
			UPDATE recipes
			SET likes_count = CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END
			WHERE id IN (SELECT recipe_id FROM favorite_recipes WHERE user_id = ?)`,
			targetID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id IN (SELECT id FROM recipes WHERE author_id = ?)", targetID).
			Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", targetID).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, targetID).Error
	})
}
