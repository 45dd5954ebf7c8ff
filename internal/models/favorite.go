package models

import (
	"time"
)

// FavoriteRecipe is a row in the user/recipe favorites join table. The
// composite primary key guarantees a user can favorite a recipe at most once.
type FavoriteRecipe struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}
