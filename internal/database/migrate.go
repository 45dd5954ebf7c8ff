package database

import (
	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/models"
)

// RunMigrations brings the schema up to date: the two base tables and the
// favorites join table with its composite primary key.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.FavoriteRecipe{},
	)
}
