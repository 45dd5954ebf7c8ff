package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/models"
)

// CreateTestUser inserts a user with the password "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateTestRecipe inserts a minimal valid recipe owned by authorID.
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:       title,
		Description: "test description",
		Tags:        models.StringArray{"dinner"},
		Ingredients: models.StringArray{"salt", "water"},
		CookingTime: 30,
		Difficulty:  2,
		Steps:       "boil and season",
		AuthorID:    authorID,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return &recipe
}
