package models

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	ProfilePicture string    `gorm:"size:255" json:"profile_picture,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
