package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray stores an ordered list of strings as a JSON column so the
// same model works on both postgres (jsonb) and sqlite (text).
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:100;not null" json:"title"`
	Description string      `gorm:"size:255;not null" json:"description"`
	Tags        StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Ingredients StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	CookingTime int         `gorm:"not null" json:"cooking_time"`
	Difficulty  int         `gorm:"not null" json:"difficulty"`
	Image       string      `gorm:"size:255" json:"image,omitempty"`
	Steps       string      `gorm:"type:text" json:"steps"`
	AuthorID    uint        `gorm:"not null;index" json:"author_id"`
	LikesCount  int         `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
