package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds the games a user intends to buy.
type Cart struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Games []Game `json:"games" gorm:"many2many:cart_games"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Library holds the games a user owns.
type Library struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Games []Game `json:"games" gorm:"many2many:library_games"`
}

func (l *Library) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// LibraryGame is the library_games join row.
type LibraryGame struct {
	LibraryID string `gorm:"primaryKey;type:varchar(36)"`
	GameID    string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}
