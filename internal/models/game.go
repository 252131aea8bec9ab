package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Game is a catalogue entry. Orders, carts and libraries reference it through join tables.
type Game struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null;check:title <> ''"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"`
	Price       float64   `json:"price" gorm:"not null"`
	Published   time.Time `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}
