package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a purchase made by a User. Orders are append-only.
type Order struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	User      *User     `json:"-"`
	CartID    string    `json:"cart_id" gorm:"type:varchar(36);not null;check:cart_id <> ''"`
	Cart      *Cart     `json:"-"`
	Price     float64   `json:"price" gorm:"not null"`
	Games     []Game    `json:"games" gorm:"many2many:order_games"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderGame is the order_games join row, keyed by (order_id, game_id).
type OrderGame struct {
	OrderID   string `gorm:"primaryKey;type:varchar(36)"`
	GameID    string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}
