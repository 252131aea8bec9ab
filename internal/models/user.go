package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a store account. It owns one Cart, one Library and its Orders.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Balance   float64   `json:"balance"`
	CartID    *string   `json:"cart_id" gorm:"type:varchar(36)"`
	LibraryID *string   `json:"library_id" gorm:"type:varchar(36)"`
	Cart      *Cart     `json:"cart,omitempty"`
	Library   *Library  `json:"library,omitempty"`
	Roles     []Role    `json:"roles,omitempty" gorm:"many2many:user_roles"`
	Orders    []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Role is a named permission group.
type Role struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(50);not null"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// UserRole is the user_roles join row.
type UserRole struct {
	UserID string `gorm:"primaryKey;type:varchar(36)"`
	RoleID string `gorm:"primaryKey;type:varchar(36)"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
