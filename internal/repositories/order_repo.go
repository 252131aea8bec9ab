package repositories

import (
	"vapor/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are append-only: there is no update or delete.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetAllWithGames() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	// Checkout creates the order and empties the cart it was placed from, atomically.
	Checkout(order *models.Order) error
}
