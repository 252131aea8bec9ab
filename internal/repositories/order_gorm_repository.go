package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vapor/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders without their games.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.Order("created_at").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetAllWithGames retrieves all orders with their games eagerly loaded.
func (r *GORMOrderRepository) GetAllWithGames() ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.Preload("Games").Order("created_at").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders with games: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order and its games.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Games").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUserID retrieves the orders placed by a user, oldest first. An unknown user yields an empty slice.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.Preload("Games").Where("user_id = ?", userID).Order("created_at").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Create inserts the order, any games it carries that do not exist yet, and the order_games rows.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Checkout creates the order and removes every game from its cart in one transaction.
func (r *GORMOrderRepository) Checkout(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{ID: order.CartID}).Association("Games").Clear()
	})
	if err != nil {
		return fmt.Errorf("failed to check out cart %s: %w", order.CartID, err)
	}
	return nil
}
