package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vapor/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByID(id string) (*models.Cart, error)
	AddGame(cartID string, game *models.Game) error
}

// LibraryRepository defines the interface for library data access.
type LibraryRepository interface {
	AddGames(libraryID string, games []models.Game) error
}

// GORMCollectionRepository implements CartRepository and LibraryRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

// NewGORMCollectionRepository creates a new instance of GORMCollectionRepository.
func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{
		db: db,
	}
}

// GetByID retrieves a cart and its games.
func (r *GORMCollectionRepository) GetByID(id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Games").First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", id, err)
	}
	return &cart, nil
}

// AddGame links an existing game to a cart. Adding the same game twice is a no-op.
func (r *GORMCollectionRepository) AddGame(cartID string, game *models.Game) error {
	cart := models.Cart{ID: cartID}
	if err := r.db.Model(&cart).Association("Games").Append(game); err != nil {
		return fmt.Errorf("failed to add game %s to cart %s: %w", game.ID, cartID, err)
	}
	return nil
}

// AddGames links existing games to a library. Games already present are skipped.
func (r *GORMCollectionRepository) AddGames(libraryID string, games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	library := models.Library{ID: libraryID}
	if err := r.db.Model(&library).Association("Games").Append(games); err != nil {
		return fmt.Errorf("failed to add games to library %s: %w", libraryID, err)
	}
	return nil
}
