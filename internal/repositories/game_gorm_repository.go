package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vapor/internal/models"
)

// GORMGameRepository is a GORM implementation of GameRepository.
type GORMGameRepository struct {
	db *gorm.DB
}

// NewGORMGameRepository creates a new instance of GORMGameRepository.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

// GetAll retrieves all games from the database.
func (r *GORMGameRepository) GetAll() ([]models.Game, error) {
	games := []models.Game{}
	if err := r.db.Order("title").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to get all games: %w", err)
	}
	return games, nil
}

// GetByID retrieves a single game by its ID from the database.
func (r *GORMGameRepository) GetByID(id string) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}
	return &game, nil
}

// Create creates a new game in the database.
func (r *GORMGameRepository) Create(game *models.Game) error {
	if err := r.db.Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}
