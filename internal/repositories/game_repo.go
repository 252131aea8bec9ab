package repositories

import "vapor/internal/models"

// GameRepository defines the interface for game catalogue access.
type GameRepository interface {
	GetAll() ([]models.Game, error)
	GetByID(id string) (*models.Game, error)
	Create(game *models.Game) error
}
