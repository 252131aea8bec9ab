package services

import (
	"time"

	"vapor/internal/dto"
	"vapor/internal/models"
	"vapor/internal/repositories"
)

// GameService handles business logic related to the game catalogue.
type GameService struct {
	repo repositories.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(repo repositories.GameRepository) *GameService {
	return &GameService{
		repo: repo,
	}
}

// GetAllGames retrieves all games.
func (s *GameService) GetAllGames() ([]models.Game, error) {
	return s.repo.GetAll()
}

// GetGameByID retrieves a single game by its ID.
func (s *GameService) GetGameByID(id string) (*models.Game, error) {
	return s.repo.GetByID(id)
}

// CreateGame adds a game to the catalogue. The identity is always assigned
// here; a missing published date defaults to now.
func (s *GameService) CreateGame(req dto.GameDTO) (*models.Game, error) {
	game := dto.ToGame(req)
	game.ID = ""
	if game.Published.IsZero() {
		game.Published = time.Now().UTC()
	}
	if err := s.repo.Create(&game); err != nil {
		return nil, err
	}
	return &game, nil
}
