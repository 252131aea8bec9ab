package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"vapor/internal/events"
	"vapor/internal/models"
	"vapor/internal/repositories"
)

// LibraryService keeps user libraries in sync with placed orders.
type LibraryService struct {
	userRepo    repositories.UserRepository
	gameRepo    repositories.GameRepository
	libraryRepo repositories.LibraryRepository
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(userRepo repositories.UserRepository, gameRepo repositories.GameRepository, libraryRepo repositories.LibraryRepository) *LibraryService {
	return &LibraryService{
		userRepo:    userRepo,
		gameRepo:    gameRepo,
		libraryRepo: libraryRepo,
	}
}

// HandleOrderCreated adds the games of an order.created event to the buyer's
// library. Redelivered events are harmless.
func (s *LibraryService) HandleOrderCreated(ctx context.Context, body []byte) error {
	var event events.OrderCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", events.OrderCreated, err)
	}

	user, err := s.userRepo.GetByID(event.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Order %s references unknown user %s, skipping", event.OrderID, event.UserID)
			return nil
		}
		return err
	}
	if user.LibraryID == nil {
		log.Printf("User %s has no library, skipping order %s", user.ID, event.OrderID)
		return nil
	}

	games := make([]models.Game, 0, len(event.GameIDs))
	for _, id := range event.GameIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		game, err := s.gameRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				log.Printf("Order %s references unknown game %s, skipping it", event.OrderID, id)
				continue
			}
			return err
		}
		games = append(games, *game)
	}

	return s.libraryRepo.AddGames(*user.LibraryID, games)
}
