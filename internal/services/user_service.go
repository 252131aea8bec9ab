package services

import (
	"fmt"

	"vapor/internal/models"
	"vapor/internal/repositories"
)

// UserService serves the authenticated user's own profile and cart.
type UserService struct {
	userRepo repositories.UserRepository
	gameRepo repositories.GameRepository
	cartRepo repositories.CartRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, gameRepo repositories.GameRepository, cartRepo repositories.CartRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		cartRepo: cartRepo,
	}
}

// GetProfile retrieves a user with roles, cart, library and orders.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetProfile(userID)
}

// AddToCart puts a catalogue game into the user's cart and returns the updated cart.
func (s *UserService) AddToCart(userID, gameID string) (*models.Cart, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.CartID == nil {
		return nil, fmt.Errorf("%w: user %s has no cart", ErrValidation, userID)
	}

	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddGame(*user.CartID, game); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(*user.CartID)
}
