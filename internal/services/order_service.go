package services

import (
	"errors"
	"fmt"

	"vapor/internal/dto"
	"vapor/internal/events"
	"vapor/internal/models"
	"vapor/internal/repositories"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	gameRepo  repositories.GameRepository
	cartRepo  repositories.CartRepository
	publisher events.Publisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, gameRepo repositories.GameRepository, cartRepo repositories.CartRepository, publisher events.Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		gameRepo:  gameRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders without games.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetAllOrdersWithGames retrieves all orders with their games.
func (s *OrderService) GetAllOrdersWithGames() ([]models.Order, error) {
	return s.orderRepo.GetAllWithGames()
}

// GetOrderByID retrieves a single order with its games.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByUser retrieves the orders placed by userID.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// CreateOrder places an order on behalf of userID, the authenticated caller.
// CartGuid, when given, must be the caller's own cart. Games given by GameGuid
// must exist; games without one are added to the catalogue. With ReadCart the
// games in the cart are ordered too and the cart is emptied.
func (s *OrderService) CreateOrder(userID string, req dto.OrderDTO) (*models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: acting user is required", ErrValidation)
	}
	if err := s.checkCartOwner(userID, req.CartGuid); err != nil {
		return nil, err
	}

	order := dto.ToOrder(req)
	order.UserID = userID

	var games []models.Game
	if req.ReadCart {
		cart, err := s.cartRepo.GetByID(req.CartGuid)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: cart %s does not exist", ErrValidation, req.CartGuid)
			}
			return nil, err
		}
		games = append(games, cart.Games...)
	}

	for _, g := range order.Games {
		if g.ID == "" {
			games = append(games, g)
			continue
		}
		existing, err := s.gameRepo.GetByID(g.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: game %s does not exist", ErrValidation, g.ID)
			}
			return nil, err
		}
		games = append(games, *existing)
	}

	order.Games = uniqueGames(games)
	for _, g := range order.Games {
		order.Price += g.Price
	}

	save := s.orderRepo.Create
	if req.ReadCart {
		save = s.orderRepo.Checkout
	}
	if err := save(&order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	gameIDs := make([]string, 0, len(order.Games))
	for _, g := range order.Games {
		gameIDs = append(gameIDs, g.ID)
	}
	publish(s.publisher, events.OrderCreated, events.OrderCreatedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		GameIDs: gameIDs,
		Price:   order.Price,
	})

	return &order, nil
}

// checkCartOwner rejects a cart that is not the user's. An empty cartID is left
// to the schema, which refuses it.
func (s *OrderService) checkCartOwner(userID, cartID string) error {
	if cartID == "" {
		return nil
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user %s does not exist", ErrValidation, userID)
		}
		return err
	}
	if user.CartID == nil || *user.CartID != cartID {
		return fmt.Errorf("%w: cart %s does not belong to user %s", ErrValidation, cartID, userID)
	}
	return nil
}

// uniqueGames drops repeated catalogue games, keeping the first occurrence.
func uniqueGames(games []models.Game) []models.Game {
	seen := make(map[string]bool, len(games))
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.ID != "" {
			if seen[g.ID] {
				continue
			}
			seen[g.ID] = true
		}
		out = append(out, g)
	}
	return out
}
