package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vapor/internal/dto"
	"vapor/internal/middleware"
	"vapor/internal/services"
)

// UserHandler serves the authenticated caller's profile and cart.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/User")
	userRoutes.Get("/me", chain(auth, h.HandleGetMe)...)
	userRoutes.Post("/cart/:gameGuid", chain(auth, h.HandleAddToCart)...)
}

func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.service.GetProfile(userID)
	if err != nil {
		return failWith(c, err, "retrieve user")
	}
	return ok(c, "User returned.", "User", dto.FromUser(*user))
}

func (h *UserHandler) HandleAddToCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	cart, err := h.service.AddToCart(userID, c.Params("gameGuid"))
	if err != nil {
		return failWith(c, err, "add game to cart")
	}
	return ok(c, "Game added to cart.", "Cart", dto.FromCart(*cart))
}
