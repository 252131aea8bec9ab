package handlers

import (
	"fmt"

	"vapor/internal/dto"
	"vapor/internal/middleware"
	"vapor/internal/models"
	"vapor/internal/repositories"
	"vapor/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. Every route except Test1 goes through auth;
// the listings of all orders are for admins, and order creation additionally goes through write.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth, write fiber.Handler) {
	admin := middleware.RequireRole(models.RoleAdmin)

	orderRoutes := router.Group("/Order")
	orderRoutes.Get("/Test1", h.HandleTest1)
	orderRoutes.Get("/", chain(auth, admin, h.HandleGetOrders)...)
	orderRoutes.Get("/withgames", chain(auth, admin, h.HandleGetOrdersWithGames)...)
	orderRoutes.Get("/user/:userGuid", chain(auth, h.HandleGetOrdersByUser)...)
	orderRoutes.Get("/:orderGuid", chain(auth, h.HandleGetOrderByID)...)
	orderRoutes.Post("/", chain(auth, write, h.HandleCreateOrder)...)
}

// HandleTest1 is a liveness check scoped to the order routes.
func (h *OrderHandler) HandleTest1(c *fiber.Ctx) error {
	return c.SendString("hello from OrderController")
}

// HandleGetOrders lists every order without games.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return failWith(c, err, "retrieve orders")
	}
	return ok(c, "All Order items returned.", "Orders", dto.FromOrders(orders))
}

// HandleGetOrdersWithGames lists every order with its games.
func (h *OrderHandler) HandleGetOrdersWithGames(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrdersWithGames()
	if err != nil {
		return failWith(c, err, "retrieve orders")
	}
	return ok(c, "All Order items with games returned.", "Orders", dto.FromOrders(orders))
}

// HandleGetOrdersByUser lists the orders of one user. Users may list only their own.
func (h *OrderHandler) HandleGetOrdersByUser(c *fiber.Ctx) error {
	userGuid := c.Params("userGuid")
	if userGuid != middleware.UserID(c) && !middleware.HasRole(c, models.RoleAdmin) {
		return fail(c, fiber.StatusForbidden, "Forbidden")
	}
	orders, err := h.service.GetOrdersByUser(userGuid)
	if err != nil {
		return failWith(c, err, "retrieve orders")
	}
	return ok(c, "Order items for user returned.", "Orders", dto.FromOrders(orders))
}

// HandleGetOrderByID returns one order with its games, or 404. Another user's
// order is reported as missing unless the caller is an admin.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderGuid := c.Params("orderGuid")
	order, err := h.service.GetOrderByID(orderGuid)
	if err != nil {
		return failWith(c, err, "retrieve order")
	}
	if order.UserID != middleware.UserID(c) && !middleware.HasRole(c, models.RoleAdmin) {
		return failWith(c, fmt.Errorf("order with ID %s: %w", orderGuid, repositories.ErrNotFound), "retrieve order")
	}
	return ok(c, "Order returned.", "Order", dto.FromOrder(*order))
}

// HandleCreateOrder places an order for the authenticated caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.OrderDTO
	if next, err := parseBody(c, nil, &req); !next {
		return err
	}

	order, err := h.service.CreateOrder(userID, req)
	if err != nil {
		return failWith(c, err, "create order")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"Success":   true,
		"Message":   "Order created.",
		"UserGuid":  order.UserID,
		"OrderGuid": order.ID,
		"Order":     dto.FromOrder(*order),
	})
}
