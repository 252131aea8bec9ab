package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vapor/internal/dto"
	"vapor/internal/middleware"
	"vapor/internal/models"
	"vapor/internal/services"
)

// GameHandler handles HTTP requests for the game catalogue.
type GameHandler struct {
	service  *services.GameService
	validate *validator.Validate
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service *services.GameService) *GameHandler {
	return &GameHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the game routes. Reads are public, creation is for admins.
func (h *GameHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	gameRoutes := router.Group("/Game")
	gameRoutes.Get("/", h.HandleGetGames)
	gameRoutes.Get("/:gameGuid", h.HandleGetGameByID)
	gameRoutes.Post("/", chain(auth, middleware.RequireRole(models.RoleAdmin), h.HandleCreateGame)...)
}

func (h *GameHandler) HandleGetGames(c *fiber.Ctx) error {
	games, err := h.service.GetAllGames()
	if err != nil {
		return failWith(c, err, "retrieve games")
	}
	return ok(c, "All Game items returned.", "Games", dto.FromGames(games))
}

func (h *GameHandler) HandleGetGameByID(c *fiber.Ctx) error {
	game, err := h.service.GetGameByID(c.Params("gameGuid"))
	if err != nil {
		return failWith(c, err, "retrieve game")
	}
	return ok(c, "Game returned.", "Game", dto.FromGame(*game))
}

func (h *GameHandler) HandleCreateGame(c *fiber.Ctx) error {
	var req dto.GameDTO
	if next, err := parseBody(c, h.validate, &req); !next {
		return err
	}

	game, err := h.service.CreateGame(req)
	if err != nil {
		return failWith(c, err, "create game")
	}
	return ok(c, "Game created.", "Game", dto.FromGame(*game))
}
