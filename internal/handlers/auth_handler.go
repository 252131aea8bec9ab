package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vapor/internal/dto"
	"vapor/internal/services"
)

// AuthHandler handles HTTP requests for registration and token issuance.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes. limit, when set, guards every route.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, limit fiber.Handler) {
	authRoutes := router.Group("/Auth")
	authRoutes.Post("/Register", chain(limit, h.HandleRegister)...)
	authRoutes.Post("/CreateTokenMethod1", chain(limit, h.HandleCreateTokenMethod1)...)
	authRoutes.Post("/CreateTokenMethod2", chain(limit, h.HandleCreateTokenMethod2)...)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req dto.RegisterDTO
	if next, err := parseBody(c, h.validate, &req); !next {
		return err
	}

	user, err := h.authService.RegisterUser(req)
	if err != nil {
		return failWith(c, err, "register user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"Success": true,
		"Message": "User registered successfully",
		"User":    dto.FromUser(*user),
	})
}

// HandleCreateTokenMethod1 issues an HS256 token valid for three hours.
func (h *AuthHandler) HandleCreateTokenMethod1(c *fiber.Ctx) error {
	return h.createToken(c, services.TokenMethodHS256)
}

// HandleCreateTokenMethod2 issues an HS512 token valid for five minutes.
func (h *AuthHandler) HandleCreateTokenMethod2(c *fiber.Ctx) error {
	return h.createToken(c, services.TokenMethodHS512)
}

func (h *AuthHandler) createToken(c *fiber.Ctx, method services.TokenMethod) error {
	var req dto.CredentialsDTO
	if next, err := parseBody(c, h.validate, &req); !next {
		return err
	}

	token, err := h.authService.CreateToken(req.Email, req.Password, method)
	if err != nil {
		return failWith(c, err, "create token")
	}
	return ok(c, "Token created.", "Token", token)
}
