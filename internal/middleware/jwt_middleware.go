package middleware

import (
	"log"
	"strings"

	"vapor/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Keys under which AuthRequired stores the token claims in fiber.Ctx locals.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalEmail    = "email"
	LocalRoles    = "roles"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRoles, claims.Roles)

		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" outside AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// HasRole reports whether the authenticated user holds any of roles.
func HasRole(c *fiber.Ctx, roles ...string) bool {
	held, _ := c.Locals(LocalRoles).([]string)
	claims := services.Claims{Roles: held}
	return claims.HasRole(roles...)
}

// RequireRole lets the request through when the authenticated user holds any
// of roles and answers 403 otherwise. It must run after AuthRequired.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return unauthorized(c, "Unauthorized")
		}
		if !HasRole(c, roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"Success": false,
				"Message": "Forbidden",
			})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"Success": false,
		"Message": message,
	})
}
