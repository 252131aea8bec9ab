package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"vapor/internal/handlers"
	"vapor/internal/middleware"
	"vapor/internal/services"
)

const (
	authRequestsPerMinute  = 10
	writeRequestsPerMinute = 60
)

// Options are the HTTP settings shared by every service.
type Options struct {
	CORSOrigin string
	// DisableRateLimit removes the per-IP and per-user limiters, for tests.
	DisableRateLimit bool
}

// OrderServices are the dependencies of the order API.
type OrderServices struct {
	Auth   *services.AuthService
	Orders *services.OrderService
	Games  *services.GameService
}

// UserServices are the dependencies of the user API.
type UserServices struct {
	Auth  *services.AuthService
	Users *services.UserService
}

// NewOrderApp builds the order API: orders and the game catalogue.
func NewOrderApp(opts Options, svc OrderServices) *fiber.App {
	app := newApp("vapor-order", opts)
	auth := middleware.AuthRequired(svc.Auth)

	var write fiber.Handler
	if !opts.DisableRateLimit {
		write = middleware.RateLimitWrite(writeRequestsPerMinute)
	}

	handlers.NewOrderHandler(svc.Orders).RegisterRoutes(app, auth, write)
	handlers.NewGameHandler(svc.Games).RegisterRoutes(app, auth)
	return app
}

// NewUserApp builds the user API: registration, tokens, profile and cart.
func NewUserApp(opts Options, svc UserServices) *fiber.App {
	app := newApp("vapor-user", opts)
	auth := middleware.AuthRequired(svc.Auth)

	var limit fiber.Handler
	if !opts.DisableRateLimit {
		limit = middleware.RateLimitAuth(authRequestsPerMinute)
	}

	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(app, limit)
	handlers.NewUserHandler(svc.Users).RegisterRoutes(app, auth)
	return app
}

// NewFrontendApp serves the static pages from staticDir.
func NewFrontendApp(opts Options, staticDir string) *fiber.App {
	app := newApp("vapor-frontend", opts)
	handlers.NewFrontendHandler(staticDir).RegisterRoutes(app)
	return app
}

func newApp(name string, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.CORS(opts.CORSOrigin))

	app.Get("/health", handlers.Health(name))
	return app
}

// errorHandler renders errors that escape handlers, including unmatched routes,
// in the same envelope the handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"Success": false,
		"Message": message,
	})
}
