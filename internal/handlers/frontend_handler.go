package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// pages maps each frontend route to its HTML file.
var pages = map[string]string{
	"/":         "index.html",
	"/login":    "login.html",
	"/register": "register.html",
	"/store":    "store.html",
	"/library":  "library.html",
}

// FrontendHandler serves the static storefront pages.
type FrontendHandler struct {
	dir string
}

func NewFrontendHandler(dir string) *FrontendHandler {
	return &FrontendHandler{dir: dir}
}

func (h *FrontendHandler) RegisterRoutes(router fiber.Router) {
	for route, file := range pages {
		router.Get(route, h.page(file))
	}
	router.Static("/static", h.dir)
}

func (h *FrontendHandler) page(file string) fiber.Handler {
	path := filepath.Join(h.dir, file)
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}
