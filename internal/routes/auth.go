package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urban-loft/urban_loft/internal/auth"
	"github.com/urban-loft/urban_loft/internal/middleware"
)

// RegisterAuthRoutes wires registration, login and the token-guarded
// profile endpoint.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, tokens *auth.Service, rateLimiter fiber.Handler) {
	r.Post("/register", h.Register)
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Get("/me", middleware.TokenAuth(tokens), h.Me)
}
