package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urban-loft/urban_loft/internal/catalog"
)

// RegisterProductRoutes wires the catalog endpoints. The featured route must
// be registered ahead of the :id route so it is not captured as a parameter.
func RegisterProductRoutes(r fiber.Router, h *catalog.Handler) {
	r.Get("/products", h.List)
	r.Get("/products/featured", h.Featured)
	r.Get("/products/:id", h.Get)
}
