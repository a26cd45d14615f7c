package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the product catalog endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type listResponse struct {
	Success  bool      `json:"success"`
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

type productResponse struct {
	Success bool    `json:"success"`
	Product Product `json:"product"`
}

// List serves GET /api/products with limit/offset pagination.
func (h *Handler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	offset := c.QueryInt("offset", 0)

	products, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"general": "Failed to retrieve products"})
	}

	return c.Status(http.StatusOK).JSON(listResponse{Success: true, Count: len(products), Products: products})
}

// Featured serves GET /api/products/featured.
func (h *Handler) Featured(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultFeaturedLimit)

	products, err := h.service.Featured(c.UserContext(), limit)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"general": "Failed to retrieve featured products"})
	}

	return c.Status(http.StatusOK).JSON(listResponse{Success: true, Count: len(products), Products: products})
}

// Get serves GET /api/products/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"general": "Valid product ID is required"})
	}

	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"general": "Product not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"general": "Failed to retrieve product"})
	}

	return c.Status(http.StatusOK).JSON(productResponse{Success: true, Product: product})
}
