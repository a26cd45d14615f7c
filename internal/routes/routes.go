package routes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/urban-loft/urban_loft/internal/auth"
	"github.com/urban-loft/urban_loft/internal/catalog"
	"github.com/urban-loft/urban_loft/internal/config"
	"github.com/urban-loft/urban_loft/internal/middleware"
	"github.com/urban-loft/urban_loft/internal/notification"
	"github.com/urban-loft/urban_loft/internal/user"
)

const (
	loginAttemptsPerMin = 5
	idempotencyTTL      = 24 * time.Hour
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database (development only) the in-memory stores are used instead.
func Setup(app *fiber.App, d Deps) error {
	if d.DB == nil && !d.Cfg.IsDev() {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, idempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	})

	var userRepo user.Repository
	var catalogRepo catalog.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		catalogRepo = catalog.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		catalogRepo = catalog.NewMemoryRepository(devProducts()...)
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	userSvc := user.NewService(userRepo, notifier)
	tokenSvc := auth.NewService(d.Cfg)
	catalogSvc := catalog.NewService(catalogRepo, d.Cache, d.Logger)

	authHandler := auth.NewHandler(userSvc, tokenSvc, userRepo)
	catalogHandler := catalog.NewHandler(catalogSvc)

	api := app.Group("/api")
	RegisterAuthRoutes(api, authHandler, tokenSvc, middleware.LoginRateLimit(d.Cache, loginAttemptsPerMin))
	RegisterProductRoutes(api, catalogHandler)

	return nil
}

// devProducts seeds the in-memory catalog so a database-less development
// server still renders a storefront.
func devProducts() []catalog.Product {
	now := time.Now().UTC()
	return []catalog.Product{
		{ID: 1, Name: "Loft Sofa", Description: "Three-seater in slate grey", Price: 899.99, ImageURL: "/images/sofa.jpg", Available: true, StockLevel: 4, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: 2, Name: "Oak Dining Table", Description: "Solid oak, seats six", Price: 649.00, ImageURL: "/images/table.jpg", Available: true, StockLevel: 2, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 3, Name: "Wool Rug", Description: "Hand woven, 200x300", Price: 120.00, ImageURL: "/images/rug.jpg", Available: true, StockLevel: 12, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: 4, Name: "Arc Floor Lamp", Description: "Brushed brass finish", Price: 75.50, ImageURL: "/images/lamp.jpg", Available: true, StockLevel: 0, CreatedAt: now},
	}
}
