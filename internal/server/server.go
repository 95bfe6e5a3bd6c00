package server

import (
	"time"

	"bloglist/internal/config"
	"bloglist/internal/database"
	"bloglist/internal/handlers"
	"bloglist/internal/metrics"
	"bloglist/internal/middleware"
	"bloglist/internal/repositories"
	"bloglist/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Store bundles the repositories the app is built on.
type Store struct {
	Users repositories.UserRepository
	Blogs repositories.BlogRepository
}

// OpenStore returns the repositories selected by cfg.DatabaseDriver.
func OpenStore(cfg *config.Config) (*Store, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		mem := repositories.NewMemoryStore()
		return &Store{Users: mem.Users(), Blogs: mem.Blogs()}, nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return &Store{
		Users: repositories.NewGORMUserRepository(db),
		Blogs: repositories.NewGORMBlogRepository(db),
	}, nil
}

// New builds the fiber app. publisher may be nil to disable blog events.
func New(cfg *config.Config, store *Store, publisher services.EventPublisher) *fiber.App {
	// --- Services ---
	authService := services.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenTTL)
	guard := services.NewGuard(authService)
	blogService := services.NewBlogService(store.Blogs, store.Users, guard, publisher, services.BlogPolicy{
		RequireOwnerForUpdate: cfg.RequireOwnerForUpdate,
	})
	userService := services.NewUserService(store.Users)

	// --- Handlers ---
	blogHandler := handlers.NewBlogHandler(blogService)
	userHandler := handlers.NewUserHandler(authService, userService)
	authHandler := handlers.NewAuthHandler(authService)
	statsHandler := handlers.NewStatsHandler(blogService)

	app := fiber.New(fiber.Config{AppName: "bloglist"})
	httpMetrics := metrics.NewHTTPMetrics()

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(httpMetrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})
	app.Get("/metrics", httpMetrics.Handler())

	// --- API Routes ---
	api := app.Group("/api", middleware.TokenExtractor())
	blogHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	statsHandler.RegisterRoutes(api)

	return app
}
