package handlers

import (
	"bloglist/internal/services"
	"bloglist/internal/stats"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves aggregates over the current set of blogs.
type StatsHandler struct {
	blogService *services.BlogService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(blogService *services.BlogService) *StatsHandler {
	return &StatsHandler{
		blogService: blogService,
	}
}

// RegisterRoutes registers the stats routes.
func (h *StatsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stats", h.HandleGetStats)
}

// HandleGetStats summarizes a snapshot of all blogs.
func (h *StatsHandler) HandleGetStats(c *fiber.Ctx) error {
	blogs, err := h.blogService.ListBlogs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats.Summarize(blogs))
}
