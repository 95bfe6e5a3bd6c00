package handlers

import (
	"bloglist/internal/middleware"
	"bloglist/internal/models"
	"bloglist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BlogHandler handles HTTP requests for blogs.
type BlogHandler struct {
	service *services.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{
		service: service,
	}
}

// RegisterRoutes registers the blog routes. Authorization is decided by the
// service, so every route is public at the router level.
func (h *BlogHandler) RegisterRoutes(router fiber.Router) {
	blogRoutes := router.Group("/blogs")
	blogRoutes.Get("/", h.HandleGetBlogs)
	blogRoutes.Get("/:id", h.HandleGetBlogByID)
	blogRoutes.Post("/", h.HandleCreateBlog)
	blogRoutes.Put("/:id", h.HandleUpdateBlog)
	blogRoutes.Delete("/:id", h.HandleDeleteBlog)
}

// HandleGetBlogs returns every blog with its owner.
func (h *BlogHandler) HandleGetBlogs(c *fiber.Ctx) error {
	blogs, err := h.service.ListBlogs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(blogs)
}

// HandleGetBlogByID returns a single blog.
func (h *BlogHandler) HandleGetBlogByID(c *fiber.Ctx) error {
	blog, err := h.service.GetBlog(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(blog)
}

// HandleCreateBlog creates a blog owned by the caller.
func (h *BlogHandler) HandleCreateBlog(c *fiber.Ctx) error {
	var draft models.BlogDraft
	if err := c.BodyParser(&draft); err != nil {
		return invalidBody(c, err)
	}

	blog, err := h.service.CreateBlog(middleware.Token(c), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(blog)
}

// HandleUpdateBlog applies the supplied fields to a blog.
func (h *BlogHandler) HandleUpdateBlog(c *fiber.Ctx) error {
	var patch models.BlogPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}

	blog, err := h.service.UpdateBlog(middleware.Token(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(blog)
}

// HandleDeleteBlog deletes a blog owned by the caller.
func (h *BlogHandler) HandleDeleteBlog(c *fiber.Ctx) error {
	if err := h.service.DeleteBlog(middleware.Token(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
