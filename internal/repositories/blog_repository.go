package repositories

import "bloglist/internal/models"

// BlogRepository defines the interface for blog data access.
// GetAll and GetByID attach the owner's public fields to every blog.
type BlogRepository interface {
	GetAll() ([]models.Blog, error)
	GetByID(id string) (*models.Blog, error)
	Create(blog *models.Blog) error
	Update(id string, patch models.BlogPatch) error
	Delete(id string) error
}
