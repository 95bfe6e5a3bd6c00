package repositories

import (
	"errors"
	"fmt"

	"bloglist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBlogRepository is a GORM implementation of BlogRepository.
type GORMBlogRepository struct {
	db *gorm.DB
}

// NewGORMBlogRepository creates a new instance of GORMBlogRepository.
func NewGORMBlogRepository(db *gorm.DB) *GORMBlogRepository {
	return &GORMBlogRepository{
		db: db,
	}
}

// GetAll retrieves all blogs in creation order.
func (r *GORMBlogRepository) GetAll() ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.Order("seq ASC").Order("id ASC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all blogs: %w", err)
	}
	if err := r.attachOwners(blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetByID retrieves a single blog by its ID from the database.
func (r *GORMBlogRepository) GetByID(id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blog with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blog by ID %s: %w", id, err)
	}
	blogs := []models.Blog{blog}
	if err := r.attachOwners(blogs); err != nil {
		return nil, err
	}
	return &blogs[0], nil
}

// Create creates a new blog in the database.
func (r *GORMBlogRepository) Create(blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}
	if blog.Seq == 0 {
		blog.Seq = nextSeq()
	}
	if err := r.db.Create(blog).Error; err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// Update writes the supplied fields of patch to the blog with the given ID.
func (r *GORMBlogRepository) Update(id string, patch models.BlogPatch) error {
	if patch.Empty() {
		var count int64
		if err := r.db.Model(&models.Blog{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to update blog: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("blog with ID %s not updated: %w", id, ErrNotFound)
		}
		return nil
	}

	res := r.db.Model(&models.Blog{}).Where("id = ?", id).Updates(patch.Columns())
	if res.Error != nil {
		return fmt.Errorf("failed to update blog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blog with ID %s not updated: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a blog by its ID from the database.
func (r *GORMBlogRepository) Delete(id string) error {
	res := r.db.Delete(&models.Blog{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete blog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blog with ID %s not deleted: %w", id, ErrNotFound)
	}
	return nil
}

// attachOwners loads {id, username, name} of every referenced user in one query.
func (r *GORMBlogRepository) attachOwners(blogs []models.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		if !seen[b.UserID] {
			seen[b.UserID] = true
			ids = append(ids, b.UserID)
		}
	}

	var owners []models.Owner
	err := r.db.Model(&models.User{}).
		Select("id", "username", "name").
		Where("id IN ?", ids).
		Find(&owners).Error
	if err != nil {
		return fmt.Errorf("failed to load blog owners: %w", err)
	}

	byID := make(map[string]models.Owner, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}
	for i := range blogs {
		if o, ok := byID[blogs[i].UserID]; ok {
			owner := o
			blogs[i].User = &owner
		}
	}
	return nil
}
