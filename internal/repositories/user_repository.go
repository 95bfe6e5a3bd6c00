package repositories

import "bloglist/internal/models"

// UserRepository defines the interface for user data access.
// Users returned by GetAll and GetByID carry their blogs, rebuilt from blog ownership.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
