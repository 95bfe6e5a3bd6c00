package repositories

import (
	"errors"
	"fmt"

	"bloglist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Seq == 0 {
		user.Seq = nextSeq()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.Blogs = []models.BlogSummary{}
	return nil
}

// GetAll retrieves every user together with the blogs they own.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("seq ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	if err := r.attachBlogs(users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	users := []models.User{user}
	if err := r.attachBlogs(users); err != nil {
		return nil, err
	}
	return &users[0], nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	users := []models.User{user}
	if err := r.attachBlogs(users); err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (r *GORMUserRepository) attachBlogs(users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].ID
		users[i].Blogs = []models.BlogSummary{}
	}

	var summaries []models.BlogSummary
	err := r.db.Model(&models.Blog{}).
		Select("id", "title", "author", "url", "user_id").
		Where("user_id IN ?", ids).
		Order("seq ASC").
		Find(&summaries).Error
	if err != nil {
		return fmt.Errorf("failed to load blogs for users: %w", err)
	}

	index := make(map[string]int, len(users))
	for i := range users {
		index[users[i].ID] = i
	}
	for _, s := range summaries {
		if i, ok := index[s.UserID]; ok {
			users[i].Blogs = append(users[i].Blogs, s)
		}
	}
	return nil
}
