package repositories

import (
	"fmt"
	"sync"
	"time"

	"bloglist/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory backing store shared by MemoryUserRepository and
// MemoryBlogRepository, so blogs can see their owners and users their blogs.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]models.User
	userOrder []string
	blogs     map[string]models.Blog
	blogOrder []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
		blogs: make(map[string]models.Blog),
	}
}

// Users returns a UserRepository backed by the store.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

// Blogs returns a BlogRepository backed by the store.
func (s *MemoryStore) Blogs() *MemoryBlogRepository {
	return &MemoryBlogRepository{store: s}
}

// blogsOf must be called with s.mu held.
func (s *MemoryStore) blogsOf(userID string) []models.BlogSummary {
	summaries := []models.BlogSummary{}
	for _, id := range s.blogOrder {
		b := s.blogs[id]
		if b.UserID == userID {
			summaries = append(summaries, models.BlogSummary{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, UserID: b.UserID})
		}
	}
	return summaries
}

// withOwner must be called with s.mu held.
func (s *MemoryStore) withOwner(b models.Blog) models.Blog {
	if u, ok := s.users[b.UserID]; ok {
		b.User = &models.Owner{ID: u.ID, Username: u.Username, Name: u.Name}
	}
	return b
}

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	store *MemoryStore
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Seq == 0 {
		user.Seq = nextSeq()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Blogs = []models.BlogSummary{}

	stored := *user
	stored.Blogs = nil
	s.users[user.ID] = stored
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

// GetAll returns all users in creation order.
func (r *MemoryUserRepository) GetAll() ([]models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		u := s.users[id]
		u.Blogs = s.blogsOf(id)
		users = append(users, u)
	}
	return users, nil
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u.Blogs = s.blogsOf(u.ID)
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
}

// GetByID returns a user by ID.
func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	u.Blogs = s.blogsOf(id)
	return &u, nil
}

// MemoryBlogRepository is an in-memory implementation of BlogRepository.
type MemoryBlogRepository struct {
	store *MemoryStore
}

// GetAll returns all blogs in creation order.
func (r *MemoryBlogRepository) GetAll() ([]models.Blog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	blogs := make([]models.Blog, 0, len(s.blogOrder))
	for _, id := range s.blogOrder {
		blogs = append(blogs, s.withOwner(s.blogs[id]))
	}
	return blogs, nil
}

// GetByID returns a blog by its ID.
func (r *MemoryBlogRepository) GetByID(id string) (*models.Blog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, fmt.Errorf("blog with ID %s: %w", id, ErrNotFound)
	}
	b = s.withOwner(b)
	return &b, nil
}

// Create adds a new blog. The owning user must exist.
func (r *MemoryBlogRepository) Create(blog *models.Blog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[blog.UserID]; !ok {
		return fmt.Errorf("failed to create blog: owner %s does not exist", blog.UserID)
	}
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}
	if blog.Seq == 0 {
		blog.Seq = nextSeq()
	}
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	stored := *blog
	stored.User = nil
	s.blogs[blog.ID] = stored
	s.blogOrder = append(s.blogOrder, blog.ID)
	return nil
}

// Update modifies the supplied fields of an existing blog.
func (r *MemoryBlogRepository) Update(id string, patch models.BlogPatch) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return fmt.Errorf("blog with ID %s not updated: %w", id, ErrNotFound)
	}
	patch.Apply(&b)
	b.UpdatedAt = time.Now()
	s.blogs[id] = b
	return nil
}

// Delete removes a blog by its ID.
func (r *MemoryBlogRepository) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return fmt.Errorf("blog with ID %s not deleted: %w", id, ErrNotFound)
	}
	delete(s.blogs, id)
	for i, bid := range s.blogOrder {
		if bid == id {
			s.blogOrder = append(s.blogOrder[:i], s.blogOrder[i+1:]...)
			break
		}
	}
	return nil
}
