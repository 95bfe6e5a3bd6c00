package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// EventPublisher publishes blog lifecycle events.
type EventPublisher interface {
	PublishBlogEvent(event models.BlogEvent) error
}

// BlogPolicy holds the switchable authorization rules of BlogService.
type BlogPolicy struct {
	// RequireOwnerForUpdate makes updates authenticate and check ownership like deletes.
	RequireOwnerForUpdate bool
}

// BlogService handles business logic related to blogs.
type BlogService struct {
	blogRepo  repositories.BlogRepository
	userRepo  repositories.UserRepository
	guard     *Guard
	validate  *validator.Validate
	publisher EventPublisher // may be nil
	policy    BlogPolicy
}

// NewBlogService creates a new BlogService. publisher may be nil.
func NewBlogService(blogRepo repositories.BlogRepository, userRepo repositories.UserRepository, guard *Guard, publisher EventPublisher, policy BlogPolicy) *BlogService {
	return &BlogService{
		blogRepo:  blogRepo,
		userRepo:  userRepo,
		guard:     guard,
		validate:  newValidator(),
		publisher: publisher,
		policy:    policy,
	}
}

// ListBlogs retrieves all blogs with their owners attached.
func (s *BlogService) ListBlogs() ([]models.Blog, error) {
	blogs, err := s.blogRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	return blogs, nil
}

// GetBlog retrieves a single blog by its ID.
func (s *BlogService) GetBlog(id string) (*models.Blog, error) {
	return s.blogRepo.GetByID(id)
}

// CreateBlog stores a new blog owned by the account the credential belongs to.
func (s *BlogService) CreateBlog(credential string, draft models.BlogDraft) (*models.Blog, error) {
	actorID, err := s.guard.Authenticate(credential)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(s.validate, draft); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, validationError("owner account %s does not exist", actorID)
		}
		return nil, fmt.Errorf("failed to load blog owner: %w", err)
	}

	blog := &models.Blog{
		Title:  draft.Title,
		Author: draft.Author,
		URL:    draft.URL,
		UserID: owner.ID,
	}
	if draft.Likes != nil {
		blog.Likes = int(*draft.Likes)
	}

	// The owner's blog list is derived from blogs.user_id, so this single
	// insert is the only write.
	if err := s.blogRepo.Create(blog); err != nil {
		return nil, fmt.Errorf("failed to create blog in repository: %w", err)
	}
	blog.User = &models.Owner{ID: owner.ID, Username: owner.Username, Name: owner.Name}

	s.publish(models.EventBlogCreated, blog)
	return blog, nil
}

// UpdateBlog changes the supplied fields of a blog. The credential is only
// consulted when the policy requires ownership for updates.
func (s *BlogService) UpdateBlog(credential, id string, patch models.BlogPatch) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s.policy.RequireOwnerForUpdate {
		if err := s.authorize(credential, blog); err != nil {
			return nil, err
		}
	}

	if err := s.validatePatch(patch); err != nil {
		return nil, err
	}

	if err := s.blogRepo.Update(id, patch); err != nil {
		return nil, err
	}

	updated, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.publish(models.EventBlogUpdated, updated)
	return updated, nil
}

// DeleteBlog removes a blog. Only its owner may delete it.
func (s *BlogService) DeleteBlog(credential, id string) error {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return err
	}

	actorID, err := s.guard.Authenticate(credential)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeOwner(actorID, blog); err != nil {
		return err
	}

	if err := s.blogRepo.Delete(id); err != nil {
		return err
	}

	s.publish(models.EventBlogDeleted, blog)
	return nil
}

// authorize checks the credential, then ownership of blog.
func (s *BlogService) authorize(credential string, blog *models.Blog) error {
	actorID, err := s.guard.Authenticate(credential)
	if err != nil {
		return err
	}
	return s.guard.AuthorizeOwner(actorID, blog)
}

func (s *BlogService) validatePatch(patch models.BlogPatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return validationError("`title` must not be empty")
	}
	if patch.URL != nil && *patch.URL == "" {
		return validationError("`url` must not be empty")
	}
	return validateStruct(s.validate, patch)
}

func (s *BlogService) publish(eventType string, blog *models.Blog) {
	if s.publisher == nil {
		return
	}
	event := models.BlogEvent{
		Type:       eventType,
		BlogID:     blog.ID,
		UserID:     blog.UserID,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishBlogEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for blog %s: %v", eventType, blog.ID, err)
	}
}
