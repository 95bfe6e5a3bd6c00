package services

import (
	"fmt"

	"bloglist/internal/models"
	"bloglist/internal/repositories"
)

// UserService handles read access to accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// ListUsers returns every account with the blogs it owns.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
