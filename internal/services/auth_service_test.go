package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/repositories"
	"bloglist/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	req := models.RegisterRequest{Username: "testuser", Name: "Test User", Password: "password123"}

	// Test successful registration
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFound("user testuser")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.RegisterUser(req)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "Test User", user.Name)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(req)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "must be unique")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateOnInsert(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	// Another registration took the name between lookup and insert
	mockRepo.On("GetByUsername", "racer").Return(nil, notFound("user racer")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("failed to create user racer: %w", repositories.ErrDuplicate)).Once()

	_, err := authService.RegisterUser(models.RegisterRequest{Username: "racer", Password: "secret"})
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "must be unique")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_Validation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	tests := []struct {
		name    string
		req     models.RegisterRequest
		message string
	}{
		{"missing password", models.RegisterRequest{Username: "test5", Name: "test5"}, "missing password"},
		{"one character password", models.RegisterRequest{Username: "test5", Password: "t"}, "too short password (>3)"},
		{"three character password", models.RegisterRequest{Username: "test5", Password: "abc"}, "too short password (>3)"},
		{"missing username", models.RegisterRequest{Password: "secret"}, "`username` is required"},
		{"short username", models.RegisterRequest{Username: "ab", Password: "secret"}, "minimum allowed length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.RegisterUser(tt.req)
			assert.ErrorIs(t, err, services.ErrValidation)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	// Nothing may reach the repository when validation fails.
	mockRepo.AssertNotCalled(t, "GetByUsername", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterUser_FourCharacterPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	mockRepo.On("GetByUsername", "test5").Return(nil, notFound("user test5")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	_, err := authService.RegisterUser(models.RegisterRequest{Username: "test5", Password: "abcd"})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:           "user-123",
		Username:     "testuser",
		Name:         "Test User",
		PasswordHash: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	resp, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "testuser", resp.Username)
	assert.Equal(t, "Test User", resp.Name)

	parsedToken, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)
	assert.Contains(t, err.Error(), "invalid username or password")
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, notFound("user nonexistentuser")).Once()
	_, err = authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	actorID, err := authService.Verify(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", actorID)

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token signed with another secret
	foreign, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.Verify(foreign)
	assert.Error(t, err)

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token without a user id
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	anonymousString, _ := anonymous.SignedString([]byte(testJWTSecret))
	_, err = authService.Verify(anonymousString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing user_id")
}
