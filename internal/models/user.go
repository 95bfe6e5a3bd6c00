package models

import "time"

// User represents an account that owns blogs.
type User struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string        `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Name         string        `json:"name" gorm:"type:varchar(255)"`
	PasswordHash string        `json:"-" gorm:"type:varchar(255);not null"` // No json tag for security
	Blogs        []BlogSummary `json:"blogs" gorm:"-"`                      // Rebuilt from blogs.user_id on read
	Seq          int64         `json:"-" gorm:"index;not null;default:0"`
	CreatedAt    time.Time     `json:"-"`
	UpdatedAt    time.Time     `json:"-"`
}

// RegisterRequest is the payload accepted when creating an account.
// The password is checked by the auth service before hashing.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
