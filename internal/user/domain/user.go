package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound signals that no user row matches the requested id.
// It is a distinct outcome, not a storage failure: callers translate it
// to 404 while every other repository error maps to 500.
var ErrUserNotFound = errors.New("user not found")

// User represents the user entity (domain model)
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the payload for creating a user. No validation is
// applied beyond the storage constraints (NOT NULL, UNIQUE).
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateUserRequest is the payload for a partial update. A nil field means
// the stored value is kept.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}
