package command

import (
	"context"
	"time"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/pkg/logger"
)

// CreateUserCommand represents the command to create a user
type CreateUserCommand struct {
	Username string
	Email    string
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command. Uniqueness of username and email
// is left to the storage constraints; no other validation is applied.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	logger.Info(ctx).Str("username", cmd.Username).Msg("Creating user")

	// Single now so created_at == updated_at on a fresh row.
	now := time.Now().UTC()
	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		logger.Error(ctx).Err(err).Str("username", cmd.Username).Msg("Failed to create user")
		return nil, err
	}

	logger.Info(ctx).Uint("user_id", user.ID).Msg("User created successfully")
	return user, nil
}
