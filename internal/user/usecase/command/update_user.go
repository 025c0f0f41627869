package command

import (
	"context"
	"errors"
	"time"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/pkg/logger"
)

// UpdateUserCommand represents the command to partially update a user.
// Nil fields keep their stored value.
type UpdateUserCommand struct {
	ID       uint
	Username *string
	Email    *string
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command. The lookup and the write are two
// separate round trips, so concurrent updates to the same id can overwrite
// each other; this endpoint makes no atomicity guarantee.
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	logger.Info(ctx).Uint("user_id", cmd.ID).Msg("Updating user")

	user, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Info(ctx).Uint("user_id", cmd.ID).Msg("No user found to update")
			return nil, err
		}
		logger.Error(ctx).Err(err).Uint("user_id", cmd.ID).Msg("Failed to fetch user for update")
		return nil, err
	}

	if cmd.Username != nil {
		user.Username = *cmd.Username
	}
	if cmd.Email != nil {
		user.Email = *cmd.Email
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.repo.Update(ctx, user); err != nil {
		logger.Error(ctx).Err(err).Uint("user_id", cmd.ID).Msg("Failed to update user")
		return nil, err
	}

	logger.Info(ctx).Uint("user_id", user.ID).Msg("User updated successfully")
	return user, nil
}
