package command

import (
	"context"
	"errors"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/pkg/logger"
)

// DeleteUserCommand represents the command to delete a user
type DeleteUserCommand struct {
	ID uint
}

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command. A missing id surfaces as
// domain.ErrUserNotFound, not as a storage failure.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	logger.Info(ctx).Uint("user_id", cmd.ID).Msg("Deleting user")

	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Info(ctx).Uint("user_id", cmd.ID).Msg("No user found to delete")
			return err
		}
		logger.Error(ctx).Err(err).Uint("user_id", cmd.ID).Msg("Failed to delete user")
		return err
	}

	logger.Info(ctx).Uint("user_id", cmd.ID).Msg("User deleted successfully")
	return nil
}
