package query

import (
	"context"
	"errors"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/pkg/logger"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	ID uint
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	logger.Info(ctx).Uint("user_id", q.ID).Msg("Fetching user")

	user, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Info(ctx).Uint("user_id", q.ID).Msg("No user found")
			return nil, err
		}
		logger.Error(ctx).Err(err).Uint("user_id", q.ID).Msg("Failed to fetch user")
		return nil, err
	}

	return user, nil
}
