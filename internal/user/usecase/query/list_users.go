package query

import (
	"context"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/pkg/logger"
)

// ListUsersQuery represents the query to list all users
type ListUsersQuery struct{}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query. An empty table yields an empty
// slice, never an error.
func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) ([]domain.User, error) {
	users, err := h.repo.FindAll(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to fetch users")
		return nil, err
	}

	logger.Info(ctx).Int("count", len(users)).Msg("Fetched users")
	return users, nil
}
