package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
)

func TestGetUser_Found(t *testing.T) {
	now := time.Now().UTC()
	repo := repository.NewInMemoryUserRepository(domain.User{
		ID: 7, Username: "alice", Email: "a@x.com", CreatedAt: now, UpdatedAt: now,
	})
	handler := NewGetUserHandler(repo)

	user, err := handler.Handle(context.Background(), GetUserQuery{ID: 7})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	handler := NewGetUserHandler(repo)

	_, err := handler.Handle(context.Background(), GetUserQuery{ID: 42})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsers_EmptyIsNotAnError(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	handler := NewListUsersHandler(repo)

	users, err := handler.Handle(context.Background(), ListUsersQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if users == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestListUsers_ReturnsAll(t *testing.T) {
	now := time.Now().UTC()
	repo := repository.NewInMemoryUserRepository(
		domain.User{ID: 1, Username: "alice", Email: "a@x.com", CreatedAt: now, UpdatedAt: now},
		domain.User{ID: 2, Username: "bob", Email: "b@x.com", CreatedAt: now, UpdatedAt: now},
	)
	handler := NewListUsersHandler(repo)

	users, err := handler.Handle(context.Background(), ListUsersQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
