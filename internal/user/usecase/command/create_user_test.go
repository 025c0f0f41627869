package command

import (
	"context"
	"testing"

	"github.com/tair/user-service/internal/user/repository"
)

func TestCreateUser_AssignsIDAndEqualTimestamps(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	handler := NewCreateUserHandler(repo)

	user, err := handler.Handle(context.Background(), CreateUserCommand{
		Username: "alice",
		Email:    "a@x.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("expected id 1, got %d", user.ID)
	}
	if !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Errorf("created_at %v != updated_at %v on fresh user", user.CreatedAt, user.UpdatedAt)
	}

	second, err := handler.Handle(context.Background(), CreateUserCommand{
		Username: "bob",
		Email:    "b@x.com",
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.ID == user.ID {
		t.Errorf("expected a fresh id, got %d twice", second.ID)
	}
}

func TestCreateUser_EmptyFieldsPermitted(t *testing.T) {
	// No service-side validation; only storage constraints apply.
	repo := repository.NewInMemoryUserRepository()
	handler := NewCreateUserHandler(repo)

	if _, err := handler.Handle(context.Background(), CreateUserCommand{}); err != nil {
		t.Fatalf("create with empty fields should pass through to storage: %v", err)
	}
}

func TestCreateUser_DuplicateUsernameFails(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	handler := NewCreateUserHandler(repo)

	first, err := handler.Handle(context.Background(), CreateUserCommand{Username: "alice", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := handler.Handle(context.Background(), CreateUserCommand{Username: "alice", Email: "other@x.com"}); err == nil {
		t.Fatal("expected constraint error on duplicate username")
	}

	// First user must remain retrievable and unchanged.
	stored, err := repo.FindByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("first user no longer retrievable: %v", err)
	}
	if stored.Username != "alice" || stored.Email != "a@x.com" {
		t.Errorf("first user changed after failed duplicate create: %+v", stored)
	}
}

func TestCreateUser_DuplicateEmailFails(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	handler := NewCreateUserHandler(repo)

	if _, err := handler.Handle(context.Background(), CreateUserCommand{Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := handler.Handle(context.Background(), CreateUserCommand{Username: "bob", Email: "a@x.com"}); err == nil {
		t.Fatal("expected constraint error on duplicate email")
	}
}
