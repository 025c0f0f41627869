package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
)

// newTestRouter builds a router around the given repository with a fresh
// metrics registry, so tests never collide on prometheus registration.
func newTestRouter(repo domain.UserRepository) *mux.Router {
	handler := NewUserHandler(repo, prometheus.NewRegistry())
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) domain.User {
	t.Helper()
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("failed to decode user from %q: %v", rec.Body.String(), err)
	}
	return user
}

func TestUserLifecycle(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	// Create
	rec := doRequest(router, "POST", "/api/users", `{"username":"alice","email":"a@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decodeUser(t, rec)
	if created.ID != 1 {
		t.Errorf("create: expected id 1, got %d", created.ID)
	}
	if created.Username != "alice" || created.Email != "a@x.com" {
		t.Errorf("create: unexpected fields: %+v", created)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("create: timestamps differ: %v vs %v", created.CreatedAt, created.UpdatedAt)
	}

	// Partial update: email only
	rec = doRequest(router, "PUT", "/api/users/1", `{"email":"a2@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	updated := decodeUser(t, rec)
	if updated.Username != "alice" {
		t.Errorf("update: username should be untouched, got %q", updated.Username)
	}
	if updated.Email != "a2@x.com" {
		t.Errorf("update: email not updated, got %q", updated.Email)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("update: updated_at not later: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	// Delete
	rec = doRequest(router, "DELETE", "/api/users/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	var msg map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("delete: failed to decode body %q: %v", rec.Body.String(), err)
	}
	if msg["message"] != "User deleted successfully" {
		t.Errorf("delete: unexpected message %q", msg["message"])
	}

	// Get after delete
	rec = doRequest(router, "GET", "/api/users/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("get after delete: expected empty body, got %q", rec.Body.String())
	}
}

func TestListUsers_Empty(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	rec := doRequest(router, "GET", "/api/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestGetUser_InvalidID(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	rec := doRequest(router, "GET", "/api/users/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestCreateUser_InvalidBody(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	rec := doRequest(router, "POST", "/api/users", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestCreateUser_DuplicateIsOpaque500(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	rec := doRequest(router, "POST", "/api/users", `{"username":"alice","email":"a@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("first create: expected 200, got %d", rec.Code)
	}

	rec = doRequest(router, "POST", "/api/users", `{"username":"alice","email":"other@x.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("duplicate create: expected 500, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("duplicate create: storage detail leaked: %q", rec.Body.String())
	}

	// First user still retrievable unchanged.
	rec = doRequest(router, "GET", "/api/users/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first user gone after failed duplicate: %d", rec.Code)
	}
	user := decodeUser(t, rec)
	if user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("first user changed: %+v", user)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	rec := doRequest(router, "PUT", "/api/users/42", `{"username":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	router := newTestRouter(repository.NewInMemoryUserRepository())

	rec := doRequest(router, "DELETE", "/api/users/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// failingRepository simulates a broken storage connection for every call.
type failingRepository struct{}

var errConnRefused = errors.New("pq: connection refused")

func (failingRepository) Create(ctx context.Context, user *domain.User) error { return errConnRefused }
func (failingRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return nil, errConnRefused
}
func (failingRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return nil, errConnRefused
}
func (failingRepository) Update(ctx context.Context, user *domain.User) error { return errConnRefused }
func (failingRepository) Delete(ctx context.Context, id uint) error           { return errConnRefused }

func TestStorageErrorsMapTo500(t *testing.T) {
	router := newTestRouter(failingRepository{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create", "POST", "/api/users", `{"username":"alice","email":"a@x.com"}`},
		{"list", "GET", "/api/users", ""},
		{"get", "GET", "/api/users/1", ""},
		{"update", "PUT", "/api/users/1", `{"email":"a@x.com"}`},
		{"delete", "DELETE", "/api/users/1", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(router, tc.method, tc.path, tc.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("error detail leaked to client: %q", rec.Body.String())
			}
		})
	}
}
