package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/tair/user-service/internal/user/domain"
)

// InMemoryUserRepository is a mutex-guarded map-backed repository. It mirrors
// the Postgres behavior closely enough for tests and local development:
// ids are assigned sequentially and username/email uniqueness is enforced
// the way the database constraints would.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]domain.User
	nextID uint
}

// NewInMemoryUserRepository creates an empty in-memory repository,
// optionally seeded with existing users.
func NewInMemoryUserRepository(seed ...domain.User) *InMemoryUserRepository {
	repo := &InMemoryUserRepository{
		users:  make(map[uint]domain.User),
		nextID: 1,
	}
	for _, u := range seed {
		repo.users[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user.Username, user.Email, 0); err != nil {
		return err
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *InMemoryUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []domain.User{}
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if err := r.checkUnique(user.Username, user.Email, user.ID); err != nil {
		return err
	}
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// checkUnique reports a constraint-style error when another user already
// holds the given username or email. The caller must hold the lock.
func (r *InMemoryUserRepository) checkUnique(username, email string, selfID uint) error {
	for id, u := range r.users {
		if id == selfID {
			continue
		}
		if u.Username == username {
			return fmt.Errorf("duplicate key value violates unique constraint on username %q", username)
		}
		if u.Email == email {
			return fmt.Errorf("duplicate key value violates unique constraint on email %q", email)
		}
	}
	return nil
}
