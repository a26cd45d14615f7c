package user

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	users     map[string]User    // keyed by email
	addresses map[string]Address // keyed by user ID
}

// NewMemoryRepository builds an in-memory user store for development and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		users:     make(map[string]User),
		addresses: make(map[string]Address),
	}
}

func (r *memoryRepository) CreateWithAddress(_ context.Context, user User, addr Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return ErrEmailTaken
	}
	r.users[user.Email] = user
	r.addresses[user.ID] = addr
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
