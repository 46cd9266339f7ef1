package repository

import (
	"fmt"
	"sync"

	"fuel_pump_registry/internal/models"
)

// UserMemory keeps users in a map; used with the memory driver and in tests.
type UserMemory struct {
	mu     sync.Mutex
	nextID int
	users  map[string]models.User
}

func NewUserMemory() *UserMemory {
	return &UserMemory{users: make(map[string]models.User)}
}

var _ Authorization = (*UserMemory)(nil)

func (r *UserMemory) Create(username, passwordHash string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return 0, fmt.Errorf("insert user %q: %w", username, ErrUsernameTaken)
	}
	r.nextID++
	r.users[username] = models.User{ID: r.nextID, Username: username, PasswordHash: passwordHash}
	return r.nextID, nil
}

func (r *UserMemory) GetByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
