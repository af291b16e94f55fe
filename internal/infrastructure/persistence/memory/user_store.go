// Package memory implements in-memory persistence for FilmHub.
// Collections are insertion-ordered (a slice of ids alongside an id index),
// so list responses are deterministic across runs and never depend on map
// iteration order. Each collection serializes its own mutations with a
// sync.RWMutex; existence checks used by cross-collection operations are
// snapshot reads taken without holding another collection's write lock.
package memory

import (
	"context"
	"sync"

	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
)

// UserStore implements user.Repository in memory.
type UserStore struct {
	mu     sync.RWMutex
	byID   map[int64]*user.User
	order  []int64
	nextID int64
}

// NewUserStore creates an empty UserStore. The id counter starts at 1 and is
// never reused, even after deletion.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:   make(map[int64]*user.User),
		order:  make([]int64, 0),
		nextID: 1,
	}
}

// Create persists a new user and assigns a fresh id.
func (s *UserStore) Create(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *u
	stored.ID = s.nextID
	s.nextID++

	s.byID[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	out := stored
	return &out, nil
}

// Update fully replaces the record with u.ID.
func (s *UserStore) Update(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[u.ID]; !ok {
		return nil, shared.NotFound("user", u.ID)
	}

	stored := *u
	s.byID[u.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID returns the user with the given id.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, shared.NotFound("user", id)
	}
	out := *u
	return &out, nil
}

// GetAll returns all users in insertion order.
func (s *UserStore) GetAll(ctx context.Context) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*user.User, 0, len(s.order))
	for _, id := range s.order {
		out := *s.byID[id]
		users = append(users, &out)
	}
	return users, nil
}

// Exists reports whether a user with the given id is stored.
func (s *UserStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}

// Count returns the number of stored users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID), nil
}
