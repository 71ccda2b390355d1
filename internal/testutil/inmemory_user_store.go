package testutil

import (
	"context"
	"sync"

	"github.com/laundrycare/lce/internal/domain/user"
	ierr "github.com/laundrycare/lce/internal/errors"
)

var _ user.Repository = (*InMemoryUserStore)(nil)

// InMemoryUserStore is an in-memory implementation of user.Repository
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; exists {
		return ierr.NewError("user already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	s.users[u.ID] = u
	return nil
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ierr.NewError("user not found").
		WithHint("User not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ierr.NewError("user not found").
			Mark(ierr.ErrNotFound)
	}
	s.users[u.ID] = u
	return nil
}

func (s *InMemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
