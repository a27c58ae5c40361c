package mocks

import (
	"context"
	"sync"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// UserStore is an in-memory implementation of store.UserStore for tests.
// Emails match exactly, the same semantics as the postgres store's
// unique index and WHERE clause; callers are expected to normalize.
type UserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	// CreateErr, when set, is returned by Create before any state change.
	CreateErr error
	// GetErr, when set, is returned by GetByEmail.
	GetErr error
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]*domain.User)}
}

func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	m.nextID++
	user.ID = m.nextID
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Count reports how many users are stored. Used to assert that a failed
// signup did not create a row.
func (m *UserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
