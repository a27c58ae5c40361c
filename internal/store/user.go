package store

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and fills in the generated ID
	// and creation timestamp. The user must already carry a hashed
	// password. Uniqueness of the email is enforced by the store itself,
	// not by a prior existence check, so concurrent signups cannot both
	// succeed. Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by their email address. The email is
	// matched exactly; callers normalize before looking up. Returns
	// ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
