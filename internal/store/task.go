package store

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// TaskStore defines the interface for task data persistence. Every
// lookup and mutation is scoped to an owner: a task belonging to another
// user behaves exactly like a task that does not exist.
type TaskStore interface {
	// Create saves a new task to the store and fills in the generated ID
	// and creation timestamp.
	Create(ctx context.Context, task *domain.Task) error

	// ListByOwner returns all tasks owned by the given user, most recent
	// first (created_at descending, ID descending as a tiebreak).
	// Returns an empty slice, never nil, when the user has no tasks.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// GetByIDAndOwner retrieves a single task by ID, filtered by owner.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error)

	// Update applies a partial update to the task with the given ID and
	// owner. Nil fields in the update are left untouched. Returns the
	// updated task, or ErrTaskNotFound if the task does not exist or
	// belongs to a different user.
	Update(ctx context.Context, id, ownerID int64, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes the task with the given ID and owner.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	Delete(ctx context.Context, id, ownerID int64) error
}
