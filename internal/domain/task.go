package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong = fmt.Errorf("%w: task title must be at most %d characters long", ErrValidation, MaxTaskTitleLength)
	ErrEmptyTaskOwner   = fmt.Errorf("%w: task owner ID cannot be empty", ErrValidation)
)

// MaxTaskTitleLength bounds task titles, measured in characters.
const MaxTaskTitleLength = 200

// Task represents a single to-do item owned by exactly one user.
// Only the owner may read, mutate, or delete it.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     int64     `json:"-"`
}

// NewTask creates a new Task owned by the given user. The title is
// trimmed; Done starts false. The ID is assigned by the store.
// Returns an error if validation fails.
func NewTask(ownerID int64, title, description string) (*Task, error) {
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Done:        false,
		CreatedAt:   time.Now().UTC(),
		OwnerID:     ownerID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return ErrEmptyTaskOwner
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	return nil
}

// TaskUpdate describes a partial update to a task. Nil fields are left
// untouched by the store.
type TaskUpdate struct {
	Title       *string
	Description *string
	Done        *bool
}

// Normalize trims the title and drops it entirely when blank, so a
// whitespace-only title never overwrites the stored one. Returns an
// error if a supplied title exceeds the length bound.
func (u *TaskUpdate) Normalize() error {
	if u.Title == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*u.Title)
	if trimmed == "" {
		u.Title = nil
		return nil
	}

	if utf8.RuneCountInString(trimmed) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	u.Title = &trimmed
	return nil
}

// IsEmpty reports whether the update carries no changes.
func (u *TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Done == nil
}
