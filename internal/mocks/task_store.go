package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// TaskStore is an in-memory implementation of store.TaskStore for tests.
// It mirrors the real store's owner scoping and ordering contract.
type TaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task

	// Err, when set, is returned by every method.
	Err error
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[int64]*domain.Task)}
}

func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}

	// Most recent first, ID descending as tiebreak, matching the
	// postgres store's ORDER BY.
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})

	return tasks, nil
}

func (m *TaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *TaskStore) Update(
	ctx context.Context,
	id, ownerID int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}

	if err := update.Normalize(); err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Done != nil {
		task.Done = *update.Done
	}

	copied := *task
	return &copied, nil
}

func (m *TaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}

	delete(m.tasks, id)
	return nil
}
