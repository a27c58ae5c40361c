package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend. Every query is scoped to the owner,
// so a task belonging to another user is indistinguishable from a
// missing one.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the
// store.TaskStore interface. If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist (foreign
// key violation) or the task fails validation.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (title, description, done, created_at, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Done,
		task.CreatedAt,
		task.OwnerID,
	).Scan(&task.ID)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", task.OwnerID))
		return mapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner. Tasks are returned
// most recent first; the ID tiebreak keeps the order deterministic for
// rows created within the same timestamp.
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, done, created_at, owner_id
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Done,
			&task.CreatedAt,
			&task.OwnerID,
		)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, mapError(err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}

// GetByIDAndOwner implements store.TaskStore.GetByIDAndOwner.
func (s *TaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, done, created_at, owner_id
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Done,
		&task.CreatedAt,
		&task.OwnerID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.Int64("task_id", id),
				slog.Int64("owner_id", ownerID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, mapError(err)
	}

	return &task, nil
}

// Update implements store.TaskStore.Update. Nil fields in the update
// keep their stored value via COALESCE; the whole statement is scoped to
// the owner, so a single round trip both authorizes and applies the
// change.
func (s *TaskStore) Update(
	ctx context.Context,
	id, ownerID int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Normalize(); err != nil {
		log.Warn("task update validation failed",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// Nothing to change (e.g. a blank title was the only field): skip the
	// write and just return the current row.
	if update.IsEmpty() {
		return s.GetByIDAndOwner(ctx, id, ownerID)
	}

	query := `
		UPDATE tasks
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    done        = COALESCE($5, done)
		WHERE id = $1 AND owner_id = $2
		RETURNING id, title, description, done, created_at, owner_id
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query,
		id,
		ownerID,
		update.Title,
		update.Description,
		update.Done,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Done,
		&task.CreatedAt,
		&task.OwnerID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update",
				slog.Int64("task_id", id),
				slog.Int64("owner_id", ownerID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, mapError(err)
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return &task, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return mapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.Int64("task_id", id),
			slog.Int64("owner_id", ownerID))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.Int64("task_id", id),
		slog.Int64("owner_id", ownerID))
	return nil
}
