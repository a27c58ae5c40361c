package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ownerID     int64
		title       string
		description string
		wantErr     error
	}{
		{
			name:        "valid task",
			ownerID:     1,
			title:       "buy milk",
			description: "two liters",
			wantErr:     nil,
		},
		{
			name:    "title is trimmed",
			ownerID: 1,
			title:   "  buy milk  ",
			wantErr: nil,
		},
		{
			name:    "empty title",
			ownerID: 1,
			title:   "",
			wantErr: ErrEmptyTaskTitle,
		},
		{
			name:    "whitespace-only title",
			ownerID: 1,
			title:   "   ",
			wantErr: ErrEmptyTaskTitle,
		},
		{
			name:    "title too long",
			ownerID: 1,
			title:   strings.Repeat("a", 201),
			wantErr: ErrTaskTitleTooLong,
		},
		{
			name:    "missing owner",
			ownerID: 0,
			title:   "buy milk",
			wantErr: ErrEmptyTaskOwner,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tt.ownerID, tt.title, tt.description)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.title), task.Title)
			assert.Equal(t, tt.description, task.Description)
			assert.False(t, task.Done)
			assert.False(t, task.CreatedAt.IsZero())
			assert.Equal(t, tt.ownerID, task.OwnerID)
		})
	}
}

func TestTaskUpdateNormalize(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("blank title is dropped", func(t *testing.T) {
		t.Parallel()

		update := TaskUpdate{Title: strPtr("   ")}
		require.NoError(t, update.Normalize())
		assert.Nil(t, update.Title)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		t.Parallel()

		update := TaskUpdate{Title: strPtr("  new title  ")}
		require.NoError(t, update.Normalize())
		require.NotNil(t, update.Title)
		assert.Equal(t, "new title", *update.Title)
	})

	t.Run("overlong title is rejected", func(t *testing.T) {
		t.Parallel()

		update := TaskUpdate{Title: strPtr(strings.Repeat("a", 201))}
		assert.ErrorIs(t, update.Normalize(), ErrTaskTitleTooLong)
	})

	t.Run("nil fields pass through", func(t *testing.T) {
		t.Parallel()

		update := TaskUpdate{Done: boolPtr(true)}
		require.NoError(t, update.Normalize())
		assert.Nil(t, update.Title)
		assert.Nil(t, update.Description)
	})

	t.Run("IsEmpty", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&TaskUpdate{}).IsEmpty())
		assert.False(t, (&TaskUpdate{Done: boolPtr(false)}).IsEmpty())
	})
}
