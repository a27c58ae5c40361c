package api

import "time"

// Common request/response structures

// SignupRequest defines the JSON payload for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// TokenResponse defines the successful response for authentication
// endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse defines the payload returned by the whoami endpoints.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// CreateTaskRequest defines the JSON payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty"`
}

// UpdateTaskRequest defines the JSON payload for a partial task update.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// TaskResponse defines the JSON shape of a task. The owner is implied by
// the authenticated caller and never exposed.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
}
