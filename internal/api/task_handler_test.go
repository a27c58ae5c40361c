package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/mocks"
	"github.com/taskdeck/taskdeck/internal/service/auth"
)

// apiFixture wires the real router shape (auth middleware plus handlers)
// against in-memory stores and a real HMAC token service, so requests
// flow exactly as they do in production.
type apiFixture struct {
	router    chi.Router
	userStore *mocks.UserStore
	taskStore *mocks.TaskStore
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	tokenService, err := auth.NewTokenService(config.AuthConfig{
		TokenSecret:          "test-token-secret-that-is-32-chars!!",
		TokenAlgorithm:       "HS256",
		TokenLifetimeMinutes: 30,
	})
	require.NoError(t, err)

	userStore := mocks.NewUserStore()
	taskStore := mocks.NewTaskStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	authHandler := NewAuthHandler(userStore, tokenService, hasher, hasher, nil)
	taskHandler := NewTaskHandler(taskStore, nil)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userStore)

	r := chi.NewRouter()
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/me", authHandler.Me)
		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks", taskHandler.List)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Patch("/tasks/{id}", taskHandler.Update)
		r.Put("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return &apiFixture{router: r, userStore: userStore, taskStore: taskStore}
}

// signup registers a user and returns a bearer token for them.
func (f *apiFixture) signup(t *testing.T, email, password string) string {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	rec := f.do(t, "POST", "/auth/signup", "", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) createTask(t *testing.T, token, title string) TaskResponse {
	t.Helper()

	rec := f.do(t, "POST", "/tasks", token, strings.NewReader(`{"title":"`+title+`"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var task TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&task))
	return task
}

func TestTaskAPI_Create(t *testing.T) {
	t.Parallel()

	fixture := newAPIFixture(t)
	token := fixture.signup(t, "alice@example.com", "secret1")

	t.Run("valid task", func(t *testing.T) {
		rec := fixture.do(t, "POST", "/tasks", token,
			strings.NewReader(`{"title":"buy milk","description":"two liters"}`))
		require.Equal(t, http.StatusCreated, rec.Code)

		var task TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&task))
		assert.NotZero(t, task.ID)
		assert.Equal(t, "buy milk", task.Title)
		assert.Equal(t, "two liters", task.Description)
		assert.False(t, task.Done)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("description defaults to empty", func(t *testing.T) {
		task := fixture.createTask(t, token, "no description")
		assert.Empty(t, task.Description)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		rec := fixture.do(t, "POST", "/tasks", token, strings.NewReader(`{"description":"x"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("overlong title rejected", func(t *testing.T) {
		rec := fixture.do(t, "POST", "/tasks", token,
			strings.NewReader(`{"title":"`+strings.Repeat("a", 201)+`"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no token rejected", func(t *testing.T) {
		rec := fixture.do(t, "POST", "/tasks", "", strings.NewReader(`{"title":"x"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})
}

func TestTaskAPI_List(t *testing.T) {
	t.Parallel()

	fixture := newAPIFixture(t)
	token := fixture.signup(t, "alice@example.com", "secret1")

	t.Run("empty list is an array, not null", func(t *testing.T) {
		rec := fixture.do(t, "GET", "/tasks", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("returns only the caller's tasks", func(t *testing.T) {
		otherToken := fixture.signup(t, "bob@example.com", "secret1")
		fixture.createTask(t, otherToken, "bob's task")

		first := fixture.createTask(t, token, "first")
		second := fixture.createTask(t, token, "second")

		rec := fixture.do(t, "GET", "/tasks", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
		require.Len(t, tasks, 2)

		// Most recent first; equal timestamps break on ID descending.
		assert.Equal(t, second.ID, tasks[0].ID)
		assert.Equal(t, first.ID, tasks[1].ID)
		for _, task := range tasks {
			assert.NotEqual(t, "bob's task", task.Title)
		}
	})
}

func TestTaskAPI_Get(t *testing.T) {
	t.Parallel()

	fixture := newAPIFixture(t)
	aliceToken := fixture.signup(t, "alice@example.com", "secret1")
	bobToken := fixture.signup(t, "bob@example.com", "secret1")
	task := fixture.createTask(t, aliceToken, "alice's task")

	t.Run("owner can fetch", func(t *testing.T) {
		rec := fixture.do(t, "GET", "/tasks/1", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "alice's task", got.Title)
	})

	t.Run("other user sees 404, not 403", func(t *testing.T) {
		rec := fixture.do(t, "GET", "/tasks/1", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})

	t.Run("unknown and malformed IDs both 404", func(t *testing.T) {
		for _, path := range []string{"/tasks/9999", "/tasks/abc", "/tasks/-1"} {
			rec := fixture.do(t, "GET", path, aliceToken, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code, path)
		}
	})
}

func TestTaskAPI_Update(t *testing.T) {
	t.Parallel()

	fixture := newAPIFixture(t)
	aliceToken := fixture.signup(t, "alice@example.com", "secret1")
	bobToken := fixture.signup(t, "bob@example.com", "secret1")

	t.Run("partial update leaves absent fields alone", func(t *testing.T) {
		task := fixture.createTask(t, aliceToken, "original")

		rec := fixture.do(t, "PATCH", "/tasks/1", aliceToken, strings.NewReader(`{"done":true}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var updated TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
		assert.Equal(t, task.Title, updated.Title)
		assert.True(t, updated.Done)
	})

	t.Run("blank title is ignored", func(t *testing.T) {
		rec := fixture.do(t, "PATCH", "/tasks/1", aliceToken,
			strings.NewReader(`{"title":"   ","description":"kept"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var updated TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
		assert.Equal(t, "original", updated.Title)
		assert.Equal(t, "kept", updated.Description)
	})

	t.Run("empty update returns the task unchanged", func(t *testing.T) {
		rec := fixture.do(t, "PATCH", "/tasks/1", aliceToken, strings.NewReader(`{}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var updated TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
		assert.Equal(t, "original", updated.Title)
		assert.Equal(t, "kept", updated.Description)
		assert.True(t, updated.Done)
	})

	t.Run("PUT behaves like PATCH", func(t *testing.T) {
		rec := fixture.do(t, "PUT", "/tasks/1", aliceToken, strings.NewReader(`{"title":"renamed"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var updated TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
		assert.Equal(t, "renamed", updated.Title)
	})

	t.Run("other user's update is 404 and changes nothing", func(t *testing.T) {
		rec := fixture.do(t, "PATCH", "/tasks/1", bobToken, strings.NewReader(`{"title":"hijacked"}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		check := fixture.do(t, "GET", "/tasks/1", aliceToken, nil)
		var current TaskResponse
		require.NoError(t, json.NewDecoder(check.Body).Decode(&current))
		assert.Equal(t, "renamed", current.Title)
	})

	t.Run("overlong title rejected", func(t *testing.T) {
		rec := fixture.do(t, "PATCH", "/tasks/1", aliceToken,
			strings.NewReader(`{"title":"`+strings.Repeat("a", 201)+`"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskAPI_Delete(t *testing.T) {
	t.Parallel()

	fixture := newAPIFixture(t)
	aliceToken := fixture.signup(t, "alice@example.com", "secret1")
	bobToken := fixture.signup(t, "bob@example.com", "secret1")
	fixture.createTask(t, aliceToken, "doomed")

	t.Run("other user cannot delete", func(t *testing.T) {
		rec := fixture.do(t, "DELETE", "/tasks/1", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner deletes, then 404", func(t *testing.T) {
		rec := fixture.do(t, "DELETE", "/tasks/1", aliceToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		again := fixture.do(t, "DELETE", "/tasks/1", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, again.Code)
	})
}

// TestTaskAPI_FullFlow walks the whole lifecycle the way a client would:
// signup, login, whoami, then task CRUD down to the final 404.
func TestTaskAPI_FullFlow(t *testing.T) {
	t.Parallel()

	fixture := newAPIFixture(t)

	fixture.signup(t, "carol@example.com", "secret1")

	// Fresh token via login rather than the signup response.
	form := url.Values{"username": {"carol@example.com"}, "password": {"secret1"}}
	loginReq := httptest.NewRequest("POST", "/auth/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	fixture.router.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	var tokenResp TokenResponse
	require.NoError(t, json.NewDecoder(loginRec.Body).Decode(&tokenResp))
	token := tokenResp.AccessToken

	meRec := fixture.do(t, "GET", "/me", token, nil)
	require.Equal(t, http.StatusOK, meRec.Code)
	var me UserResponse
	require.NoError(t, json.NewDecoder(meRec.Body).Decode(&me))
	assert.Equal(t, "carol@example.com", me.Email)

	task := fixture.createTask(t, token, "write report")

	listRec := fixture.do(t, "GET", "/tasks", token, nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var tasks []TaskResponse
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	doneRec := fixture.do(t, "PATCH", "/tasks/1", token, strings.NewReader(`{"done":true}`))
	require.Equal(t, http.StatusOK, doneRec.Code)

	deleteRec := fixture.do(t, "DELETE", "/tasks/1", token, nil)
	require.Equal(t, http.StatusNoContent, deleteRec.Code)

	goneRec := fixture.do(t, "GET", "/tasks/1", token, nil)
	assert.Equal(t, http.StatusNotFound, goneRec.Code)
}
