package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/shared"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service/auth"
	"github.com/taskdeck/taskdeck/internal/store"
)

// bearerTokenType is the token_type reported alongside every issued token.
const bearerTokenType = "bearer"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	tokenService     auth.TokenService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		tokenService:     tokenService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		logger:           log.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /auth/signup. It creates the user and immediately
// returns a usable bearer token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	user.HashedPassword, err = h.passwordHasher.Hash(user.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.Password = ""

	// No prior existence check: the store's unique constraint is the
	// arbiter, so concurrent signups for the same email cannot both win.
	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), user.Email)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TokenResponse{
		AccessToken: token,
		TokenType:   bearerTokenType,
	})
}

// Login handles POST /auth/login. Credentials arrive form-encoded as
// username/password (OAuth2 password-flow field names); the username is
// the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Stored emails are normalized, so the lookup key must be too.
	email := domain.NormalizeEmail(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same response as a wrong password; do not reveal which
			// half of the pair failed.
			respondInvalidCredentials(w, r)
			return
		}
		h.logger.Error("failed to get user by email", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		respondInvalidCredentials(w, r)
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), user.Email)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   bearerTokenType,
	})
}

// respondInvalidCredentials writes the 401 for a failed login. It goes
// through the sentinel and the shared error mapping, so the status and
// message stay consistent with every other auth failure.
func respondInvalidCredentials(w http.ResponseWriter, r *http.Request) {
	err := auth.ErrInvalidCredentials
	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// Me handles GET /me and GET /profile, returning the authenticated
// user's identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}
