package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api/shared"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service/auth"
	"github.com/taskdeck/taskdeck/internal/store"
)

// credentialsMessage is the single message used for every authentication
// failure, so callers cannot tell a bad signature from an expired token
// or a deleted user.
const credentialsMessage = "Could not validate credentials"

// AuthMiddleware provides bearer-token authentication for routes. It
// verifies the token, resolves the subject claim to a stored user, and
// attaches that user to the request context.
type AuthMiddleware struct {
	tokenService auth.TokenService
	userStore    store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userStore:    userStore,
	}
}

// Authenticate validates the bearer token from the Authorization header
// and adds the resolved user to the request context for authorized
// requests. Every rejection is a 401 with the bearer challenge header.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, credentialsMessage)
			return
		}

		claims, err := m.tokenService.VerifyToken(r.Context(), token)
		if err != nil {
			// Expired, malformed, bad signature, and missing-subject all
			// collapse to the same response.
			shared.RespondWithError(w, r, http.StatusUnauthorized, credentialsMessage)
			return
		}

		user, err := m.userStore.GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				slog.Error("failed to resolve token subject", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
				return
			}
			// A well-formed token for a user that no longer exists is
			// reported identically to a bad token.
			shared.RespondWithError(w, r, http.StatusUnauthorized, credentialsMessage)
			return
		}

		ctx := context.WithValue(r.Context(), shared.CurrentUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns false when the header is absent or not a bearer credential.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// CurrentUser extracts the authenticated user from the request context.
// Returns the user and a boolean indicating if it was found.
func CurrentUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.CurrentUserContextKey).(*domain.User)
	return user, ok && user != nil
}
