package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/config"
)

const testSecret = "test-token-secret-that-is-32-chars!!"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSecret:          testSecret,
		TokenAlgorithm:       "HS256",
		TokenLifetimeMinutes: 30,
	}
}

func TestNewTokenService_Validation(t *testing.T) {
	t.Parallel()

	t.Run("short secret rejected", func(t *testing.T) {
		t.Parallel()

		cfg := testAuthConfig()
		cfg.TokenSecret = "too-short"
		_, err := NewTokenService(cfg)
		assert.Error(t, err)
	})

	t.Run("unsupported algorithm rejected", func(t *testing.T) {
		t.Parallel()

		cfg := testAuthConfig()
		cfg.TokenAlgorithm = "RS256"
		_, err := NewTokenService(cfg)
		assert.Error(t, err)
	})

	t.Run("all HMAC variants accepted", func(t *testing.T) {
		t.Parallel()

		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			cfg := testAuthConfig()
			cfg.TokenAlgorithm = alg
			_, err := NewTokenService(cfg)
			assert.NoError(t, err, alg)
		}
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.IssueToken(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, time.Minute)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()

	clock := &fakeClock{now: now}
	svc, err := NewTokenServiceWithClock(testAuthConfig(), clock.Now)
	require.NoError(t, err)

	token, err := svc.IssueToken(ctx, "alice@example.com")
	require.NoError(t, err)

	// Still valid just before expiry.
	clock.now = now.Add(29 * time.Minute)
	_, err = svc.VerifyToken(ctx, token)
	assert.NoError(t, err)

	// Rejected once the lifetime has elapsed.
	clock.now = now.Add(31 * time.Minute)
	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_InvalidTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.VerifyToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		otherCfg := testAuthConfig()
		otherCfg.TokenSecret = "a-completely-different-32-char-key!!"
		other, err := NewTokenService(otherCfg)
		require.NoError(t, err)

		token, err := other.IssueToken(ctx, "alice@example.com")
		require.NoError(t, err)

		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject claim", func(t *testing.T) {
		t.Parallel()

		// Correctly signed but with no sub claim.
		now := time.Now()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.VerifyToken(ctx, signed)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})
}

// fakeClock is a mutable time source for expiry tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}
