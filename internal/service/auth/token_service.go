package auth

import (
	"context"
	"time"
)

// TokenService defines operations for issuing and verifying bearer
// tokens. Tokens are stateless: once issued they remain valid until
// their natural expiry.
type TokenService interface {
	// IssueToken creates a signed token whose subject claim identifies
	// the user (by email). Returns the token string or an error if
	// signing fails.
	IssueToken(ctx context.Context, subject string) (string, error)

	// VerifyToken validates the provided token string and extracts the
	// claims. Returns ErrInvalidToken if the token is malformed, has a
	// bad signature, or uses an unexpected signing method;
	// ErrExpiredToken if it is past its expiry; ErrMissingSubject if it
	// carries no subject claim.
	VerifyToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// Subject is the identity the token was issued for (the user's email).
	Subject string

	// IssuedAt is the time the token was created.
	IssuedAt time.Time

	// ExpiresAt is the time after which the token is rejected.
	ExpiresAt time.Time

	// ID is the unique token identifier (jti claim).
	ID string
}
