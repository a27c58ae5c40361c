package mocks

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/service/auth"
)

// TokenService is a configurable mock implementation of auth.TokenService.
type TokenService struct {
	// Token and IssueErr control IssueToken.
	Token    string
	IssueErr error

	// Claims and VerifyErr control VerifyToken.
	Claims    *auth.Claims
	VerifyErr error

	// VerifiedTokens records every token string passed to VerifyToken.
	VerifiedTokens []string
}

var _ auth.TokenService = (*TokenService)(nil)

func (m *TokenService) IssueToken(ctx context.Context, subject string) (string, error) {
	if m.IssueErr != nil {
		return "", m.IssueErr
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "token-for-" + subject, nil
}

func (m *TokenService) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	m.VerifiedTokens = append(m.VerifiedTokens, tokenString)
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Claims, nil
}
