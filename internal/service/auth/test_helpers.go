package auth

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/config"
)

// NewTokenServiceWithClock creates a token service whose notion of "now"
// comes from the given function. Used by tests to simulate token expiry
// without sleeping.
func NewTokenServiceWithClock(cfg config.AuthConfig, now func() time.Time) (TokenService, error) {
	svc, err := NewTokenService(cfg)
	if err != nil {
		return nil, err
	}

	hmacSvc := svc.(*hmacTokenService)
	hmacSvc.timeFunc = now
	return hmacSvc, nil
}
