package ports

import (
	"context"

	"github.com/tivit/users-api/internal/core/domain"
)

// AuthService verifies credentials and issues signed session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// LoginThrottle limits repeated failed login attempts per username.
// Implementations may fail open: a throttle-store outage must not take
// authentication down with it.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
