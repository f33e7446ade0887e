package ports

import (
	"context"

	"github.com/tivit/users-api/internal/core/domain"
)

// UserRepository defines the lookup capability the authentication core needs
// from the user store.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
