package ports

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// AuthRepository defines persistence operations for user accounts.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns a new unique id. Returns domain.ErrUserExists when the
	// email is already registered.
	Create(ctx context.Context, u domain.User) (*domain.User, error)
}
