package ports

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// AuthService defines registration and login.
//
// Login is deliberately passwordless: any registered email authenticates.
// This mirrors the account model of the system — there is no credential
// secret, only an identity lookup plus a signed token.
type AuthService interface {
	// Login returns a signed token and the user, or
	// domain.ErrInvalidCredentials when the email is not registered.
	Login(ctx context.Context, email string) (string, *domain.User, error)
	// Register creates an account with the User role. It does not log the
	// new account in. Returns domain.ErrUserExists on duplicate email.
	Register(ctx context.Context, name, email string) (*domain.User, error)
}
