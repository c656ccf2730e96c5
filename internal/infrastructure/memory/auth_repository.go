package memory

import (
	"context"
	"strings"

	"github.com/leadline/crm-system/internal/core/domain"
)

// AuthRepository implements ports.AuthRepository over a Store.
type AuthRepository struct {
	store *Store
}

func NewAuthRepository(store *Store) *AuthRepository {
	return &AuthRepository{store: store}
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AuthRepository) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, domain.ErrUserExists
		}
	}

	u.ID = r.store.newUserID()
	r.store.users = append(r.store.users, u)

	clone := u
	return &clone, nil
}
