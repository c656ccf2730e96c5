package memory

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// ActivityRepository implements ports.ActivityRepository over a Store.
// The audit trail is append-only; no operation removes entries.
type ActivityRepository struct {
	store *Store
}

func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

func (r *ActivityRepository) Append(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a.ID = r.store.newActivityID()
	r.store.activities = append([]domain.Activity{a}, r.store.activities...)

	clone := a
	return &clone, nil
}

func (r *ActivityRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Activity, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Activity, 0)
	for _, a := range r.store.activities {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}
