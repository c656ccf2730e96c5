package memory

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// LeadRepository implements ports.LeadRepository over a Store. Leads live in
// one flat slice; per-customer buckets are derived by filtering, which keeps
// the global most-recent-first order intact in both views.
type LeadRepository struct {
	store *Store
}

var _ ports.LeadRepository = (*LeadRepository)(nil)

func NewLeadRepository(store *Store) *LeadRepository {
	return &LeadRepository{store: store}
}

func (r *LeadRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Lead, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Lead, 0)
	for _, l := range r.store.leads {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LeadRepository) ListAll(ctx context.Context) ([]domain.Lead, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Lead, len(r.store.leads))
	copy(out, r.store.leads)
	return out, nil
}

func (r *LeadRepository) Create(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l.ID = r.store.newLeadID(l.CustomerID)
	r.store.leads = append([]domain.Lead{l}, r.store.leads...)

	clone := l
	return &clone, nil
}

// Update replaces the matching record in place. The stored CreatedAt always
// wins: the field is immutable once assigned.
func (r *LeadRepository) Update(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.leads {
		if r.store.leads[i].ID == l.ID {
			l.CustomerID = r.store.leads[i].CustomerID
			l.CreatedAt = r.store.leads[i].CreatedAt
			r.store.leads[i] = l
			clone := l
			return &clone, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *LeadRepository) Delete(ctx context.Context, id string) (*domain.Lead, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.leads {
		if r.store.leads[i].ID == id {
			removed := r.store.leads[i]
			r.store.leads = append(r.store.leads[:i], r.store.leads[i+1:]...)
			return &removed, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *LeadRepository) DeleteByCustomer(ctx context.Context, customerID string) (int, error) {
	if err := r.store.delay(ctx); err != nil {
		return 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.leads[:0]
	removed := 0
	for _, l := range r.store.leads {
		if l.CustomerID == customerID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.store.leads = kept
	return removed, nil
}
