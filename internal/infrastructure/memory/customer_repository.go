package memory

import (
	"context"
	"strings"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// CustomerRepository implements ports.CustomerRepository over a Store.
type CustomerRepository struct {
	store *Store
}

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

// List filters by case-insensitive substring on name or email, then slices
// out the 1-indexed page [(page-1)*limit, page*limit). Total counts every
// match, not just the returned page.
func (r *CustomerRepository) List(ctx context.Context, filter ports.ListCustomersFilter) ([]domain.Customer, int, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(filter.Search)
	matched := make([]domain.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) {
			matched = append(matched, c)
		}
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start < 0 {
		start = 0
	}
	if start > total {
		return []domain.Customer{}, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	page := make([]domain.Customer, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.customers {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

// Create assigns a new id and prepends, keeping most-recent-first ordering.
func (r *CustomerRepository) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = r.store.newCustomerID()
	r.store.customers = append([]domain.Customer{c}, r.store.customers...)

	clone := c
	return &clone, nil
}

// Update replaces the matching record in place, preserving its position.
func (r *CustomerRepository) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.customers {
		if r.store.customers[i].ID == c.ID {
			r.store.customers[i] = c
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.customers {
		if r.store.customers[i].ID == id {
			r.store.customers = append(r.store.customers[:i], r.store.customers[i+1:]...)
			return nil
		}
	}
	return domain.ErrCustomerNotFound
}
