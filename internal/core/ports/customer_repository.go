package ports

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// ListCustomersFilter carries the query parameters for listing customers.
type ListCustomersFilter struct {
	Search string // optional: case-insensitive substring match on name or email
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// CustomerRepository defines persistence operations for customers.
// List returns the requested page plus the total count of ALL records
// matching the filter, not just the size of the returned page.
type CustomerRepository interface {
	List(ctx context.Context, filter ListCustomersFilter) ([]domain.Customer, int, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// Create assigns a new unique id and prepends the record (most-recent-first).
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	// Update replaces the record matching c.ID in place, preserving its
	// position. Returns domain.ErrCustomerNotFound when no record matches.
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}
