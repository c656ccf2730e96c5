package ports

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// LeadRepository defines persistence operations for leads.
type LeadRepository interface {
	// ListByCustomer returns the customer's leads most-recent-first.
	// A customer with no leads yields an empty slice, not an error.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Lead, error)
	// ListAll returns a flat snapshot of every lead, unfiltered.
	ListAll(ctx context.Context) ([]domain.Lead, error)
	// Create assigns a new unique id and prepends the record into its
	// customer's bucket. CreatedAt must already be set by the caller.
	Create(ctx context.Context, l domain.Lead) (*domain.Lead, error)
	// Update replaces the record matching l.ID, preserving its position and
	// its original CreatedAt. Returns domain.ErrLeadNotFound when missing.
	Update(ctx context.Context, l domain.Lead) (*domain.Lead, error)
	// Delete removes the lead and returns the removed record so callers can
	// learn the owning customer.
	Delete(ctx context.Context, id string) (*domain.Lead, error)
	// DeleteByCustomer removes every lead owned by customerID and reports
	// how many were removed. Used for cascade deletion.
	DeleteByCustomer(ctx context.Context, customerID string) (int, error)
}
