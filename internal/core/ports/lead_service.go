package ports

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// CreateLeadInput carries the data for a new lead. The id and creation
// timestamp are assigned by the service.
type CreateLeadInput struct {
	CustomerID  string
	Title       string
	Description string
	Status      domain.LeadStatus
	Value       float64
	Actor       string
}

// UpdateLeadInput replaces an existing lead. CreatedAt is immutable and
// therefore not part of the input.
type UpdateLeadInput struct {
	ID          string
	CustomerID  string
	Title       string
	Description string
	Status      domain.LeadStatus
	Value       float64
	Actor       string
}

// DeleteLeadInput identifies the lead to remove.
type DeleteLeadInput struct {
	ID    string
	Actor string
}

// LeadService defines use-case operations for leads.
type LeadService interface {
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Lead, error)
	ListAll(ctx context.Context) ([]domain.Lead, error)
	Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
	Update(ctx context.Context, input UpdateLeadInput) (*domain.Lead, error)
	// Delete returns the removed lead so callers can learn the owning customer.
	Delete(ctx context.Context, input DeleteLeadInput) (*domain.Lead, error)
}
