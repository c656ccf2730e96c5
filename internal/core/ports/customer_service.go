package ports

import (
	"context"

	"github.com/leadline/crm-system/internal/core/domain"
)

// ListCustomersInput carries all parameters for the customer list operation.
type ListCustomersInput struct {
	Search string
	Page   int
	Limit  int
}

// ListCustomersResult is one page of customers plus pagination metadata.
// Total counts every record matching Search, independent of pagination.
type ListCustomersResult struct {
	Items      []domain.Customer
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// CreateCustomerInput carries the data for a new customer. The id is
// assigned by the repository.
type CreateCustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Actor   string // who performed the action, for the activity trail
}

// UpdateCustomerInput replaces an existing customer wholesale.
type UpdateCustomerInput struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Company string
	Actor   string
}

// DeleteCustomerInput identifies the customer to remove.
type DeleteCustomerInput struct {
	ID    string
	Actor string
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	List(ctx context.Context, input ListCustomersInput) (*ListCustomersResult, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, input UpdateCustomerInput) (*domain.Customer, error)
	// Delete removes the customer and cascades deletion of its leads.
	Delete(ctx context.Context, input DeleteCustomerInput) error
}
