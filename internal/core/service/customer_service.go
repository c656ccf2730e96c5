package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadline/crm-system/internal/api/metrics"
	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// CustomerService implements customer CRUD with cascade deletion of leads.
type CustomerService struct {
	customers ports.CustomerRepository
	leads     ports.LeadRepository
	activity  ports.ActivityRecorder
	logger    zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, leads ports.LeadRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, leads: leads, activity: activity, logger: logger}
}

// List returns one page of customers matching input.Search plus the total
// match count. Page and Limit are normalised: page defaults to 1, limit to
// defaultPageLimit, and limit is capped at maxPageLimit.
func (s *CustomerService) List(ctx context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.customers.List(ctx, ports.ListCustomersFilter{
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("search", input.Search).Msg("failed to list customers")
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &ports.ListCustomersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	created, err := s.customers.Create(ctx, domain.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", created.ID).Msg("customer created")
	metrics.CustomersCreatedTotal.Inc()
	s.record(created.ID, domain.EntityCustomer, created.ID, domain.ActionCreated, input.Actor)
	return created, nil
}

// Update replaces the customer matching input.ID wholesale. A missing id is
// an explicit domain.ErrCustomerNotFound, never a silent no-op, so callers
// can distinguish success from a stale reference.
func (s *CustomerService) Update(ctx context.Context, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	updated, err := s.customers.Update(ctx, domain.Customer{
		ID:      input.ID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
	})
	if err != nil {
		return nil, err
	}

	s.record(updated.ID, domain.EntityCustomer, updated.ID, domain.ActionUpdated, input.Actor)
	return updated, nil
}

// Delete removes the customer and cascades deletion of every lead that
// references it.
func (s *CustomerService) Delete(ctx context.Context, input ports.DeleteCustomerInput) error {
	if err := s.customers.Delete(ctx, input.ID); err != nil {
		return err
	}

	removed, err := s.leads.DeleteByCustomer(ctx, input.ID)
	if err != nil {
		// The customer is already gone; surface the partial cascade rather
		// than pretending the whole delete failed.
		s.logger.Error().Err(err).Str("customer_id", input.ID).Msg("cascade lead deletion failed")
		return err
	}

	s.logger.Info().Str("customer_id", input.ID).Int("leads_removed", removed).Msg("customer deleted")
	metrics.CustomersDeletedTotal.Inc()
	s.record(input.ID, domain.EntityCustomer, input.ID, domain.ActionDeleted, input.Actor)
	return nil
}

func (s *CustomerService) record(customerID, entityType, entityID, action, actor string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ports.ActivityInput{
		CustomerID: customerID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	})
}
