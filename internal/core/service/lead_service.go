package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadline/crm-system/internal/api/metrics"
	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// LeadService implements lead CRUD scoped to customers.
type LeadService struct {
	leads     ports.LeadRepository
	customers ports.CustomerRepository
	activity  ports.ActivityRecorder
	logger    zerolog.Logger
}

func NewLeadService(leads ports.LeadRepository, customers ports.CustomerRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *LeadService {
	return &LeadService{leads: leads, customers: customers, activity: activity, logger: logger}
}

func (s *LeadService) ListForCustomer(ctx context.Context, customerID string) ([]domain.Lead, error) {
	return s.leads.ListByCustomer(ctx, customerID)
}

func (s *LeadService) ListAll(ctx context.Context) ([]domain.Lead, error) {
	return s.leads.ListAll(ctx)
}

// Create adds a lead under input.CustomerID. The creation timestamp is
// assigned here and is immutable from then on.
func (s *LeadService) Create(ctx context.Context, input ports.CreateLeadInput) (*domain.Lead, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if input.Value < 0 {
		return nil, domain.ErrNegativeValue
	}

	// Creating a lead under a customer that no longer exists is a stale
	// reference, not a storage concern.
	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	created, err := s.leads.Create(ctx, domain.Lead{
		CustomerID:  input.CustomerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Value:       input.Value,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", input.CustomerID).Msg("failed to create lead")
		return nil, err
	}

	s.logger.Info().Str("lead_id", created.ID).Str("customer_id", created.CustomerID).Msg("lead created")
	metrics.LeadsCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	s.record(created.CustomerID, created.ID, domain.ActionCreated, input.Actor)
	return created, nil
}

func (s *LeadService) Update(ctx context.Context, input ports.UpdateLeadInput) (*domain.Lead, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if input.Value < 0 {
		return nil, domain.ErrNegativeValue
	}

	updated, err := s.leads.Update(ctx, domain.Lead{
		ID:          input.ID,
		CustomerID:  input.CustomerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Value:       input.Value,
	})
	if err != nil {
		return nil, err
	}

	s.record(updated.CustomerID, updated.ID, domain.ActionUpdated, input.Actor)
	return updated, nil
}

func (s *LeadService) Delete(ctx context.Context, input ports.DeleteLeadInput) (*domain.Lead, error) {
	removed, err := s.leads.Delete(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", removed.ID).Str("customer_id", removed.CustomerID).Msg("lead deleted")
	s.record(removed.CustomerID, removed.ID, domain.ActionDeleted, input.Actor)
	return removed, nil
}

func (s *LeadService) record(customerID, leadID, action, actor string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ports.ActivityInput{
		CustomerID: customerID,
		EntityType: domain.EntityLead,
		EntityID:   leadID,
		Action:     action,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	})
}
