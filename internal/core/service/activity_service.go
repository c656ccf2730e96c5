package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/leadline/crm-system/internal/api/metrics"
	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// ActivityService persists queued activity events and serves the per-customer
// audit trail.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

// Process persists a single event previously queued by the dispatcher.
func (s *ActivityService) Process(ctx context.Context, event ports.ActivityInput) error {
	_, err := s.repo.Append(ctx, domain.Activity{
		CustomerID: event.CustomerID,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Action:     event.Action,
		Actor:      event.Actor,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("customer_id", event.CustomerID).
			Str("action", event.Action).
			Msg("failed to append activity")
		metrics.ActivityErrorsTotal.Inc()
		return err
	}
	metrics.ActivityProcessedTotal.WithLabelValues(event.Action).Inc()
	return nil
}

func (s *ActivityService) ListForCustomer(ctx context.Context, customerID string) ([]domain.Activity, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
