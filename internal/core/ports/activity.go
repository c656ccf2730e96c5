package ports

import (
	"context"
	"time"

	"github.com/leadline/crm-system/internal/core/domain"
)

// ActivityInput describes one mutation to append to the audit trail.
type ActivityInput struct {
	CustomerID string
	EntityType string
	EntityID   string
	Action     string
	Actor      string
	OccurredAt time.Time
}

// ActivityRecorder accepts activity events for asynchronous recording.
// Implementations must not block the caller beyond queueing.
type ActivityRecorder interface {
	Record(event ActivityInput)
}

// ActivityRepository defines persistence operations for the audit trail.
type ActivityRepository interface {
	// Append assigns a new unique id and prepends the record into the
	// customer's trail (most-recent-first).
	Append(ctx context.Context, a domain.Activity) (*domain.Activity, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Activity, error)
}

// ActivityService defines use-case operations for the audit trail.
type ActivityService interface {
	// Process persists a single queued activity event.
	Process(ctx context.Context, event ActivityInput) error
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Activity, error)
}
